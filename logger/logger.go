package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is replaced by Init; until then it discards everything so packages
// can log from tests without setup.
var Log = zap.NewNop()

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Init builds the production logger. Binaries call it before loading
// config so that config errors are not lost to the Nop logger.
func Init(lvl string) error {
	SetLevel(lvl)
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// SetLevel changes the level of the logger built by Init. Unknown levels
// fall back to info.
func SetLevel(lvl string) {
	parsed, err := zapcore.ParseLevel(lvl)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	level.SetLevel(parsed)
}

func Sync() {
	_ = Log.Sync()
}
