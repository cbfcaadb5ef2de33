package routes

import (
	"ramotsav.com/project-ramotsav/catalog"
	"ramotsav.com/project-ramotsav/handlers"
	"ramotsav.com/project-ramotsav/live"
	"ramotsav.com/project-ramotsav/middleware"
	"ramotsav.com/project-ramotsav/services"
	"ramotsav.com/project-ramotsav/state"
)

// Deps carries everything the handlers close over. Media may be nil when
// object storage is not configured.
type Deps struct {
	App        *state.App
	Media      *services.MediaStore
	Asker      state.Asker
	Hub        *live.Hub
	Catalog    *catalog.Catalog
	Viewers    *live.ViewerCounter
	Tokens     handlers.TokenConfig
	AILimiter  *middleware.RateLimiter
	RealTotals bool
}
