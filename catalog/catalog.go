// Package catalog serves the read-only playlists, daily quote and live
// stream details bundled with the binary.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"ramotsav.com/project-ramotsav/models"
)

//go:embed catalog.yaml
var defaultYAML []byte

type LiveStream struct {
	Title      string `json:"title" yaml:"title"`
	StreamURL  string `json:"stream_url" yaml:"stream_url"`
	ArtworkURL string `json:"artwork_url" yaml:"artwork_url"`
}

type Catalog struct {
	Quote     models.Quote      `yaml:"quote"`
	Playlists []models.Playlist `yaml:"playlists"`
	Live      LiveStream        `yaml:"live"`
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for _, p := range c.Playlists {
		if p.ID == "" {
			return nil, fmt.Errorf("parse catalog: playlist %q has no id", p.Title)
		}
	}
	return &c, nil
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Playlist(id string) (models.Playlist, bool) {
	for _, p := range c.Playlists {
		if p.ID == id {
			return p, true
		}
	}
	return models.Playlist{}, false
}
