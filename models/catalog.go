package models

type Song struct {
	Title        string `json:"title" yaml:"title"`
	Artist       string `json:"artist" yaml:"artist"`
	URL          string `json:"url" yaml:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`
}

type Playlist struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	CoverURL    string `json:"cover_url" yaml:"cover_url"`
	Songs       []Song `json:"songs" yaml:"songs"`
}

type Quote struct {
	Text   string `json:"text" yaml:"text"`
	Author string `json:"author" yaml:"author"`
}
