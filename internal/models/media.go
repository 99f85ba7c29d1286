package models

// CustomMusicStream is a user-saved stream bookmark.
type CustomMusicStream struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// AmbientSound is a built-in background soundscape.
type AmbientSound struct {
	ID       string
	Name     string
	URL      string
	Category string
}
