// Package media knows about YouTube stream links and the built-in music and
// ambience catalogue.
package media

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrEmptyStreamURL   = errors.New("stream URL is empty")
	ErrInvalidStreamURL = errors.New("invalid YouTube URL")
)

// Thumbnail sizes served by i.ytimg.com.
type ThumbnailQuality string

const (
	ThumbDefault ThumbnailQuality = "default"
	ThumbMedium  ThumbnailQuality = "mqdefault"
	ThumbHigh    ThumbnailQuality = "hqdefault"
	ThumbSD      ThumbnailQuality = "sddefault"
	ThumbMaxRes  ThumbnailQuality = "maxresdefault"
)

// PlaceholderThumbnail is returned when no video id can be found.
const PlaceholderThumbnail = "/assets/thumbnails/default.png"

var (
	// watch?v=, youtu.be/, embed/, v/, e/, live/ and shorts/ forms.
	videoURLPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/|youtube\.com/(?:live|shorts)/)([^"&?/\s]{11})`)
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ExtractYouTubeVideoID returns the 11-character id from a YouTube link, or
// s itself when it already is an id.
func ExtractYouTubeVideoID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if m := videoURLPattern.FindStringSubmatch(s); m != nil && videoIDPattern.MatchString(m[1]) {
		return m[1], true
	}
	if videoIDPattern.MatchString(s) {
		return s, true
	}
	return "", false
}

// ThumbnailURL builds the thumbnail link for a video URL or id. An empty
// quality means ThumbMedium.
func ThumbnailURL(urlOrID string, quality ThumbnailQuality) string {
	id, ok := ExtractYouTubeVideoID(urlOrID)
	if !ok {
		return PlaceholderThumbnail
	}
	if quality == "" {
		quality = ThumbMedium
	}
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/%s.jpg", id, quality)
}

func isYouTubeHost(host string) bool {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	return host == "youtube.com" || host == "youtu.be" || strings.HasSuffix(host, ".youtube.com")
}

// ValidateStreamURL accepts http(s) YouTube links that carry a video id.
func ValidateStreamURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyStreamURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStreamURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidStreamURL)
	}
	if !isYouTubeHost(u.Hostname()) {
		return fmt.Errorf("%w: %s is not a YouTube host", ErrInvalidStreamURL, u.Hostname())
	}
	if _, ok := ExtractYouTubeVideoID(raw); !ok {
		return fmt.Errorf("%w: no video id found", ErrInvalidStreamURL)
	}
	return nil
}
