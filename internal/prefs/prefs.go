// Package prefs persists user preferences: theme, intro flag, name, favorite
// companion and saved music streams.
package prefs

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/logger"
	"github.com/julianstephens/studydojo/internal/models"
	"github.com/julianstephens/studydojo/internal/storage"
)

type Prefs struct {
	kv storage.Store
	// newID is swapped in tests.
	newID func() string
}

func New(kv storage.Store) *Prefs {
	return &Prefs{kv: kv, newID: uuid.NewString}
}

func (p *Prefs) set(key, value string) {
	if err := p.kv.Set(key, value); err != nil {
		logger.Warn("Failed to save preference", "key", key, "error", err)
	}
}

func (p *Prefs) remove(key string) {
	if err := p.kv.Remove(key); err != nil {
		logger.Warn("Failed to remove preference", "key", key, "error", err)
	}
}

// Theme returns the saved theme, or the default for missing or unknown values.
func (p *Prefs) Theme() models.Theme {
	raw := storage.GetString(p.kv, constants.KeyTheme).OrWarn("", constants.KeyTheme)
	t, err := models.ParseTheme(raw)
	if err != nil {
		return models.DefaultTheme
	}
	return t
}

// SetTheme saves a known theme. Unknown names are rejected and nothing is written.
func (p *Prefs) SetTheme(name string) (models.Theme, error) {
	t, err := models.ParseTheme(name)
	if err != nil {
		return p.Theme(), err
	}
	p.set(constants.KeyTheme, string(t))
	return t, nil
}

// NextTheme advances the theme toggle and saves the result.
func (p *Prefs) NextTheme() models.Theme {
	next := p.Theme().Next()
	p.set(constants.KeyTheme, string(next))
	return next
}

func (p *Prefs) IntroShown() bool {
	return storage.GetJSON[bool](p.kv, constants.KeyIntroShown).OrWarn(false, constants.KeyIntroShown)
}

func (p *Prefs) SetIntroShown(shown bool) {
	p.set(constants.KeyIntroShown, strconv.FormatBool(shown))
}

// UserName returns the saved name; ok is false when none is set.
func (p *Prefs) UserName() (string, bool) {
	name := storage.GetString(p.kv, constants.KeyUserName).OrWarn("", constants.KeyUserName)
	return name, name != ""
}

func (p *Prefs) SetUserName(name string) {
	p.set(constants.KeyUserName, strings.TrimSpace(name))
}

func (p *Prefs) RemoveUserName() {
	p.remove(constants.KeyUserName)
}

// FavoriteCompanion returns the favorite companion id, if any.
func (p *Prefs) FavoriteCompanion() (string, bool) {
	id := storage.GetString(p.kv, constants.KeyFavoriteCompanion).OrWarn("", constants.KeyFavoriteCompanion)
	return id, id != ""
}

// SetFavoriteCompanion saves id, or clears the key when id is empty.
func (p *Prefs) SetFavoriteCompanion(id string) {
	if id == "" {
		p.remove(constants.KeyFavoriteCompanion)
		return
	}
	p.set(constants.KeyFavoriteCompanion, id)
}

// CustomStreams returns saved stream bookmarks in insertion order.
func (p *Prefs) CustomStreams() []models.CustomMusicStream {
	return storage.GetJSON[[]models.CustomMusicStream](p.kv, constants.KeyCustomStreams).
		OrWarn([]models.CustomMusicStream{}, constants.KeyCustomStreams)
}

func (p *Prefs) saveStreams(streams []models.CustomMusicStream) {
	if err := storage.SetJSON(p.kv, constants.KeyCustomStreams, streams); err != nil {
		logger.Warn("Failed to save custom streams", "key", constants.KeyCustomStreams, "error", err)
	}
}

// AddCustomStream bookmarks url under name (the url itself when name is
// blank). A url that is already saved is not added twice; the existing entry
// is returned with added=false.
func (p *Prefs) AddCustomStream(url, name string) (stream models.CustomMusicStream, added bool) {
	url = strings.TrimSpace(url)
	name = strings.TrimSpace(name)
	if name == "" {
		name = url
	}

	streams := p.CustomStreams()
	for _, s := range streams {
		if s.URL == url {
			return s, false
		}
	}

	stream = models.CustomMusicStream{ID: p.newID(), URL: url, Name: name}
	p.saveStreams(append(streams, stream))
	return stream, true
}

// RemoveCustomStream deletes the bookmark with id and reports whether one existed.
func (p *Prefs) RemoveCustomStream(id string) bool {
	streams := p.CustomStreams()
	kept := make([]models.CustomMusicStream, 0, len(streams))
	for _, s := range streams {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(streams) {
		return false
	}
	p.saveStreams(kept)
	return true
}
