package media

import "github.com/julianstephens/studydojo/internal/models"

// Ambient sound categories.
const (
	CategoryNature   = "Nature"
	CategoryAmbiance = "Ambiance"
	CategoryNoise    = "Noise & ASMR"
)

var defaultTracks = []models.CustomMusicStream{
	{ID: "default-lofi-1", Name: "Lofi Hip Hop Radio 📚", URL: "https://www.youtube.com/watch?v=jfKfPfyJRdk"},
	{ID: "default-chillhop-1", Name: "Chillhop Radio 🐾", URL: "https://www.youtube.com/watch?v=5yx6BWlEVcY"},
	{ID: "default-classical-piano-1", Name: "Classical Piano Study 🎹", URL: "https://www.youtube.com/watch?v=WaCd3XFJHxo"},
	{ID: "default-jazzhop-1", Name: "Jazz Hop Cafe Rainy🎷", URL: "https://www.youtube.com/watch?v=NJuSStkIZBg"},
	{ID: "default-ambient-1", Name: "Ambient Electronic Focus ✨", URL: "https://www.youtube.com/watch?v=pCgmX9y-ULk"},
}

var ambientSounds = []models.AmbientSound{
	{ID: "rain-gentle-1", Name: "Gentle Rain (No Thunder)", URL: "https://www.youtube.com/watch?v=Yp60yUb6nYo", Category: CategoryNature},
	{ID: "rain-thunder-1", Name: "Rain & Thunderstorm", URL: "https://www.youtube.com/watch?v=yIQd2Ya0Ziw", Category: CategoryNature},
	{ID: "forest-birds-1", Name: "Forest & Birds", URL: "https://m.youtube.com/watch?v=Jll0yqdQclw&pp=ygUJI25hdHVyZTNv", Category: CategoryNature},
	{ID: "ocean-waves-1", Name: "Calm Ocean Waves", URL: "https://m.youtube.com/watch?v=JekUNGo-RVk&t=88s", Category: CategoryNature},
	{ID: "creek-1", Name: "Babbling Creek", URL: "https://www.youtube.com/watch?v=tDFB3w4YtRc", Category: CategoryNature},
	{ID: "night-crickets-1", Name: "Night Crickets", URL: "https://www.youtube.com/watch?v=MnfG1JpHhPo", Category: CategoryNature},

	{ID: "cafe-jazz-1", Name: "Cafe Ambience (Jazz)", URL: "https://www.youtube.com/watch?v=Apygp914NI4", Category: CategoryAmbiance},
	{ID: "library-fireplace-1", Name: "Library & Fireplace", URL: "https://www.youtube.com/watch?v=4vIQON2fDWM", Category: CategoryAmbiance},
	{ID: "fireplace-crackling-1", Name: "Crackling Fireplace", URL: "https://www.youtube.com/watch?v=8DRwmngnWvU", Category: CategoryAmbiance},
	{ID: "train-rain-1", Name: "Train Journey (Rain)", URL: "https://www.youtube.com/watch?v=AWGTxFFBEmc", Category: CategoryAmbiance},
	{ID: "city-distant-1", Name: "Distant City Traffic", URL: "https://www.youtube.com/watch?v=dTBqPeASNW8", Category: CategoryAmbiance},

	{ID: "keyboard-asmr-1", Name: "Keyboard Typing ASMR", URL: "https://www.youtube.com/watch?v=fqC8IBH-kNM", Category: CategoryNoise},
	{ID: "white-noise-1", Name: "Pure White Noise", URL: "https://m.youtube.com/watch?v=SHFY4SojLmY&pp=ygUUI2NhbG1pbmdkZXZpY2Vzb3VuZHM%3D", Category: CategoryNoise},
	{ID: "brown-noise-1", Name: "Deep Brown Noise", URL: "https://www.youtube.com/watch?v=Gt5OHL-1s4Q", Category: CategoryNoise},
	{ID: "fan-noise-1", Name: "Box Fan Noise", URL: "https://m.youtube.com/watch?v=px1PqCX6i8c", Category: CategoryNoise},
}

// DefaultTracks returns the built-in music streams.
func DefaultTracks() []models.CustomMusicStream {
	return append([]models.CustomMusicStream(nil), defaultTracks...)
}

// AmbientSounds returns the ambience catalogue in display order.
func AmbientSounds() []models.AmbientSound {
	return append([]models.AmbientSound(nil), ambientSounds...)
}

// Categories lists the ambient categories in display order.
func Categories() []string {
	return []string{CategoryNature, CategoryAmbiance, CategoryNoise}
}

// AmbientByCategory groups sounds, keeping catalogue order within a group.
func AmbientByCategory() map[string][]models.AmbientSound {
	out := make(map[string][]models.AmbientSound)
	for _, s := range ambientSounds {
		out[s.Category] = append(out[s.Category], s)
	}
	return out
}

// Streams lists the built-in tracks followed by the user's own.
func Streams(custom []models.CustomMusicStream) []models.CustomMusicStream {
	return append(DefaultTracks(), custom...)
}
