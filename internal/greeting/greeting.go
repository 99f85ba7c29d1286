// Package greeting picks a time-of-day greeting voiced by a companion.
package greeting

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/julianstephens/studydojo/internal/constants"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// DefaultStyle is the neutral voice every time of day carries.
const DefaultStyle = "default"

const placeholder = "{userName}"

type line struct {
	text  string
	style string
}

var table = map[TimeOfDay][]line{
	Morning: {
		{"Good morning! Ready to conquer the day, {userName}?", DefaultStyle},
		{"The early bird gets the worm, {userName}! Let's get to it.", "takeshi"},
		{"A fresh start, a new challenge. Embrace it, {userName}!", "akira"},
		{"May your coffee be strong and your focus unwavering, {userName}.", "mizuki"},
		{"The canvas of the morning awaits your masterpiece, {userName}.", "sakura"},
		{"Greet the dawn with a calm mind and a ready spirit, {userName}.", "ren"},
		{"Morning, {userName}! Time to shine like the rising sun.", "hana"},
		{"Rise and grind, {userName}! Today's an opportunity.", "yuki"},
		{"おはよう, {userName}! A brand new day for learning awaits.", DefaultStyle},
		{"Seize the morning, {userName}! Your future self will thank you.", "takeshi"},
	},
	Afternoon: {
		{"Good afternoon, {userName}! Keep that momentum going.", DefaultStyle},
		{"The afternoon is a battlefield of focus, {userName}. Stay sharp!", "takeshi"},
		{"Halfway through the day, {userName}! Let's finish strong.", "akira"},
		{"Hope your afternoon is productive and insightful, {userName}.", "mizuki"},
		{"The afternoon sun shines on your efforts, {userName}.", "sakura"},
		{"Find your rhythm this afternoon, {userName}. Flow with your tasks.", "ren"},
		{"Afternoon, {userName}! Still plenty of time to make progress.", "hana"},
		{"Keep pushing, {userName}! The afternoon is yours.", "yuki"},
		{"こんにちは, {userName}! Keep up the great work.", DefaultStyle},
		{"The afternoon is prime time for breakthroughs, {userName}.", "takeshi"},
	},
	Evening: {
		{"Good evening, {userName}. Winding down or gearing up for more?", DefaultStyle},
		{"The evening is a time for reflection and preparation, {userName}.", "takeshi"},
		{"As the day ends, {userName}, review your victories.", "akira"},
		{"Hope you had a fulfilling day, {userName}. Evening studies can be serene.", "mizuki"},
		{"The stars begin to emerge, as does your wisdom, {userName}.", "sakura"},
		{"A peaceful evening to you, {userName}. May your mind be clear.", "ren"},
		{"Evening, {userName}! One last push or a well-deserved rest?", "hana"},
		{"The day's almost done, {userName}. Make these hours count.", "yuki"},
		{"こんばんは, {userName}! Time to consolidate your learning.", DefaultStyle},
		{"Even as the sun sets, your dedication shines, {userName}.", "takeshi"},
	},
	Night: {
		{"Burning the midnight oil, {userName}? Remember to rest too.", DefaultStyle},
		{"The night is quiet, perfect for deep focus, {userName}. But don't overdo it.", "takeshi"},
		{"Late night session, {userName}? True dedication. Ensure you get enough sleep.", "akira"},
		{"Studying under the stars, {userName}? May your thoughts be clear.", "mizuki"},
		{"The moon watches over your diligent efforts, {userName}.", "sakura"},
		{"In the quiet of the night, knowledge whispers, {userName}.", "ren"},
		{"Working late, {userName}? Your commitment is admirable.", "hana"},
		{"The world sleeps, but your ambition is wide awake, {userName}.", "yuki"},
		{"おやすみなさい, {userName}, if you're heading off. If not, study well!", DefaultStyle},
		{"Respect the grind, {userName}, even into the late hours.", "takeshi"},
	},
}

// At buckets a clock time: morning 05-11, afternoon 12-16, evening 17-21,
// night otherwise.
func At(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 22:
		return Evening
	default:
		return Night
	}
}

// StyleFor returns companionID when it has a line for tod, else DefaultStyle.
func StyleFor(tod TimeOfDay, companionID string) string {
	for _, l := range table[tod] {
		if companionID != "" && l.style == companionID {
			return companionID
		}
	}
	return DefaultStyle
}

// Greeting picks a line for tod in style, falling back to the default style
// and then to any line. An empty userName drops ", {userName}" and fills any
// other placeholder with the default label.
func Greeting(tod TimeOfDay, style, userName string, rng *rand.Rand) string {
	pick := rand.IntN
	if rng != nil {
		pick = rng.IntN
	}

	all := table[tod]
	candidates := filter(all, style)
	if len(candidates) == 0 {
		candidates = filter(all, DefaultStyle)
	}
	if len(candidates) == 0 {
		candidates = all
	}

	name := strings.TrimSpace(userName)
	if len(candidates) == 0 {
		if name == "" {
			return "Hello! Keep up the good work."
		}
		return "Hello, " + name + "! Keep up the good work."
	}

	text := candidates[pick(len(candidates))].text
	if name != "" {
		return strings.Replace(text, placeholder, name, 1)
	}
	text = strings.Replace(text, ", "+placeholder, "", 1)
	return strings.Replace(text, placeholder, constants.DefaultUserNameLabel, 1)
}

func filter(lines []line, style string) []line {
	var out []line
	for _, l := range lines {
		if l.style == style {
			out = append(out, l)
		}
	}
	return out
}
