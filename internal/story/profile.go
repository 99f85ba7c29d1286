package story

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studydojo/internal/models"
)

var achievementGates = map[string]string{
	CompanionMizuki:  AchStreak3,
	CompanionTakeshi: AchTenHours,
	CompanionRen:     AchTakeABreak,
}

// UnlockHint says how a companion is earned.
func UnlockHint(c models.Companion) string {
	if id, ok := achievementGates[c.ID]; ok {
		for _, a := range achievementData {
			if a.ID == id {
				return fmt.Sprintf("Earn %q: %s.", a.Name, strings.ToLower(a.Description))
			}
		}
	}
	if c.ID == CompanionAkira {
		return "Always by your side."
	}
	return fmt.Sprintf("Complete a %s past paper.", c.Subject)
}

// Profile renders a companion card as markdown. Locked companions only
// show their public details.
func Profile(c models.Companion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n*%s*\n\n%s\n\n", c.Name, c.Subject, c.Description)

	if !c.IsUnlocked {
		fmt.Fprintf(&b, "🔒 **Locked.** %s\n", UnlockHint(c))
		return b.String()
	}

	fmt.Fprintf(&b, "## Backstory\n\n%s\n\n", c.Backstory)
	fmt.Fprintf(&b, "## Specialty\n\n%s\n\n", c.Specialty)
	if c.FavoriteQuote.Quote != "" {
		fmt.Fprintf(&b, "## Favorite quote\n\n> %s\n>\n> *%s*\n\n", c.FavoriteQuote.Quote, c.FavoriteQuote.Source)
	}
	if len(c.MotivationalQuotes) > 0 {
		b.WriteString("## Words of encouragement\n\n")
		for _, q := range c.MotivationalQuotes {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	return b.String()
}
