package companions

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/julianstephens/studydojo/internal/cli"
)

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	s := ctx.Styles()
	achievements := ctx.Story.Achievements()

	unlocked := 0
	for _, a := range achievements {
		if a.IsUnlocked {
			unlocked++
		}
	}
	fmt.Fprintln(ctx.Out, s.Title.Render(fmt.Sprintf("Achievements %d/%d", unlocked, len(achievements))))

	for _, a := range achievements {
		if a.IsUnlocked {
			fmt.Fprintf(ctx.Out, "%s %s  %s\n", a.Icon, s.Accent.Render(a.Name), a.Description)
			continue
		}
		fmt.Fprintf(ctx.Out, "🔒 %s  %s\n", s.Muted.Render(a.Name), s.Muted.Render(a.Description))
	}
	return nil
}

type QuestsCmd struct{}

func (c *QuestsCmd) Run(ctx *cli.Context) error {
	s := ctx.Styles()
	bar := progress.New(progress.WithSolidFill(string(s.Palette.Accent)), progress.WithWidth(24))

	fmt.Fprintln(ctx.Out, s.Title.Render("Quests"))
	for _, q := range ctx.Story.Quests(ctx.Today()) {
		status := fmt.Sprintf("%d/%d", q.CurrentProgress, q.TotalRequired)
		if q.IsCompleted {
			status = s.Success.Render("✓ done")
		}
		fmt.Fprintf(ctx.Out, "%s  %s\n  %s %s  %s\n",
			s.Accent.Render(q.Name), q.Description, bar.ViewAs(q.Fraction()), status, s.Muted.Render("Reward: "+q.Reward))
	}
	return nil
}
