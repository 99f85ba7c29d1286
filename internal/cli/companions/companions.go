package companions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/story"
	"github.com/julianstephens/studydojo/internal/theme"
)

type CompanionsListCmd struct{}

func (c *CompanionsListCmd) Run(ctx *cli.Context) error {
	s := ctx.Styles()
	favorite, _ := ctx.Prefs.FavoriteCompanion()

	for _, comp := range ctx.Story.Companions() {
		marker := "🔒"
		name := s.Muted.Render(comp.Name)
		if comp.IsUnlocked {
			marker = "🌸"
			name = s.Accent.Render(comp.Name)
		}
		if comp.ID == favorite {
			marker = "⭐"
		}
		fmt.Fprintf(ctx.Out, "%s %-10s %s  %s\n", marker, comp.ID, name, s.Muted.Render(comp.Subject))
	}
	return nil
}

type CompanionsShowCmd struct {
	ID    string `arg:"" help:"Companion id, e.g. sakura."`
	Width int    `help:"Wrap width for the profile." default:"80"`
}

func (c *CompanionsShowCmd) Run(ctx *cli.Context) error {
	comp, err := ctx.Story.Companion(strings.ToLower(c.ID))
	if err != nil {
		return err
	}
	fmt.Fprint(ctx.Out, theme.RenderMarkdown(story.Profile(comp), ctx.Prefs.Theme(), c.Width))
	return nil
}

type CompanionsFavoriteCmd struct {
	ID    string `arg:"" optional:"" help:"Companion id to favour. Omit to show the current favourite."`
	Clear bool   `help:"Clear the favourite companion."`
}

func (c *CompanionsFavoriteCmd) Run(ctx *cli.Context) error {
	if c.Clear {
		ctx.Prefs.SetFavoriteCompanion("")
		fmt.Fprintln(ctx.Out, "Favourite companion cleared.")
		return nil
	}

	if c.ID == "" {
		id, ok := ctx.Prefs.FavoriteCompanion()
		if !ok {
			fmt.Fprintln(ctx.Out, "No favourite companion set.")
			return nil
		}
		fmt.Fprintf(ctx.Out, "Favourite companion: %s\n", id)
		return nil
	}

	comp, err := ctx.Story.Companion(strings.ToLower(c.ID))
	if err != nil {
		return err
	}
	if !comp.IsUnlocked {
		return errors.New(comp.Name + " is still locked. " + story.UnlockHint(comp))
	}
	ctx.Prefs.SetFavoriteCompanion(comp.ID)
	fmt.Fprintf(ctx.Out, "⭐ %s is now your favourite companion.\n", comp.Name)
	return nil
}
