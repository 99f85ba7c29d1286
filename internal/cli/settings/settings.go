package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/constants"
	apperrors "github.com/julianstephens/studydojo/internal/errors"
	"github.com/julianstephens/studydojo/internal/models"
)

type ThemeCmd struct {
	Name string `arg:"" optional:"" help:"Theme to switch to. Omit to show the current theme."`
	Next bool   `help:"Switch to the next theme in the cycle."`
	List bool   `help:"List available themes."`
}

func (c *ThemeCmd) Run(ctx *cli.Context) error {
	current := ctx.Prefs.Theme()
	switch {
	case c.List:
		for _, t := range models.Themes() {
			marker := "  "
			if t == current {
				marker = "* "
			}
			fmt.Fprintf(ctx.Out, "%s%s\n", marker, t)
		}
		return nil
	case c.Next:
		fmt.Fprintf(ctx.Out, "Theme: %s\n", ctx.Prefs.NextTheme())
		return nil
	case c.Name != "":
		t, err := ctx.Prefs.SetTheme(strings.ToLower(c.Name))
		if err != nil {
			return apperrors.Usagef("%v (try --list)", err)
		}
		fmt.Fprintf(ctx.Out, "Theme: %s\n", t)
		return nil
	}
	fmt.Fprintf(ctx.Out, "Theme: %s\n", current)
	return nil
}

type NameCmd struct {
	Value string `arg:"" optional:"" help:"Name the companions greet you by. Omit to show it."`
	Clear bool   `help:"Forget the saved name."`
}

func (c *NameCmd) Run(ctx *cli.Context) error {
	if c.Clear {
		ctx.Prefs.RemoveUserName()
		fmt.Fprintf(ctx.Out, "Name cleared. You will be greeted as %s.\n", constants.DefaultUserNameLabel)
		return nil
	}

	name := strings.TrimSpace(c.Value)
	if name == "" {
		if c.Value != "" {
			return apperrors.Usagef("name cannot be blank")
		}
		if saved, ok := ctx.Prefs.UserName(); ok {
			fmt.Fprintf(ctx.Out, "Name: %s\n", saved)
		} else {
			fmt.Fprintf(ctx.Out, "No name saved. You are greeted as %s.\n", constants.DefaultUserNameLabel)
		}
		return nil
	}

	ctx.Prefs.SetUserName(name)
	fmt.Fprintf(ctx.Out, "Welcome, %s!\n", name)
	return nil
}
