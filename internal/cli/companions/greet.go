package companions

import (
	"fmt"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/greeting"
)

type GreetCmd struct{}

func (c *GreetCmd) Run(ctx *cli.Context) error {
	s := ctx.Styles()
	favorite, _ := ctx.Prefs.FavoriteCompanion()
	name, _ := ctx.Prefs.UserName()

	quote, speaker := ctx.Story.MotivationalQuote(favorite, nil)
	tod := greeting.At(ctx.Now().In(ctx.Location))

	fmt.Fprintln(ctx.Out, s.Title.Render(greeting.Greeting(tod, greeting.StyleFor(tod, speaker), name, nil)))
	fmt.Fprintf(ctx.Out, "%s\n  %s\n", s.Text.Render("“"+quote.Quote+"”"), s.Muted.Render("- "+quote.Source))
	return nil
}
