package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/media"
)

type StreamListCmd struct {
	Ambient bool `help:"Also list the built-in ambient sounds."`
}

func (c *StreamListCmd) Run(ctx *cli.Context) error {
	s := ctx.Styles()
	custom := ctx.Prefs.CustomStreams()

	fmt.Fprintln(ctx.Out, s.Title.Render("Music"))
	for _, st := range media.DefaultTracks() {
		fmt.Fprintf(ctx.Out, "  %-28s %s\n", st.Name, s.Muted.Render(st.URL))
	}
	if len(custom) > 0 {
		fmt.Fprintln(ctx.Out, s.Title.Render("\nYour streams"))
		for _, st := range custom {
			fmt.Fprintf(ctx.Out, "  %s  %-28s %s\n", s.Accent.Render(cli.ShortID(st.ID)), st.Name, s.Muted.Render(st.URL))
		}
	}

	if c.Ambient {
		byCategory := media.AmbientByCategory()
		for _, cat := range media.Categories() {
			fmt.Fprintln(ctx.Out, s.Title.Render("\n"+cat))
			for _, a := range byCategory[cat] {
				fmt.Fprintf(ctx.Out, "  %-28s %s\n", a.Name, s.Muted.Render(a.URL))
			}
		}
	}
	return nil
}

type StreamAddCmd struct {
	URL  string `arg:"" help:"YouTube URL of the stream."`
	Name string `arg:"" optional:"" help:"Display name. Defaults to the video id."`
}

func (c *StreamAddCmd) Run(ctx *cli.Context) error {
	url := strings.TrimSpace(c.URL)
	if err := media.ValidateStreamURL(url); err != nil {
		return err
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		id, _ := media.ExtractYouTubeVideoID(url)
		name = "Stream " + id
	}

	stream, added := ctx.Prefs.AddCustomStream(url, name)
	if !added {
		fmt.Fprintf(ctx.Out, "Already saved as %q.\n", stream.Name)
		return nil
	}
	fmt.Fprintf(ctx.Out, "✓ Saved %q (id %s)\n", stream.Name, cli.ShortID(stream.ID))
	return nil
}

type StreamRemoveCmd struct {
	ID string `arg:"" help:"Stream id or id prefix from 'stream list'."`
}

func (c *StreamRemoveCmd) Run(ctx *cli.Context) error {
	ref := strings.TrimSpace(c.ID)
	var matches []string
	for _, st := range ctx.Prefs.CustomStreams() {
		if st.ID == ref {
			matches = []string{st.ID}
			break
		}
		if ref != "" && strings.HasPrefix(st.ID, ref) {
			matches = append(matches, st.ID)
		}
	}
	switch len(matches) {
	case 0:
		return fmt.Errorf("no saved stream matches %q", ref)
	case 1:
	default:
		return fmt.Errorf("%q matches %d streams, use a longer id", ref, len(matches))
	}

	if !ctx.Prefs.RemoveCustomStream(matches[0]) {
		return fmt.Errorf("failed to remove stream %s", cli.ShortID(matches[0]))
	}
	fmt.Fprintln(ctx.Out, "Stream removed.")
	return nil
}
