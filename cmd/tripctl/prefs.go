package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/tripclient/api/preferences"
	apierrors "github.com/kbukum/tripclient/errors"
)

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read or change travel preferences",
	}
	cmd.AddCommand(newPrefsGetCmd(a), newPrefsSetCmd(a))
	return cmd
}

func newPrefsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.preferences.Get(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, p, func(w io.Writer) error { return writePrefs(w, p) })
		},
	}
}

func newPrefsSetCmd(a *app) *cobra.Command {
	var in preferences.Preferences
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update preferences; unspecified fields keep their stored value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			current, err := a.preferences.Get(ctx)
			if err != nil && !apierrors.IsNotFound(err) {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("mode") {
				current.TravelMode = in.TravelMode
			}
			if flags.Changed("avoid-tolls") {
				current.AvoidTolls = in.AvoidTolls
			}
			if flags.Changed("avoid-highways") {
				current.AvoidHighways = in.AvoidHighways
			}
			if flags.Changed("max-walk") {
				current.MaxWalkMinutes = in.MaxWalkMinutes
			}
			if flags.Changed("interest") {
				current.Interests = in.Interests
			}
			if flags.Changed("language") {
				current.Language = in.Language
			}

			saved, err := a.preferences.Update(ctx, current)
			if err != nil {
				return err
			}
			return a.render(cmd, saved, func(w io.Writer) error { return writePrefs(w, saved) })
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.TravelMode, "mode", "", "travel mode: driving, transit, walking or cycling")
	f.BoolVar(&in.AvoidTolls, "avoid-tolls", false, "avoid toll roads")
	f.BoolVar(&in.AvoidHighways, "avoid-highways", false, "avoid highways")
	f.IntVar(&in.MaxWalkMinutes, "max-walk", 0, "maximum walking minutes per leg")
	f.StringSliceVar(&in.Interests, "interest", nil, "points of interest (repeatable)")
	f.StringVar(&in.Language, "language", "", "language tag for AI notes, e.g. en-GB")
	return cmd
}

func writePrefs(w io.Writer, p preferences.Preferences) error {
	mode := p.TravelMode
	if mode == "" {
		mode = "(default)"
	}
	_, err := fmt.Fprintf(w,
		"mode:           %s\navoid tolls:    %t\navoid highways: %t\nmax walk:       %d min\ninterests:      %s\n",
		mode, p.AvoidTolls, p.AvoidHighways, p.MaxWalkMinutes, strings.Join(p.Interests, ", "))
	return err
}
