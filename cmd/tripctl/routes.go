package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/tripclient/api/routes"
)

func newRoutesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Plan trips",
	}
	cmd.AddCommand(newRoutesSearchCmd(a))
	return cmd
}

func newRoutesSearchCmd(a *app) *cobra.Command {
	var (
		mode       string
		depart     string
		maxResults int
	)
	cmd := &cobra.Command{
		Use:   "search <origin> <destination>",
		Short: "Find itineraries between two places",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := routes.SearchRequest{
				Origin:      args[0],
				Destination: args[1],
				Mode:        mode,
				MaxResults:  maxResults,
			}
			if depart != "" {
				t, err := routes.ParseTime(depart)
				if err != nil {
					return fmt.Errorf("--depart: %w", err)
				}
				req.DepartAt = &routes.Time{Time: t}
			}

			res, err := a.routes.Search(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.render(cmd, res, func(w io.Writer) error { return writeItineraries(w, res) })
		},
	}
	f := cmd.Flags()
	f.StringVar(&mode, "mode", "", "travel mode: driving, transit, walking or cycling")
	f.StringVar(&depart, "depart", "", "departure time, e.g. 2024-06-01T08:00")
	f.IntVar(&maxResults, "max", 0, "maximum number of itineraries")
	return cmd
}

func writeItineraries(w io.Writer, res routes.SearchResult) error {
	if len(res.Itineraries) == 0 {
		_, err := fmt.Fprintln(w, "No itineraries found")
		return err
	}
	for i, it := range res.Itineraries {
		if _, err := fmt.Fprintf(w, "%d. %s (%s)\n", i+1, it.Summary, formatMinutes(it.DurationMinutes)); err != nil {
			return err
		}
		if !it.DepartAt.IsZero() {
			if _, err := fmt.Fprintf(w, "   %s -> %s\n", clock(it.DepartAt), clock(it.ArriveAt)); err != nil {
				return err
			}
		}
		for _, leg := range it.Legs {
			if _, err := fmt.Fprintf(w, "   - %s: %s -> %s\n", leg.Mode, leg.From, leg.To); err != nil {
				return err
			}
		}
		if it.AINotes != "" {
			if _, err := fmt.Fprintf(w, "   note: %s\n", it.AINotes); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatMinutes(m float64) string {
	return (time.Duration(m * float64(time.Minute))).Round(time.Minute).String()
}

func clock(t routes.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format("15:04")
}
