package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/bissquit/incident-intake/internal/intake"
	"github.com/spf13/cobra"
)

var urgencyCmd = &cobra.Command{
	Use:   "urgency",
	Short: "Print urgency scores for the built-in sample incidents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printUrgencySamples(cmd.OutOrStdout(), time.Now())
	},
}

func printUrgencySamples(out io.Writer, now time.Time) error {
	samples, err := intake.SampleUrgencies(now)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tSEVERITY\tAGE (DAYS)\tURGENCY\tDESCRIPTION\tURGENT")
	for _, s := range samples {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%t\n",
			s.Title, s.Severity, s.AgeDays, s.Urgency, s.Description, s.IsUrgent)
	}
	return tw.Flush()
}
