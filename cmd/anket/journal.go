package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/repositories"
)

var journalOpts struct {
	survey  string
	student string
	outcome string
	since   time.Duration
	limit   int
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recorded submission attempts",
	RunE:  runJournal,
}

func init() {
	f := journalCmd.Flags()
	f.StringVar(&journalOpts.survey, "survey", "", "filter by survey id")
	f.StringVar(&journalOpts.student, "student", "", "filter by student id")
	f.StringVar(&journalOpts.outcome, "outcome", "", "accepted, rejected or failed")
	f.DurationVar(&journalOpts.since, "since", 0, "only attempts newer than this, e.g. 24h")
	f.IntVar(&journalOpts.limit, "limit", 50, "maximum rows")
}

func runJournal(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, ok := a.journal.(repositories.NoopJournal); ok {
		return errors.New("submission journal is not configured (set DATABASE_URL)")
	}

	filters := repositories.SubmissionFilters{
		SurveyID:  journalOpts.survey,
		StudentID: journalOpts.student,
		Limit:     journalOpts.limit,
	}
	if journalOpts.outcome != "" {
		outcome := models.SubmissionOutcome(journalOpts.outcome)
		filters.Outcome = &outcome
	}
	if journalOpts.since > 0 {
		from := time.Now().Add(-journalOpts.since)
		filters.DateFrom = &from
	}

	records, total, err := a.journal.List(ctx, filters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Zaman\tAnket\tÖğrenci\tSonuç\tUç nokta\tMesaj")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.SurveyID, r.StudentID, r.Outcome, r.Endpoint, r.Message)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d / %d kayıt\n", len(records), total)

	if journalOpts.survey != "" {
		counts, err := a.journal.CountByOutcome(ctx, journalOpts.survey)
		if err != nil {
			return err
		}
		for _, c := range counts {
			fmt.Fprintf(out, "  %s: %d\n", c.Outcome, c.Count)
		}
	}
	return nil
}
