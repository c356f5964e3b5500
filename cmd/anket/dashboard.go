package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/screens"
)

var dashboardOpts struct {
	class    string
	total    int
	tab      string
	question int
	asJSON   bool
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard SURVEY_ID",
	Short: "Print the results dashboard of one survey",
	Args:  cobra.ExactArgs(1),
	RunE:  runDashboard,
}

func init() {
	f := dashboardCmd.Flags()
	f.StringVar(&dashboardOpts.class, "class", "", "only show this class (sinif), verbatim")
	f.IntVar(&dashboardOpts.total, "total", 0, "number of eligible students, for the participation rate")
	f.StringVar(&dashboardOpts.tab, "tab", string(screens.TabOverview), "genel, sorular or ogrenciler")
	f.IntVar(&dashboardOpts.question, "question", 1, "question number to detail on the sorular tab")
	f.BoolVar(&dashboardOpts.asJSON, "json", false, "print the view as JSON")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	st := a.manager.NewStore()
	dashboard := screens.NewDashboard(models.ID(args[0]), st, a.manager.Dashboard(), a.manager.Result())
	view, err := dashboard.Load(ctx, screens.DashboardOptions{
		Class:         dashboardOpts.class,
		TotalStudents: dashboardOpts.total,
		Tab:           screens.ParseTab(dashboardOpts.tab),
		Question:      dashboardOpts.question - 1,
	})
	if err != nil && !view.Loaded {
		return fmt.Errorf("%s: %w", view.Error, err)
	}

	out := cmd.OutOrStdout()
	if dashboardOpts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	printDashboard(out, view)
	return nil
}

func printDashboard(out io.Writer, view screens.DashboardView) {
	fmt.Fprintf(out, "%s (%s)\n", view.Title, view.SurveyID)
	if view.Stale {
		fmt.Fprintf(out, "! %s, showing last loaded results\n", view.Error)
	}
	fmt.Fprintf(out, "Sınıf: %s   Sınıflar: %v\n", view.SelectedClass, view.Classes)
	fmt.Fprintf(out, "Katılım: %d/%d (%%%d)\n\n", view.Participation.Completed, view.Participation.Total, view.Participation.Percent)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch view.Tab {
	case screens.TabQuestions:
		for _, q := range view.Questions {
			fmt.Fprintf(w, "%d.\t%s\t%d cevap\n", q.Number, q.Text, q.Answered)
		}
		if view.Question != nil {
			fmt.Fprintf(w, "\n%d. %s\n", view.Question.Number, view.Question.Text)
			for _, opt := range view.Question.Options {
				fmt.Fprintf(w, "\t%s\t%d\t%%%d\n", opt.Option, opt.Count, opt.Percent)
			}
		}
	case screens.TabStudents:
		fmt.Fprintln(w, "Öğrenci\tAd\tSınıf\tDurum")
		for _, row := range view.Completed {
			fmt.Fprintf(w, "%s\t%s\t%s\ttamamlandı\n", row.StudentID, row.Name, row.Class)
		}
		for _, row := range view.Incomplete {
			fmt.Fprintf(w, "%s\t%s\t%s\teksik\n", row.StudentID, row.Name, row.Class)
		}
	default:
		if s := view.Statistics; s != nil {
			fmt.Fprintf(w, "Katılımcı\t%d\n", s.TotalParticipants)
			fmt.Fprintf(w, "Tamamlayan\t%d\n", s.CompletedCount)
			fmt.Fprintf(w, "Ortalama puan\t%.2f\n", s.AverageScore)
		}
	}
}
