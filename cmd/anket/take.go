package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/screens"
	"github.com/rehber-app/anket-client/internal/store"
)

var takeOpts struct {
	student string
	guide   string
	refresh bool
}

var takeCmd = &cobra.Command{
	Use:   "take SURVEY_ID",
	Short: "Answer a survey interactively, one question at a time",
	Long: `Answer a survey on the terminal. At each question type the option number
to choose it, then:
  n  next question      p  previous question
  g N  go to question N s  submit            q  quit without submitting`,
	Args: cobra.ExactArgs(1),
	RunE: runTake,
}

func init() {
	takeCmd.Flags().StringVar(&takeOpts.student, "student", "", "student id (required)")
	takeCmd.Flags().StringVar(&takeOpts.guide, "guide", "", "guide (rehber) id")
	takeCmd.Flags().BoolVar(&takeOpts.refresh, "refresh", false, "reload the survey from the backend instead of the cache")
	_ = takeCmd.MarkFlagRequired("student")
}

func runTake(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	st := a.manager.NewStore()
	load := a.manager.Survey().Get
	if takeOpts.refresh {
		load = a.manager.Survey().Refresh
	}
	survey, err := load(ctx, st, models.ID(args[0]))
	if !survey.Present {
		return err
	}

	flow, err := screens.NewQuestionFlow(survey.Value, models.ID(takeOpts.student), a.manager.Submission(),
		screens.WithGuide(models.ID(takeOpts.guide)))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprintf(out, "%s\n", survey.Value.Title)

	stop := st.Subscribe(submitProgress(out, survey.Value.ID))
	defer stop()

	for !flow.Done() {
		printQuestion(out, flow)
		if !in.Scan() {
			return in.Err()
		}

		input := strings.TrimSpace(in.Text())
		switch {
		case input == "q":
			fmt.Fprintln(out, "Gönderilmeden çıkıldı.")
			return nil
		case input == "n":
			flow.Next()
		case input == "p":
			flow.Prev()
		case strings.HasPrefix(input, "g "):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(input, "g ")))
			if err != nil || flow.GoTo(n-1) != nil {
				fmt.Fprintln(out, "Geçersiz soru numarası.")
			}
		case input == "s":
			receipt, err := flow.Submit(ctx, st)
			if err != nil {
				fmt.Fprintln(out, flow.Error())
				continue
			}
			fmt.Fprintf(out, "Anket gönderildi. Kayıt: %s\n", receipt.ResultID)
		default:
			if err := selectByNumber(flow, input); err != nil {
				fmt.Fprintln(out, "Geçersiz seçim.")
				continue
			}
			flow.Next()
		}
	}
	return nil
}

func printQuestion(out io.Writer, flow *screens.QuestionFlow) {
	q := flow.Current()
	p := flow.Progress()
	fmt.Fprintf(out, "\n[%d/%d] %s  (%%%d cevaplandı)\n", q.Number, q.Total, q.Text, p.Percent)
	for i, opt := range q.Options {
		marker := " "
		if opt == q.Selected {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %d) %s\n", marker, i+1, opt)
	}
	fmt.Fprint(out, "> ")
}

// submitProgress announces each submission of surveyID once it goes out.
// Failures are printed by the flow itself.
func submitProgress(out io.Writer, surveyID models.ID) func(store.State) {
	var last store.Status
	return func(state store.State) {
		req := state.Request(store.OpSubmitSurvey, surveyID.String())
		if legacy := state.Request(store.OpSaveResult, surveyID.String()); legacy.UpdatedAt.After(req.UpdatedAt) {
			req = legacy
		}
		if req.Status == last {
			return
		}
		last = req.Status
		if req.Status == store.StatusPending {
			fmt.Fprintln(out, "Gönderiliyor...")
		}
	}
}

func selectByNumber(flow *screens.QuestionFlow, input string) error {
	n, err := strconv.Atoi(input)
	if err != nil {
		return err
	}
	options := flow.Current().Options
	if n < 1 || n > len(options) {
		return errors.New("option out of range")
	}
	return flow.Select(options[n-1])
}
