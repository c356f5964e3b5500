package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/results"
	"github.com/rehber-app/anket-client/internal/store"
)

const (
	SheetResults = "Sonuçlar"
	SheetSummary = "Özet"
	SheetClasses = "Sınıflar"
)

type exportService struct {
	results ResultService
	logger  *slog.Logger
}

func NewExportService(results ResultService, logger *slog.Logger) ExportService {
	return &exportService{results: results, logger: logger}
}

// WriteWorkbook fetches the survey's export payload and writes it as xlsx.
// A failed refresh still exports the last payload the session holds.
func (s *exportService) WriteWorkbook(ctx context.Context, st *store.Store, surveyID models.ID, w io.Writer) error {
	loaded, err := s.results.FetchExport(ctx, st, surveyID)
	if !loaded.Present {
		if err == nil {
			err = ErrSurveyNotFound
		}
		return err
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Exporting stale payload", "survey_id", surveyID.String(), "error", err)
	}

	f, err := BuildWorkbook(loaded.Value)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

// BuildWorkbook lays out one sheet of raw answers, one of per-question option
// counts and one of per-class participation.
func BuildWorkbook(export client.Export) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetResults); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	for _, name := range []string{SheetSummary, SheetClasses} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
		}
	}

	if err := writeResultsSheet(f, export); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, export); err != nil {
		return nil, err
	}
	if err := writeClassSheet(f, export.Results); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeResultsSheet(f *excelize.File, export client.Export) error {
	questions := export.Survey.Questions

	headers := []interface{}{"Öğrenci ID", "Ad", "Soyad", "Sınıf", "Tamamlandı", "Tamamlanma", "Puan"}
	for i, q := range questions {
		label := q.Text
		if label == "" {
			label = fmt.Sprintf("Soru %d", i+1)
		}
		headers = append(headers, label)
	}
	if err := writeRow(f, SheetResults, 1, headers); err != nil {
		return err
	}

	for rowIndex, r := range export.Results {
		completed := "Hayır"
		if r.Completed {
			completed = "Evet"
		}
		row := []interface{}{r.StudentID.String(), r.Student.FirstName, r.Student.LastName, r.Student.Class, completed, r.CompletedAt}
		if r.Score != nil {
			row = append(row, *r.Score)
		} else {
			row = append(row, "")
		}

		width := len(questions)
		if len(r.Answers) > width {
			width = len(r.Answers)
		}
		for i := 0; i < width; i++ {
			if a := r.AnswerAt(i); a != nil {
				row = append(row, a.Value)
			} else {
				row = append(row, "")
			}
		}
		if err := writeRow(f, SheetResults, rowIndex+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, export client.Export) error {
	if err := writeRow(f, SheetSummary, 1, []interface{}{"Soru No", "Soru", "Seçenek", "Sayı", "Yüzde"}); err != nil {
		return err
	}

	row := 2
	for i, q := range export.Survey.Questions {
		tally := results.TallyOptions(q, results.Rollup(export.Results, i))
		for _, oc := range tally {
			if err := writeRow(f, SheetSummary, row, []interface{}{i + 1, q.Text, oc.Option, oc.Count, oc.Percent}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeClassSheet(f *excelize.File, all []models.SurveyResult) error {
	if err := writeRow(f, SheetClasses, 1, []interface{}{"Sınıf", "Katılım", "Tamamlanan", "Oran", "Ortalama Puan"}); err != nil {
		return err
	}

	stats := results.ComputeStatistics(all)
	for i, class := range results.Classes(all) {
		cs := stats.ClassBreakdown[class]
		row := []interface{}{class, cs.Participants, cs.Completed, results.ParticipationPercent(cs.Participants, cs.Completed), cs.AverageScore}
		if err := writeRow(f, SheetClasses, i+2, row); err != nil {
			return err
		}
	}
	return nil
}
