package results

import "github.com/rehber-app/anket-client/internal/models"

// AllClasses is the synthetic "all" entry prepended to every class list.
const AllClasses = "Tümü"

// Classes returns the distinct non-empty class labels in first-seen order.
// Labels are compared verbatim: "9A" and "9a " are different classes.
func Classes(results []models.SurveyResult) []string {
	seen := make(map[string]struct{})
	classes := make([]string, 0)
	for _, r := range results {
		label := r.Student.Class
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		classes = append(classes, label)
	}
	return classes
}

// ClassList is Classes with the AllClasses sentinel in front.
func ClassList(results []models.SurveyResult) []string {
	return append([]string{AllClasses}, Classes(results)...)
}

// FilterByClass keeps results whose student class equals class. The sentinel
// (or an empty selection) returns the input unchanged.
func FilterByClass(results []models.SurveyResult, class string) []models.SurveyResult {
	if class == AllClasses || class == "" {
		return results
	}

	filtered := make([]models.SurveyResult, 0)
	for _, r := range results {
		if r.Student.Class == class {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
