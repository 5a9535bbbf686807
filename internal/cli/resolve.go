package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/estudia-cli/estudia/internal/domain"
)

// resolveSubject resolves user input to a subject: exact name, exact course
// code (case-insensitive), exact ID, then unambiguous ID prefix.
func resolveSubject(ctx context.Context, app *App, profileID, input string) (*domain.Subject, error) {
	if input == "" {
		return nil, fmt.Errorf("subject is required")
	}

	subjects, err := app.Catalog.ListSubjects(ctx, profileID)
	if err != nil {
		return nil, err
	}

	for _, s := range subjects {
		if strings.EqualFold(s.Name, input) || (s.Code != "" && strings.EqualFold(s.Code, input)) {
			return s, nil
		}
	}
	for _, s := range subjects {
		if s.ID == input {
			return s, nil
		}
	}

	var matches []*domain.Subject
	for _, s := range subjects {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("subject not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("subject %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveExam resolves user input to one of the subject's exams: exact ID,
// exact title (case-insensitive), then unambiguous ID prefix.
func resolveExam(ctx context.Context, app *App, subjectID, input string) (*domain.Exam, error) {
	if input == "" {
		return nil, fmt.Errorf("exam is required")
	}

	exams, err := app.Catalog.ListExamsBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	for _, e := range exams {
		if e.ID == input || strings.EqualFold(e.Title, input) {
			return e, nil
		}
	}

	var matches []*domain.Exam
	for _, e := range exams {
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("exam not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("exam %q is ambiguous (%d matches)", input, len(matches))
	}
}

// shortID returns the first 8 characters of an ID for display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
