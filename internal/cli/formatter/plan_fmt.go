package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/planner"
)

// subjectNamer resolves subject IDs to display names; unknown IDs fall back
// to the raw ID.
type subjectNamer func(id string) string

// SubjectNames builds a namer from a subject list.
func SubjectNames(subjects []*domain.Subject) func(string) string {
	byID := make(map[string]string, len(subjects))
	for _, s := range subjects {
		byID[s.ID] = s.Name
	}
	return func(id string) string {
		if name, ok := byID[id]; ok {
			return name
		}
		return id
	}
}

// FormatPlan renders the full plan: a summary header followed by one section
// per scheduled day.
func FormatPlan(plan *domain.StudyPlan, nameOf subjectNamer) string {
	if plan == nil || len(plan.Sessions) == 0 {
		return Dim("No hay plan de estudio. Genera uno con: estudia plan generate")
	}

	var b strings.Builder
	b.WriteString(Header("Plan de estudio"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s total · %d sesiones · estrategia: %s\n\n",
		Dim("Generado "+plan.GeneratedAt.Format("2006-01-02 15:04")),
		Bold(Hours(plan.TotalStudyHours)),
		len(plan.Sessions),
		plan.Strategy))

	grouped := planner.GroupByDate(plan)
	dates := make([]string, 0, len(grouped))
	for d := range grouped {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, date := range dates {
		b.WriteString(formatDayHeading(date))
		b.WriteString("\n")
		b.WriteString(FormatSessions(grouped[date], nameOf))
		b.WriteString("\n")
	}

	if len(plan.SubjectsCoverage) > 0 {
		b.WriteString(Header("Cobertura por asignatura"))
		b.WriteString("\n")
		ids := make([]string, 0, len(plan.SubjectsCoverage))
		for id := range plan.SubjectsCoverage {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return nameOf(ids[i]) < nameOf(ids[j]) })
		for _, id := range ids {
			b.WriteString(fmt.Sprintf("%s  %s\n", Bold(nameOf(id)), Hours(plan.SubjectsCoverage[id])))
		}
	}
	return b.String()
}

// FormatSessions renders one day's sessions as an aligned table.
func FormatSessions(sessions []domain.StudySession, nameOf subjectNamer) string {
	if len(sessions) == 0 {
		return Dim("Sin sesiones programadas.") + "\n"
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.ScheduledTime,
			nameOf(s.SubjectID),
			TechniqueLabel(s.Technique),
			Duration(s.DurationMin),
			PriorityBadge(s.Priority),
			s.Recommendation,
		})
	}
	return RenderTable(
		[]string{"Hora", "Asignatura", "Técnica", "Duración", "Prioridad", "Nota"},
		rows)
}

// FormatWeek renders a 7-day window starting at start, including empty days.
func FormatWeek(plan *domain.StudyPlan, start time.Time, nameOf subjectNamer) string {
	var b strings.Builder
	for _, day := range planner.DayWindow(plan, start, 7) {
		b.WriteString(formatDayHeading(day.Date))
		b.WriteString("\n")
		b.WriteString(FormatSessions(day.Sessions, nameOf))
		b.WriteString("\n")
	}
	return b.String()
}

func formatDayHeading(date string) string {
	heading := date
	if t, err := time.Parse(domain.DateLayout, date); err == nil {
		heading = fmt.Sprintf("%s %s", WeekdayName(int(t.Weekday())), date)
	}
	return StyleBlue.Bold(true).Render(heading)
}
