package ai

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/planner"
)

var spanishWeekdays = [7]string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

// promptSubject is the trimmed subject payload embedded in the prompt.
type promptSubject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

type promptExam struct {
	Subject     string       `json:"subject"`
	Title       string       `json:"title,omitempty"`
	ExamDate    string       `json:"exam_date"`
	DaysUntil   int          `json:"days_until"`
	DurationMin int          `json:"duration_minutes,omitempty"`
	WeightPct   float64      `json:"weight_percentage,omitempty"`
	Topics      []promptTopic `json:"topics"`
}

type promptTopic struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	EstimatedPomodoros int    `json:"estimated_pomodoros,omitempty"`
	Status             string `json:"status"`
}

// BuildPlanningPrompt renders the full planning instruction: current date,
// the subject/exam/topic payload as JSON, the weekly class occupancy as
// text, and the strict output schema the service must follow.
func BuildPlanningPrompt(in planner.PlanInput, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Eres un planificador de estudio experto en repetición espaciada.\n\n")
	fmt.Fprintf(&b, "Fecha actual: %s (%s)\n\n",
		now.Format(domain.DateLayout), spanishWeekdays[int(now.Weekday())])

	b.WriteString("## Asignaturas\n")
	b.WriteString(marshalPromptJSON(buildSubjectPayload(in)))
	b.WriteString("\n\n## Exámenes y temas\n")
	b.WriteString(marshalPromptJSON(buildExamPayload(in, now)))

	b.WriteString("\n\n## Horario semanal ocupado (clases)\n")
	b.WriteString(renderOccupancy(in))

	b.WriteString(`

## Instrucciones
- Ninguna sesión puede solaparse con las horas de clase listadas arriba.
- Programa entre 3 y 5 sesiones espaciadas por tema (intervalos crecientes: 1, 3, 7, 14 días).
- Todas las sesiones de un tema deben terminar ANTES de la fecha de su examen.
- Varía las técnicas: deep-focus, active-recall, practice, feynman, interleaving, revision, pomodoro.
- Duración de cada sesión entre 25 y 90 minutos.
- Usa fechas reales del calendario en formato YYYY-MM-DD y horas HH:MM.

## Formato de salida
Responde ÚNICAMENTE con un objeto JSON con esta estructura exacta:
{
  "strategy": "resumen de la estrategia global",
  "total_weekly_hours": 12.5,
  "rest_days": ["Domingo"],
  "recommendations": [
    {
      "exam_subject": "nombre o código exacto de la asignatura",
      "exam_date": "YYYY-MM-DD",
      "priority": "urgent|high|medium|low",
      "topics": [
        {
          "topic": "título exacto del tema",
          "topic_id": "id del tema si se conoce",
          "sessions": [
            {
              "session_number": 1,
              "day_of_week": "Lunes",
              "date": "YYYY-MM-DD",
              "time": "HH:MM",
              "duration_minutes": 50,
              "technique": "deep-focus",
              "description": "qué hacer en la sesión",
              "expected_outcome": "qué se consigue"
            }
          ]
        }
      ]
    }
  ]
}

Responde solo con JSON. Sin explicaciones, sin markdown.`)

	return b.String()
}

func buildSubjectPayload(in planner.PlanInput) []promptSubject {
	out := make([]promptSubject, 0, len(in.Subjects))
	for _, s := range in.Subjects {
		out = append(out, promptSubject{ID: s.ID, Name: s.Name, Code: s.Code})
	}
	return out
}

func buildExamPayload(in planner.PlanInput, now time.Time) []promptExam {
	out := make([]promptExam, 0, len(in.Exams))
	for _, e := range in.Exams {
		subject, ok := in.SubjectByID(e.SubjectID)
		if !ok {
			continue
		}
		pe := promptExam{
			Subject:     subject.Name,
			Title:       e.Title,
			ExamDate:    e.ExamDate.Format(domain.DateLayout),
			DaysUntil:   planner.DaysUntil(e.ExamDate, now),
			DurationMin: e.DurationMin,
			WeightPct:   e.WeightPct,
		}
		for _, t := range in.TopicsForExam(e.ID) {
			pe.Topics = append(pe.Topics, promptTopic{
				ID:                 t.ID,
				Title:              t.Title,
				EstimatedPomodoros: t.EstimatedPomodoros,
				Status:             string(t.Status),
			})
		}
		out = append(out, pe)
	}
	return out
}

// renderOccupancy groups class intervals by day name, each rendered as
// "HH:MM-HH:MM: SubjectName" and comma-joined.
func renderOccupancy(in planner.PlanInput) string {
	if len(in.Schedules) == 0 {
		return "Sin clases registradas.\n"
	}

	byDay := map[int][]string{}
	for _, c := range in.Schedules {
		if c.DayOfWeek < 0 || c.DayOfWeek > 6 {
			continue
		}
		name := c.SubjectID
		if s, ok := in.SubjectByID(c.SubjectID); ok {
			name = s.Name
		}
		byDay[c.DayOfWeek] = append(byDay[c.DayOfWeek],
			fmt.Sprintf("%s-%s: %s", c.StartTime, c.EndTime, name))
	}

	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Ints(days)

	var b strings.Builder
	for _, d := range days {
		sort.Strings(byDay[d])
		fmt.Fprintf(&b, "%s: %s\n", spanishWeekdays[d], strings.Join(byDay[d], ", "))
	}
	return b.String()
}

func marshalPromptJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
