package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aiNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func aiInput() planner.PlanInput {
	return planner.PlanInput{
		ProfileID: "prof-1",
		Subjects: []domain.Subject{
			{ID: "sub-1", Name: "Cálculo I", Code: "MAT101"},
			{ID: "sub-2", Name: "Historia"},
		},
		Exams: []domain.Exam{
			{ID: "exam-1", SubjectID: "sub-1", ExamDate: aiNow.AddDate(0, 0, 10)},
		},
		Topics: []domain.ExamTopic{
			{ID: "topic-1", ExamID: "exam-1", Title: "Límites"},
			{ID: "topic-2", ExamID: "exam-1", Title: "Derivadas", OrderIndex: 1},
		},
		Schedules: []domain.ClassSchedule{
			{ID: "cls-1", SubjectID: "sub-1", DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00"},
			{ID: "cls-2", SubjectID: "sub-2", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:30"},
		},
	}
}

const validPlanJSON = `{
  "strategy": "Repaso progresivo con énfasis en práctica",
  "total_weekly_hours": 6,
  "rest_days": ["Domingo"],
  "recommendations": [
    {
      "exam_subject": "MAT101",
      "exam_date": "2025-03-20",
      "priority": "low",
      "topics": [
        {
          "topic": "Límites",
          "sessions": [
            {
              "session_number": 1,
              "date": "2025-03-11",
              "time": "16:00",
              "duration_minutes": 50,
              "technique": "deep-focus",
              "description": "Primer contacto con límites"
            },
            {
              "session_number": 2,
              "date": "2025-03-18",
              "time": "17:00",
              "duration_minutes": 0,
              "technique": "osmosis",
              "expected_outcome": "Resolver sin apuntes"
            }
          ]
        }
      ]
    }
  ]
}`

func TestBuildPlanningPrompt(t *testing.T) {
	prompt := BuildPlanningPrompt(aiInput(), aiNow)

	assert.Contains(t, prompt, "2025-03-10")
	assert.Contains(t, prompt, "Lunes", "weekday name for a Monday")
	assert.Contains(t, prompt, "Cálculo I")
	assert.Contains(t, prompt, "Límites")
	assert.Contains(t, prompt, "10:00-12:00: Cálculo I")
	assert.Contains(t, prompt, "08:00-09:30: Historia")
	assert.Contains(t, prompt, "exam_subject")
	assert.Contains(t, prompt, "Responde solo con JSON")
}

func TestBuildPlanningPrompt_NoSchedules(t *testing.T) {
	in := aiInput()
	in.Schedules = nil
	prompt := BuildPlanningPrompt(in, aiNow)
	assert.Contains(t, prompt, "Sin clases registradas")
}

func planViaServer(t *testing.T, body string, status int) (*domain.StudyPlan, error) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "nope", status)
			return
		}
		w.Write([]byte(candidateBody(body)))
	}))
	t.Cleanup(srv.Close)

	p := NewPlanner(NewClient(testConfig(srv.URL), NoopObserver{}), nil)
	return p.RequestPlan(context.Background(), aiInput(), aiNow)
}

func TestRequestPlan_NormalizesResponse(t *testing.T) {
	plan, err := planViaServer(t, "Aquí está tu plan:\n```json\n"+validPlanJSON+"\n```", http.StatusOK)
	require.NoError(t, err)
	require.Len(t, plan.Sessions, 2)

	assert.Equal(t, "Repaso progresivo con énfasis en práctica", plan.Strategy)

	first := plan.Sessions[0]
	assert.Equal(t, "sub-1", first.SubjectID, "subject resolved by code")
	assert.Equal(t, "exam-1", first.ExamID)
	assert.Equal(t, "topic-1", first.TopicID, "topic resolved by exact title")
	assert.Equal(t, domain.TechniqueDeepFocus, first.Technique)
	assert.Equal(t, 50, first.DurationMin)
	assert.Equal(t, 1, first.RepetitionInterval, "recomputed from session_number, not trusted")
	assert.Equal(t, "Primer contacto con límites", first.Recommendation)
	// 2025-03-11 vs exam 2025-03-20: 9 days out -> medium, even though the
	// payload claimed "low".
	assert.Equal(t, domain.PriorityMedium, first.Priority)

	second := plan.Sessions[1]
	assert.Equal(t, 25, second.DurationMin, "invalid duration defaulted")
	assert.Equal(t, domain.TechniquePomodoro, second.Technique, "unknown technique defaulted")
	assert.Equal(t, 3, second.RepetitionInterval)
	assert.Equal(t, "Resolver sin apuntes", second.Recommendation, "expected_outcome fallback")
	// 2025-03-18 vs exam 2025-03-20: 2 days out -> urgent.
	assert.Equal(t, domain.PriorityUrgent, second.Priority)

	hours, coverage := planner.Totals(plan.Sessions)
	assert.InDelta(t, hours, plan.TotalStudyHours, 1e-9)
	assert.Equal(t, coverage, plan.SubjectsCoverage)
}

func TestRequestPlan_UnknownSubjectSkipped(t *testing.T) {
	body := `{"strategy": "s", "recommendations": [
		{"exam_subject": "Alquimia", "exam_date": "2025-03-20",
		 "topics": [{"topic": "Piedra filosofal", "sessions": [
			{"session_number": 1, "date": "2025-03-11", "time": "10:00", "duration_minutes": 30, "technique": "pomodoro"}
		 ]}]}
	]}`
	_, err := planViaServer(t, body, http.StatusOK)
	assert.True(t, errors.Is(err, ErrEmptyPlan), "all recommendations unresolvable -> empty plan error")
}

func TestRequestPlan_InvalidSessionDateSkipped(t *testing.T) {
	body := `{"strategy": "s", "recommendations": [
		{"exam_subject": "Historia", "exam_date": "bogus",
		 "topics": [{"topic": "x", "sessions": [
			{"session_number": 1, "date": "mañana", "time": "10:00", "duration_minutes": 30, "technique": "pomodoro"},
			{"session_number": 1, "date": "2025-03-12", "time": "10:00", "duration_minutes": 30, "technique": "pomodoro"}
		 ]}]}
	]}`
	plan, err := planViaServer(t, body, http.StatusOK)
	require.NoError(t, err)
	require.Len(t, plan.Sessions, 1, "only the parsable session survives")
	assert.Equal(t, "sub-2", plan.Sessions[0].SubjectID)
	assert.Empty(t, plan.Sessions[0].ExamID, "Historia has no exams in the snapshot")
	assert.Equal(t, domain.PriorityMedium, plan.Sessions[0].Priority, "no exam date to judge urgency")
}

func TestRequestPlan_TransportFailure(t *testing.T) {
	_, err := planViaServer(t, "", http.StatusInternalServerError)
	assert.Error(t, err)
}

func TestRequestPlan_MalformedResponse(t *testing.T) {
	_, err := planViaServer(t, "lo siento, no puedo generar un plan", http.StatusOK)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestRequestPlan_NoCredential(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = ""
	p := NewPlanner(NewClient(cfg, NoopObserver{}), nil)

	_, err := p.RequestPlan(context.Background(), aiInput(), aiNow)
	assert.True(t, errors.Is(err, ErrNoCredential))
}
