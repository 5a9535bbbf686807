package planner

import (
	"testing"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func calcInput(examOffsetDays int, topicTitles ...string) PlanInput {
	subject := domain.Subject{ID: "sub-1", ProfileID: "prof-1", Name: "Calc I", Code: "MAT101"}
	exam := domain.Exam{
		ID:        "exam-1",
		SubjectID: subject.ID,
		Title:     "Parcial 1",
		ExamDate:  testNow.AddDate(0, 0, examOffsetDays),
		Status:    domain.ExamUpcoming,
	}
	in := PlanInput{
		ProfileID: "prof-1",
		Subjects:  []domain.Subject{subject},
		Exams:     []domain.Exam{exam},
	}
	for i, title := range topicTitles {
		in.Topics = append(in.Topics, domain.ExamTopic{
			ID:         "topic-" + title,
			ExamID:     exam.ID,
			Title:      title,
			OrderIndex: i,
		})
	}
	return in
}

// normalize strips nondeterministic ids so plans can be compared.
func normalize(plan *domain.StudyPlan) *domain.StudyPlan {
	out := *plan
	out.Sessions = make([]domain.StudySession, len(plan.Sessions))
	copy(out.Sessions, plan.Sessions)
	for i := range out.Sessions {
		out.Sessions[i].ID = ""
	}
	return &out
}

func TestGenerateBasicPlan_Deterministic(t *testing.T) {
	in := calcInput(10, "Límites", "Derivadas")

	a := GenerateBasicPlan(in, testNow, nil)
	b := GenerateBasicPlan(in, testNow, nil)

	assert.Equal(t, normalize(a), normalize(b))
}

func TestGenerateBasicPlan_ExamBoundary(t *testing.T) {
	in := calcInput(10, "Límites", "Derivadas")
	plan := GenerateBasicPlan(in, testNow, nil)

	examDate := in.Exams[0].ExamDate.Format(domain.DateLayout)
	for _, s := range plan.Sessions {
		assert.Less(t, s.ScheduledDate, examDate, "session %s/%s", s.ScheduledDate, s.ScheduledTime)
	}
}

func TestGenerateBasicPlan_SortedByDateTime(t *testing.T) {
	in := calcInput(30, "Límites", "Derivadas", "Integrales")
	plan := GenerateBasicPlan(in, testNow, nil)
	require.NotEmpty(t, plan.Sessions)

	for i := 1; i < len(plan.Sessions); i++ {
		prev, cur := plan.Sessions[i-1], plan.Sessions[i]
		ok := prev.ScheduledDate < cur.ScheduledDate ||
			(prev.ScheduledDate == cur.ScheduledDate && prev.ScheduledTime <= cur.ScheduledTime)
		assert.True(t, ok, "sessions out of order at %d: %v then %v", i, prev, cur)
	}
}

func TestGenerateBasicPlan_EmptyInput(t *testing.T) {
	plan := GenerateBasicPlan(PlanInput{ProfileID: "prof-1"}, testNow, nil)

	assert.Empty(t, plan.Sessions)
	assert.Zero(t, plan.TotalStudyHours)
	assert.Empty(t, plan.SubjectsCoverage)
	assert.Equal(t, "prof-1", plan.ProfileID)
}

func TestGenerateBasicPlan_SkipsExamWithoutSubject(t *testing.T) {
	in := calcInput(10, "Límites")
	in.Exams = append(in.Exams, domain.Exam{
		ID:        "exam-orphan",
		SubjectID: "sub-missing",
		ExamDate:  testNow.AddDate(0, 0, 5),
	})
	in.Topics = append(in.Topics, domain.ExamTopic{
		ID: "topic-orphan", ExamID: "exam-orphan", Title: "Huérfano",
	})

	var logged []string
	log := func(format string, args ...any) {
		logged = append(logged, format)
	}
	plan := GenerateBasicPlan(in, testNow, log)

	for _, s := range plan.Sessions {
		assert.NotEqual(t, "exam-orphan", s.ExamID)
	}
	assert.NotEmpty(t, logged, "skip should be reported")
}

func TestGenerateBasicPlan_CoverageMatchesTotal(t *testing.T) {
	in := calcInput(30, "Límites", "Derivadas")
	in.Subjects = append(in.Subjects, domain.Subject{ID: "sub-2", Name: "Historia"})
	in.Exams = append(in.Exams, domain.Exam{
		ID: "exam-2", SubjectID: "sub-2", ExamDate: testNow.AddDate(0, 0, 20),
	})
	in.Topics = append(in.Topics, domain.ExamTopic{ID: "topic-h1", ExamID: "exam-2", Title: "Revolución"})

	plan := GenerateBasicPlan(in, testNow, nil)

	var sum float64
	for _, h := range plan.SubjectsCoverage {
		sum += h
	}
	assert.InDelta(t, plan.TotalStudyHours, sum, 1e-9)
}

// One subject, exam in 10 days, 2 topics: only the 1/3/7-day intervals fit
// the horizon, all sessions priority medium (10 days sits in the 8-14 band),
// techniques in fixed order.
func TestGenerateBasicPlan_CalcScenario(t *testing.T) {
	in := calcInput(10, "Límites", "Derivadas")
	plan := GenerateBasicPlan(in, testNow, nil)

	byTopic := map[string][]domain.StudySession{}
	for _, s := range plan.Sessions {
		assert.Equal(t, domain.PriorityMedium, s.Priority)
		byTopic[s.TopicID] = append(byTopic[s.TopicID], s)
	}
	require.Len(t, byTopic, 2)

	wantTechniques := []domain.StudyTechnique{
		domain.TechniqueDeepFocus,
		domain.TechniqueActiveRecall,
		domain.TechniquePractice,
	}
	wantDurations := []int{50, 30, 30}

	for topicID, sessions := range byTopic {
		assert.LessOrEqual(t, len(sessions), 3, "topic %s", topicID)
		seen := map[int]domain.StudySession{}
		for _, s := range sessions {
			seen[s.SessionNumber] = s
		}
		for n, s := range seen {
			require.GreaterOrEqual(t, n, 1)
			require.LessOrEqual(t, n, 3)
			assert.Equal(t, wantTechniques[n-1], s.Technique)
			assert.Equal(t, wantDurations[n-1], s.DurationMin)
			assert.Equal(t, IntervalForSession(n-1), s.RepetitionInterval)
		}
	}
}

// Session priority follows the exam distance bands, not a fixed value.
func TestGenerateBasicPlan_PriorityTracksExamDistance(t *testing.T) {
	tests := []struct {
		name       string
		offsetDays int
		want       domain.Priority
	}{
		{"3 days out is urgent", 3, domain.PriorityUrgent},
		{"7 days out is high", 7, domain.PriorityHigh},
		{"14 days out is medium", 14, domain.PriorityMedium},
		{"30 days out is low", 30, domain.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := GenerateBasicPlan(calcInput(tt.offsetDays, "Límites"), testNow, nil)
			require.NotEmpty(t, plan.Sessions)
			for _, s := range plan.Sessions {
				assert.Equal(t, tt.want, s.Priority)
			}
		})
	}
}

func TestGenerateBasicPlan_TooCloseExamYieldsNoSessions(t *testing.T) {
	in := calcInput(1, "Límites")
	plan := GenerateBasicPlan(in, testNow, nil)

	assert.Empty(t, plan.Sessions, "1-day horizon cannot fit the 1-day interval")
	assert.Zero(t, plan.TotalStudyHours)
}

func TestGenerateBasicPlan_AvoidsClassCollisions(t *testing.T) {
	in := calcInput(30, "Límites", "Derivadas", "Integrales")
	// Occupy every weekday morning so 08/09/10 slots always collide.
	for day := 0; day < 7; day++ {
		in.Schedules = append(in.Schedules, domain.ClassSchedule{
			ID:        "cls-" + string(rune('a'+day)),
			SubjectID: "sub-1",
			DayOfWeek: day,
			StartTime: "08:00",
			EndTime:   "13:00",
		})
	}

	plan := GenerateBasicPlan(in, testNow, nil)
	require.NotEmpty(t, plan.Sessions)

	for _, s := range plan.Sessions {
		start, err := domain.ParseClock(s.ScheduledTime)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, start, 13*60,
			"session at %s overlaps a class interval", s.ScheduledTime)
	}
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 10, DaysUntil(testNow.AddDate(0, 0, 10), testNow))
	assert.Equal(t, 1, DaysUntil(testNow.Add(2*time.Hour), testNow))
	assert.Equal(t, 0, DaysUntil(testNow, testNow))
	assert.Equal(t, -4, DaysUntil(testNow.AddDate(0, 0, -5).Add(2*time.Hour), testNow))
}
