package testutil

import (
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/google/uuid"
)

// Profile options

func NewTestProfile(name string) *domain.Profile {
	return &domain.Profile{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Subject options
type SubjectOption func(*domain.Subject)

func WithCode(code string) SubjectOption {
	return func(s *domain.Subject) {
		s.Code = code
	}
}

func WithColor(color string) SubjectOption {
	return func(s *domain.Subject) {
		s.Color = color
	}
}

func WithProfessor(name string) SubjectOption {
	return func(s *domain.Subject) {
		s.Professor = name
	}
}

func NewTestSubject(profileID, name string, opts ...SubjectOption) *domain.Subject {
	now := time.Now().UTC()
	s := &domain.Subject{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		Name:      name,
		Color:     "#7c3aed",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Exam options
type ExamOption func(*domain.Exam)

func WithExamTitle(title string) ExamOption {
	return func(e *domain.Exam) {
		e.Title = title
	}
}

func WithExamStatus(st domain.ExamStatus) ExamOption {
	return func(e *domain.Exam) {
		e.Status = st
	}
}

func WithWeight(pct float64) ExamOption {
	return func(e *domain.Exam) {
		e.WeightPct = pct
	}
}

func NewTestExam(subjectID string, examDate time.Time, opts ...ExamOption) *domain.Exam {
	now := time.Now().UTC()
	e := &domain.Exam{
		ID:          uuid.New().String(),
		SubjectID:   subjectID,
		Title:       "Parcial",
		ExamDate:    examDate,
		DurationMin: 90,
		Status:      domain.ExamUpcoming,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Topic options
type TopicOption func(*domain.ExamTopic)

func WithOrderIndex(i int) TopicOption {
	return func(t *domain.ExamTopic) {
		t.OrderIndex = i
	}
}

func WithEstimatedPomodoros(n int) TopicOption {
	return func(t *domain.ExamTopic) {
		t.EstimatedPomodoros = n
	}
}

func WithTopicStatus(st domain.TopicStatus) TopicOption {
	return func(t *domain.ExamTopic) {
		t.Status = st
	}
}

func NewTestTopic(examID, title string, opts ...TopicOption) *domain.ExamTopic {
	now := time.Now().UTC()
	t := &domain.ExamTopic{
		ID:                 uuid.New().String(),
		ExamID:             examID,
		Title:              title,
		EstimatedPomodoros: 4,
		Status:             domain.TopicNotStarted,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestSchedule(subjectID string, dayOfWeek int, start, end string) *domain.ClassSchedule {
	return &domain.ClassSchedule{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		DayOfWeek: dayOfWeek,
		StartTime: start,
		EndTime:   end,
		CreatedAt: time.Now().UTC(),
	}
}

// Pomodoro options
type PomodoroOption func(*domain.PomodoroSession)

func WithPhase(p domain.PomodoroPhase) PomodoroOption {
	return func(s *domain.PomodoroSession) {
		s.Phase = p
	}
}

func WithPomodoroStatus(st domain.PomodoroStatus) PomodoroOption {
	return func(s *domain.PomodoroSession) {
		s.Status = st
	}
}

func WithTopic(subjectID, topicID string) PomodoroOption {
	return func(s *domain.PomodoroSession) {
		s.SubjectID = subjectID
		s.TopicID = topicID
	}
}

func NewTestPomodoro(profileID string, opts ...PomodoroOption) *domain.PomodoroSession {
	now := time.Now().UTC()
	s := &domain.PomodoroSession{
		ID:         uuid.New().String(),
		ProfileID:  profileID,
		Phase:      domain.PhaseFocus,
		PlannedMin: 25,
		StartedAt:  now,
		Status:     domain.PomodoroActive,
		CreatedAt:  now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Note options
type NoteOption func(*domain.Note)

func WithBody(body string) NoteOption {
	return func(n *domain.Note) {
		n.Body = body
	}
}

func WithNoteSubject(subjectID string) NoteOption {
	return func(n *domain.Note) {
		n.SubjectID = subjectID
	}
}

func NewTestNote(profileID, title string, opts ...NoteOption) *domain.Note {
	now := time.Now().UTC()
	n := &domain.Note{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewTestSession builds one planned study session for plan fixtures.
func NewTestSession(subjectID, date, clock string) domain.StudySession {
	return domain.StudySession{
		ID:                 uuid.New().String(),
		SubjectID:          subjectID,
		ScheduledDate:      date,
		ScheduledTime:      clock,
		DurationMin:        30,
		SessionNumber:      1,
		RepetitionInterval: 1,
		Technique:          domain.TechniquePomodoro,
		Priority:           domain.PriorityMedium,
		Status:             domain.SessionPending,
	}
}
