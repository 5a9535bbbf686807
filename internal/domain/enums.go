package domain

type ExamStatus string

const (
	ExamUpcoming  ExamStatus = "upcoming"
	ExamCompleted ExamStatus = "completed"
	ExamCancelled ExamStatus = "cancelled"
)

type TopicStatus string

const (
	TopicNotStarted TopicStatus = "not_started"
	TopicInProgress TopicStatus = "in_progress"
	TopicCompleted  TopicStatus = "completed"
)

type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionCompleted SessionStatus = "completed"
	SessionSkipped   SessionStatus = "skipped"
)

type StudyTechnique string

const (
	TechniquePomodoro     StudyTechnique = "pomodoro"
	TechniqueDeepFocus    StudyTechnique = "deep-focus"
	TechniqueActiveRecall StudyTechnique = "active-recall"
	TechniqueFeynman      StudyTechnique = "feynman"
	TechniqueInterleaving StudyTechnique = "interleaving"
	TechniqueRevision     StudyTechnique = "revision"
	TechniquePractice     StudyTechnique = "practice"
)

// ValidTechniques is the canonical set of accepted study technique strings.
var ValidTechniques = map[string]bool{
	"pomodoro": true, "deep-focus": true, "active-recall": true,
	"feynman": true, "interleaving": true, "revision": true, "practice": true,
}

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type PomodoroPhase string

const (
	PhaseFocus      PomodoroPhase = "focus"
	PhaseShortBreak PomodoroPhase = "short_break"
	PhaseLongBreak  PomodoroPhase = "long_break"
)

type PomodoroStatus string

const (
	PomodoroActive    PomodoroStatus = "active"
	PomodoroDone      PomodoroStatus = "completed"
	PomodoroAbandoned PomodoroStatus = "abandoned"
)
