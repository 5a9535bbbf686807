package planner

import (
	"sort"

	"github.com/estudia-cli/estudia/internal/domain"
)

// PlanInput is a full snapshot of the profile-scoped collections the
// scheduling engine reads. The engine never mutates it.
type PlanInput struct {
	ProfileID string
	Subjects  []domain.Subject
	Exams     []domain.Exam
	Topics    []domain.ExamTopic
	Schedules []domain.ClassSchedule
}

// SubjectByID resolves a subject from the snapshot.
func (in PlanInput) SubjectByID(id string) (domain.Subject, bool) {
	for _, s := range in.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Subject{}, false
}

// SubjectByNameOrCode resolves a subject by exact name or course code match.
func (in PlanInput) SubjectByNameOrCode(key string) (domain.Subject, bool) {
	for _, s := range in.Subjects {
		if s.Name == key || (s.Code != "" && s.Code == key) {
			return s, true
		}
	}
	return domain.Subject{}, false
}

// TopicsForExam returns the exam's topics in stable order.
func (in PlanInput) TopicsForExam(examID string) []domain.ExamTopic {
	var out []domain.ExamTopic
	for _, t := range in.Topics {
		if t.ExamID == examID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}

// TopicByTitle resolves a topic within an exam by exact title match.
func (in PlanInput) TopicByTitle(examID, title string) (domain.ExamTopic, bool) {
	for _, t := range in.Topics {
		if t.ExamID == examID && t.Title == title {
			return t, true
		}
	}
	return domain.ExamTopic{}, false
}

// TopicByID resolves a topic anywhere in the snapshot.
func (in PlanInput) TopicByID(id string) (domain.ExamTopic, bool) {
	for _, t := range in.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return domain.ExamTopic{}, false
}

// SchedulesForWeekday returns every class interval occupying the given
// weekday, regardless of subject: the student is busy either way.
func (in PlanInput) SchedulesForWeekday(weekday int) []domain.ClassSchedule {
	var out []domain.ClassSchedule
	for _, c := range in.Schedules {
		if c.DayOfWeek == weekday {
			out = append(out, c)
		}
	}
	return out
}
