package store

import (
	"sync"

	"github.com/estudia-cli/estudia/internal/domain"
)

// Snapshot is an immutable view of the profile-scoped collections plus the
// current plan. The scheduling engine only ever sees snapshots; it never
// touches live store state.
type Snapshot struct {
	ProfileID string
	Subjects  []domain.Subject
	Exams     []domain.Exam
	Topics    []domain.ExamTopic
	Schedules []domain.ClassSchedule
	Plan      *domain.StudyPlan
}

// Epoch identifies one plan-generation attempt. A commit carrying a stale
// epoch is discarded, so overlapping generations cannot clobber a newer
// result with an older one.
type Epoch uint64

// Store is the process-wide reactive container. Each mutation atomically
// replaces the relevant collection and notifies subscribers with a fresh
// snapshot.
type Store struct {
	mu    sync.RWMutex
	snap  Snapshot
	epoch Epoch

	subMu   sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
}

// New creates an empty store scoped to one profile.
func New(profileID string) *Store {
	return &Store{
		snap: Snapshot{ProfileID: profileID},
		subs: map[int]chan Snapshot{},
	}
}

// Snapshot returns a defensive copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.snap)
}

// ReplaceSubjects atomically replaces the subject collection.
func (s *Store) ReplaceSubjects(subjects []domain.Subject) {
	s.apply(func(snap *Snapshot) {
		snap.Subjects = append([]domain.Subject(nil), subjects...)
	})
}

// ReplaceExams atomically replaces the exam collection.
func (s *Store) ReplaceExams(exams []domain.Exam) {
	s.apply(func(snap *Snapshot) {
		snap.Exams = append([]domain.Exam(nil), exams...)
	})
}

// ReplaceTopics atomically replaces the topic collection.
func (s *Store) ReplaceTopics(topics []domain.ExamTopic) {
	s.apply(func(snap *Snapshot) {
		snap.Topics = append([]domain.ExamTopic(nil), topics...)
	})
}

// ReplaceSchedules atomically replaces the class schedule collection.
func (s *Store) ReplaceSchedules(schedules []domain.ClassSchedule) {
	s.apply(func(snap *Snapshot) {
		snap.Schedules = append([]domain.ClassSchedule(nil), schedules...)
	})
}

// BeginGeneration issues a fresh epoch for a plan-generation attempt.
// Issuing invalidates all previously issued epochs.
func (s *Store) BeginGeneration() Epoch {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	return s.epoch
}

// CommitPlan installs a generated plan if the epoch is still current.
// Returns false when a newer generation has started since; the stale plan
// is dropped without touching state.
func (s *Store) CommitPlan(epoch Epoch, plan *domain.StudyPlan) bool {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return false
	}
	s.snap.Plan = plan
	snap := copySnapshot(s.snap)
	s.mu.Unlock()

	s.notify(snap)
	return true
}

// Subscribe registers for snapshot notifications on every state change.
// The returned cancel func must be called to release the subscription.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 8)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Store) apply(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.snap)
	snap := copySnapshot(s.snap)
	s.mu.Unlock()

	s.notify(snap)
}

// notify delivers without blocking: a slow subscriber drops updates rather
// than stalling mutations.
func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func copySnapshot(snap Snapshot) Snapshot {
	out := Snapshot{
		ProfileID: snap.ProfileID,
		Plan:      snap.Plan,
	}
	out.Subjects = append([]domain.Subject(nil), snap.Subjects...)
	out.Exams = append([]domain.Exam(nil), snap.Exams...)
	out.Topics = append([]domain.ExamTopic(nil), snap.Topics...)
	out.Schedules = append([]domain.ClassSchedule(nil), snap.Schedules...)
	return out
}
