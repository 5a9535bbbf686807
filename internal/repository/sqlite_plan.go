package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/planner"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(dbtx db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: dbtx}
}

// Save replaces the stored plan for the profile. The delete cascades to the
// previous plan's sessions, so Save must run inside a transaction when
// callers need atomicity with other writes.
func (r *SQLitePlanRepo) Save(ctx context.Context, plan *domain.StudyPlan) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM study_plans WHERE profile_id = ?`, plan.ProfileID); err != nil {
		return fmt.Errorf("clearing previous plan: %w", err)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO study_plans (profile_id, generated_at, strategy) VALUES (?, ?, ?)`,
		plan.ProfileID, plan.GeneratedAt.Format(time.RFC3339), plan.Strategy)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	query := `INSERT INTO study_sessions (
		id, profile_id, subject_id, exam_id, topic_id,
		scheduled_date, scheduled_time, duration_min,
		session_number, repetition_interval, technique,
		priority, status, recommendation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, s := range plan.Sessions {
		_, err := r.db.ExecContext(ctx, query,
			s.ID, plan.ProfileID, s.SubjectID, s.ExamID, s.TopicID,
			s.ScheduledDate, s.ScheduledTime, s.DurationMin,
			s.SessionNumber, s.RepetitionInterval, string(s.Technique),
			string(s.Priority), string(s.Status), s.Recommendation)
		if err != nil {
			return fmt.Errorf("inserting session %s: %w", s.ID, err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) Get(ctx context.Context, profileID string) (*domain.StudyPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT profile_id, generated_at, strategy FROM study_plans WHERE profile_id = ?`,
		profileID)

	var plan domain.StudyPlan
	var generatedAt string
	err := row.Scan(&plan.ProfileID, &generatedAt, &plan.Strategy)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("study plan: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	if plan.GeneratedAt, err = parseTime(generatedAt, "study_plan.generated_at"); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, subject_id, exam_id, topic_id, scheduled_date, scheduled_time,
		        duration_min, session_number, repetition_interval, technique,
		        priority, status, recommendation
		 FROM study_sessions WHERE profile_id = ?
		 ORDER BY scheduled_date, scheduled_time`, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing plan sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.StudySession
		var technique, priority, status string
		err := rows.Scan(&s.ID, &s.SubjectID, &s.ExamID, &s.TopicID,
			&s.ScheduledDate, &s.ScheduledTime, &s.DurationMin,
			&s.SessionNumber, &s.RepetitionInterval, &technique,
			&priority, &status, &s.Recommendation)
		if err != nil {
			return nil, fmt.Errorf("scanning plan session: %w", err)
		}
		s.Technique = domain.StudyTechnique(technique)
		s.Priority = domain.Priority(priority)
		s.Status = domain.SessionStatus(status)
		plan.Sessions = append(plan.Sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan sessions: %w", err)
	}

	plan.TotalStudyHours, plan.SubjectsCoverage = planner.Totals(plan.Sessions)
	return &plan, nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, profileID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM study_plans WHERE profile_id = ?`, profileID); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}
