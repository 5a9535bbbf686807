package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
)

const pomodoroColumns = `id, profile_id, subject_id, topic_id, phase,
	planned_min, actual_min, started_at, ended_at, status, created_at`

// SQLitePomodoroRepo implements PomodoroRepo using a SQLite database.
type SQLitePomodoroRepo struct {
	db db.DBTX
}

// NewSQLitePomodoroRepo creates a new SQLitePomodoroRepo.
func NewSQLitePomodoroRepo(dbtx db.DBTX) *SQLitePomodoroRepo {
	return &SQLitePomodoroRepo{db: dbtx}
}

func (r *SQLitePomodoroRepo) Create(ctx context.Context, s *domain.PomodoroSession) error {
	query := `INSERT INTO pomodoro_sessions (` + pomodoroColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ProfileID, s.SubjectID, s.TopicID, string(s.Phase),
		s.PlannedMin, s.ActualMin, s.StartedAt.Format(time.RFC3339),
		formatTimePtr(s.EndedAt), string(s.Status),
		s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting pomodoro session: %w", err)
	}
	return nil
}

func (r *SQLitePomodoroRepo) GetByID(ctx context.Context, id string) (*domain.PomodoroSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+pomodoroColumns+` FROM pomodoro_sessions WHERE id = ?`, id)
	s, err := scanPomodoro(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pomodoro session: %w", ErrNotFound)
	}
	return s, err
}

func (r *SQLitePomodoroRepo) Update(ctx context.Context, s *domain.PomodoroSession) error {
	query := `UPDATE pomodoro_sessions
		SET actual_min = ?, ended_at = ?, status = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.ActualMin, formatTimePtr(s.EndedAt), string(s.Status), s.ID)
	if err != nil {
		return fmt.Errorf("updating pomodoro session: %w", err)
	}
	return requireAffected(res, "pomodoro session")
}

// ListRecent returns the profile's sessions started within the last N days,
// newest first.
func (r *SQLitePomodoroRepo) ListRecent(ctx context.Context, profileID string, days int) ([]*domain.PomodoroSession, error) {
	since := time.Now().AddDate(0, 0, -days).Format(time.RFC3339)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+pomodoroColumns+` FROM pomodoro_sessions
		 WHERE profile_id = ? AND started_at >= ?
		 ORDER BY started_at DESC`, profileID, since)
	if err != nil {
		return nil, fmt.Errorf("listing pomodoro sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.PomodoroSession
	for rows.Next() {
		s, err := scanPomodoro(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pomodoro sessions: %w", err)
	}
	return sessions, nil
}

func scanPomodoro(scan func(...any) error) (*domain.PomodoroSession, error) {
	var s domain.PomodoroSession
	var phase, status string
	var startedAt, createdAt string
	var endedAt sql.NullString

	err := scan(&s.ID, &s.ProfileID, &s.SubjectID, &s.TopicID, &phase,
		&s.PlannedMin, &s.ActualMin, &startedAt, &endedAt, &status, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning pomodoro session: %w", err)
	}

	s.Phase = domain.PomodoroPhase(phase)
	s.Status = domain.PomodoroStatus(status)
	if s.StartedAt, err = parseTime(startedAt, "pomodoro_session.started_at"); err != nil {
		return nil, err
	}
	if s.EndedAt, err = parseTimePtr(endedAt, "pomodoro_session.ended_at"); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime(createdAt, "pomodoro_session.created_at"); err != nil {
		return nil, err
	}
	return &s, nil
}
