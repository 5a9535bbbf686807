package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
)

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(dbtx db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: dbtx}
}

func (r *SQLiteScheduleRepo) Create(ctx context.Context, c *domain.ClassSchedule) error {
	query := `INSERT INTO class_schedules (id, subject_id, day_of_week, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.SubjectID, c.DayOfWeek, c.StartTime, c.EndTime,
		c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting class schedule: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) GetByID(ctx context.Context, id string) (*domain.ClassSchedule, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, subject_id, day_of_week, start_time, end_time, created_at
		 FROM class_schedules WHERE id = ?`, id)
	c, err := scanSchedule(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("class schedule: %w", ErrNotFound)
	}
	return c, err
}

func (r *SQLiteScheduleRepo) ListBySubject(ctx context.Context, subjectID string) ([]*domain.ClassSchedule, error) {
	return r.list(ctx,
		`SELECT id, subject_id, day_of_week, start_time, end_time, created_at
		 FROM class_schedules WHERE subject_id = ?
		 ORDER BY day_of_week, start_time`, subjectID)
}

func (r *SQLiteScheduleRepo) ListByProfile(ctx context.Context, profileID string) ([]*domain.ClassSchedule, error) {
	query := `SELECT c.id, c.subject_id, c.day_of_week, c.start_time, c.end_time, c.created_at
		FROM class_schedules c
		JOIN subjects s ON c.subject_id = s.id
		WHERE s.profile_id = ?
		ORDER BY c.day_of_week, c.start_time`
	return r.list(ctx, query, profileID)
}

func (r *SQLiteScheduleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM class_schedules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting class schedule: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) list(ctx context.Context, query string, args ...any) ([]*domain.ClassSchedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing class schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*domain.ClassSchedule
	for rows.Next() {
		c, err := scanSchedule(rows.Scan)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating class schedules: %w", err)
	}
	return schedules, nil
}

func scanSchedule(scan func(...any) error) (*domain.ClassSchedule, error) {
	var c domain.ClassSchedule
	var createdAt string

	err := scan(&c.ID, &c.SubjectID, &c.DayOfWeek, &c.StartTime, &c.EndTime, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning class schedule: %w", err)
	}

	if c.CreatedAt, err = parseTime(createdAt, "class_schedule.created_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
