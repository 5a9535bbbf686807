package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list re-runs safely on each startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS subjects (
		id         TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '',
		professor  TEXT NOT NULL DEFAULT '',
		classroom  TEXT NOT NULL DEFAULT '',
		code       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_subjects_profile ON subjects(profile_id)`,

	`CREATE TABLE IF NOT EXISTS exams (
		id           TEXT PRIMARY KEY,
		subject_id   TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		title        TEXT NOT NULL DEFAULT '',
		exam_date    TEXT NOT NULL,
		duration_min INTEGER NOT NULL DEFAULT 0,
		weight_pct   REAL NOT NULL DEFAULT 0,
		status       TEXT NOT NULL DEFAULT 'upcoming'
		             CHECK(status IN ('upcoming','completed','cancelled')),
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_exams_subject ON exams(subject_id)`,

	`CREATE TABLE IF NOT EXISTS exam_topics (
		id                  TEXT PRIMARY KEY,
		exam_id             TEXT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
		title               TEXT NOT NULL,
		estimated_pomodoros INTEGER NOT NULL DEFAULT 0,
		completed_pomodoros INTEGER NOT NULL DEFAULT 0,
		status              TEXT NOT NULL DEFAULT 'not_started'
		                    CHECK(status IN ('not_started','in_progress','completed')),
		order_index         INTEGER NOT NULL DEFAULT 0,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_exam_topics_exam ON exam_topics(exam_id)`,

	`CREATE TABLE IF NOT EXISTS class_schedules (
		id          TEXT PRIMARY KEY,
		subject_id  TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		day_of_week INTEGER NOT NULL CHECK(day_of_week BETWEEN 0 AND 6),
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_class_schedules_subject ON class_schedules(subject_id)`,

	`CREATE TABLE IF NOT EXISTS study_plans (
		profile_id   TEXT PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
		generated_at TEXT NOT NULL,
		strategy     TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id                  TEXT PRIMARY KEY,
		profile_id          TEXT NOT NULL REFERENCES study_plans(profile_id) ON DELETE CASCADE,
		subject_id          TEXT NOT NULL,
		exam_id             TEXT NOT NULL DEFAULT '',
		topic_id            TEXT NOT NULL DEFAULT '',
		scheduled_date      TEXT NOT NULL,
		scheduled_time      TEXT NOT NULL,
		duration_min        INTEGER NOT NULL,
		session_number      INTEGER NOT NULL DEFAULT 1,
		repetition_interval INTEGER NOT NULL DEFAULT 1,
		technique           TEXT NOT NULL DEFAULT 'pomodoro',
		priority            TEXT NOT NULL DEFAULT 'medium'
		                    CHECK(priority IN ('urgent','high','medium','low')),
		status              TEXT NOT NULL DEFAULT 'pending'
		                    CHECK(status IN ('pending','completed','skipped')),
		recommendation      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_study_sessions_profile ON study_sessions(profile_id, scheduled_date, scheduled_time)`,

	`CREATE TABLE IF NOT EXISTS pomodoro_sessions (
		id          TEXT PRIMARY KEY,
		profile_id  TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		subject_id  TEXT NOT NULL DEFAULT '',
		topic_id    TEXT NOT NULL DEFAULT '',
		phase       TEXT NOT NULL DEFAULT 'focus'
		            CHECK(phase IN ('focus','short_break','long_break')),
		planned_min INTEGER NOT NULL,
		actual_min  INTEGER NOT NULL DEFAULT 0,
		started_at  TEXT NOT NULL,
		ended_at    TEXT,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','completed','abandoned')),
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pomodoro_sessions_profile ON pomodoro_sessions(profile_id, started_at)`,

	`CREATE TABLE IF NOT EXISTS notes (
		id         TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		subject_id TEXT NOT NULL DEFAULT '',
		topic_id   TEXT NOT NULL DEFAULT '',
		title      TEXT NOT NULL,
		body       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_profile ON notes(profile_id)`,

	`CREATE TABLE IF NOT EXISTS note_links (
		source_note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
		target_title   TEXT NOT NULL,
		target_note_id TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (source_note_id, target_title)
	)`,
}
