package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProfile(t *testing.T, database *sql.DB) *domain.Profile {
	t.Helper()
	p := testutil.NewTestProfile("ana")
	require.NoError(t, NewSQLiteProfileRepo(database).Create(context.Background(), p))
	return p
}

func seedSubject(t *testing.T, database *sql.DB, profileID, name string) *domain.Subject {
	t.Helper()
	s := testutil.NewTestSubject(profileID, name)
	require.NoError(t, NewSQLiteSubjectRepo(database).Create(context.Background(), s))
	return s
}

func TestProfileRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProfile("carlos")
	require.NoError(t, repo.Create(ctx, p))

	byID, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "carlos", byID.Name)

	byName, err := repo.GetByName(ctx, "carlos")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID)
}

func TestProfileRepo_DuplicateName(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProfile("ana")))
	err := repo.Create(ctx, testutil.NewTestProfile("ana"))
	assert.Error(t, err)
}

func TestProfileRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(database)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubjectRepo_CreateAndUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(database)
	ctx := context.Background()
	profile := seedProfile(t, database)

	s := testutil.NewTestSubject(profile.ID, "Cálculo I",
		testutil.WithCode("MAT101"), testutil.WithProfessor("Dra. Ríos"))
	require.NoError(t, repo.Create(ctx, s))

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cálculo I", fetched.Name)
	assert.Equal(t, "MAT101", fetched.Code)
	assert.Equal(t, "Dra. Ríos", fetched.Professor)

	fetched.Classroom = "B-204"
	fetched.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, fetched))

	again, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "B-204", again.Classroom)
}

func TestSubjectRepo_ListByProfile_ScopedAndSorted(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(database)
	ctx := context.Background()

	p1 := seedProfile(t, database)
	p2 := testutil.NewTestProfile("otro")
	require.NoError(t, NewSQLiteProfileRepo(database).Create(ctx, p2))

	seedSubject(t, database, p1.ID, "Química")
	seedSubject(t, database, p1.ID, "Álgebra")
	seedSubject(t, database, p2.ID, "Historia")

	list, err := repo.ListByProfile(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, s := range list {
		assert.Equal(t, p1.ID, s.ProfileID)
	}
}

func TestSubjectRepo_Update_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(database)

	ghost := testutil.NewTestSubject("nope", "Fantasma")
	err := repo.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExamRepo_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteExamRepo(database)
	ctx := context.Background()

	profile := seedProfile(t, database)
	subject := seedSubject(t, database, profile.ID, "Física")

	examDate := time.Now().UTC().AddDate(0, 0, 14).Truncate(time.Second)
	exam := testutil.NewTestExam(subject.ID, examDate,
		testutil.WithExamTitle("Final"), testutil.WithWeight(40))
	require.NoError(t, repo.Create(ctx, exam))

	fetched, err := repo.GetByID(ctx, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", fetched.Title)
	assert.Equal(t, 40.0, fetched.WeightPct)
	assert.Equal(t, domain.ExamUpcoming, fetched.Status)
	assert.Equal(t, examDate.Format(domain.DateLayout), fetched.ExamDate.Format(domain.DateLayout))

	fetched.Status = domain.ExamCompleted
	fetched.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, fetched))

	again, err := repo.GetByID(ctx, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExamCompleted, again.Status)
}

func TestExamRepo_ListByProfile_JoinsThroughSubjects(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteExamRepo(database)
	ctx := context.Background()

	profile := seedProfile(t, database)
	s1 := seedSubject(t, database, profile.ID, "Física")
	s2 := seedSubject(t, database, profile.ID, "Química")

	other := testutil.NewTestProfile("otro")
	require.NoError(t, NewSQLiteProfileRepo(database).Create(ctx, other))
	s3 := seedSubject(t, database, other.ID, "Historia")

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, testutil.NewTestExam(s1.ID, now.AddDate(0, 0, 7))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestExam(s2.ID, now.AddDate(0, 0, 3))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestExam(s3.ID, now.AddDate(0, 0, 5))))

	exams, err := repo.ListByProfile(ctx, profile.ID)
	require.NoError(t, err)
	require.Len(t, exams, 2)
	// Sorted by exam date ascending.
	assert.True(t, !exams[0].ExamDate.After(exams[1].ExamDate))
}

func TestTopicRepo_ListByExam_OrderIndex(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTopicRepo(database)
	ctx := context.Background()

	profile := seedProfile(t, database)
	subject := seedSubject(t, database, profile.ID, "Cálculo I")
	exam := testutil.NewTestExam(subject.ID, time.Now().UTC().AddDate(0, 0, 10))
	require.NoError(t, NewSQLiteExamRepo(database).Create(ctx, exam))

	require.NoError(t, repo.Create(ctx, testutil.NewTestTopic(exam.ID, "Integrales", testutil.WithOrderIndex(2))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTopic(exam.ID, "Límites", testutil.WithOrderIndex(0))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTopic(exam.ID, "Derivadas", testutil.WithOrderIndex(1))))

	topics, err := repo.ListByExam(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, topics, 3)
	assert.Equal(t, "Límites", topics[0].Title)
	assert.Equal(t, "Derivadas", topics[1].Title)
	assert.Equal(t, "Integrales", topics[2].Title)
}

func TestTopicRepo_UpdateProgress(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTopicRepo(database)
	ctx := context.Background()

	profile := seedProfile(t, database)
	subject := seedSubject(t, database, profile.ID, "Física")
	exam := testutil.NewTestExam(subject.ID, time.Now().UTC().AddDate(0, 0, 10))
	require.NoError(t, NewSQLiteExamRepo(database).Create(ctx, exam))

	topic := testutil.NewTestTopic(exam.ID, "Cinemática", testutil.WithEstimatedPomodoros(2))
	require.NoError(t, repo.Create(ctx, topic))

	topic.ApplyPomodoro(time.Now().UTC())
	require.NoError(t, repo.Update(ctx, topic))

	fetched, err := repo.GetByID(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.CompletedPomodoros)
	assert.Equal(t, domain.TopicInProgress, fetched.Status)
}

func TestScheduleRepo_ListByProfileSorted(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleRepo(database)
	ctx := context.Background()

	profile := seedProfile(t, database)
	subject := seedSubject(t, database, profile.ID, "Física")

	require.NoError(t, repo.Create(ctx, testutil.NewTestSchedule(subject.ID, 3, "10:00", "12:00")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSchedule(subject.ID, 1, "08:00", "10:00")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSchedule(subject.ID, 1, "14:00", "16:00")))

	list, err := repo.ListByProfile(ctx, profile.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 1, list[0].DayOfWeek)
	assert.Equal(t, "08:00", list[0].StartTime)
	assert.Equal(t, "14:00", list[1].StartTime)
	assert.Equal(t, 3, list[2].DayOfWeek)
}

func TestCascade_DeleteProfileRemovesEverything(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	profile := seedProfile(t, database)
	subject := seedSubject(t, database, profile.ID, "Física")
	exam := testutil.NewTestExam(subject.ID, time.Now().UTC().AddDate(0, 0, 10))
	require.NoError(t, NewSQLiteExamRepo(database).Create(ctx, exam))
	topic := testutil.NewTestTopic(exam.ID, "Cinemática")
	require.NoError(t, NewSQLiteTopicRepo(database).Create(ctx, topic))
	sched := testutil.NewTestSchedule(subject.ID, 1, "08:00", "10:00")
	require.NoError(t, NewSQLiteScheduleRepo(database).Create(ctx, sched))

	require.NoError(t, NewSQLiteProfileRepo(database).Delete(ctx, profile.ID))

	_, err := NewSQLiteSubjectRepo(database).GetByID(ctx, subject.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = NewSQLiteExamRepo(database).GetByID(ctx, exam.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = NewSQLiteTopicRepo(database).GetByID(ctx, topic.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = NewSQLiteScheduleRepo(database).GetByID(ctx, sched.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
