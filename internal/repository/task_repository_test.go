package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s-ao213/next-task-app/internal/models"
)

func TestListTasksFiltersBySubject(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "subject", "title", "description", "deadline", "submission_method", "is_important", "is_for_all", "assigned_to", "assigned_user_id", "created_by", "created_at", "updated_at"}).
		AddRow("t1", "math", "Worksheet", nil, now, string(models.SubmissionPaper), false, true, pq.StringArray{}, nil, "u1", now, now)
	mock.ExpectQuery("SELECT id, subject, title, description, deadline, submission_method, is_important, is_for_all, assigned_to, assigned_user_id, created_by, created_at, updated_at FROM tasks WHERE 1=1 AND subject").
		WithArgs("math").
		WillReturnRows(rows)

	tasks, err := repo.List(context.Background(), models.TaskFilter{Subject: "math"})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.True(t, tasks[0].Audience().ForAll)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	query := regexp.QuoteMeta("INSERT INTO user_task_status (user_id, task_id, is_completed) VALUES ($1, $2, $3) ON CONFLICT (user_id, task_id) DO UPDATE SET is_completed = EXCLUDED.is_completed")

	// Applying the same toggle twice hits the same upsert; the conflict
	// target guarantees a single row per pair.
	mock.ExpectExec(query).WithArgs("u1", "t1", true).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("u1", "t1", true).WillReturnResult(sqlmock.NewResult(0, 1))

	status := models.UserTaskStatus{UserID: "u1", TaskID: "t1", IsCompleted: true}
	require.NoError(t, repo.UpsertStatus(context.Background(), status))
	require.NoError(t, repo.UpsertStatus(context.Background(), status))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTaskRemovesStatuses(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_task_status WHERE task_id = $1")).
		WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
		WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
