package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommentRepo(t *testing.T) (*commentRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &commentRepository{db: db, logger: logger.Nop()}, mock
}

func TestListVideoComments_RankedByLikes(t *testing.T) {
	repo, mock := newTestCommentRepo(t)

	now := time.Now()
	page := models.PageRequest{Page: 2, Limit: 2}.Normalized()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)\\s+FROM comments").
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery("ORDER BY likes_count DESC, c.id DESC").
		WithArgs("v1", 2, uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "video_id", "owner_id", "content", "created_at", "updated_at", "likes_count"}).
			AddRow("c3", "v1", "u1", "third", now, now, int64(0)))

	comments, total, err := repo.ListVideoComments(context.Background(), "v1", page)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, comments, 1)
	assert.Equal(t, "c3", comments[0].ID)
	assert.Zero(t, comments[0].LikesCount)
}

func TestUpdateComment_NotFound(t *testing.T) {
	repo, mock := newTestCommentRepo(t)

	mock.ExpectQuery("UPDATE comments").
		WithArgs("c1", "edited").
		WillReturnRows(sqlmock.NewRows([]string{"id", "video_id", "owner_id", "content", "created_at", "updated_at"}))

	_, err := repo.UpdateComment(context.Background(), "c1", "edited")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteComment_Success(t *testing.T) {
	repo, mock := newTestCommentRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM likes").WithArgs("c1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM comments").WithArgs("c1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteComment(context.Background(), "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
