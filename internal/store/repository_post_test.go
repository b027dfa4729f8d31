package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postRowColumns = []string{"id", "owner_id", "content", "created_at", "updated_at"}

func newTestPostRepo(t *testing.T) (*postRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &postRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreatePost(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := newTestPostRepo(t)
		now := time.Now()

		mock.ExpectQuery("INSERT INTO posts").
			WithArgs("p1", "u1", "hello").
			WillReturnRows(sqlmock.NewRows(postRowColumns).AddRow("p1", "u1", "hello", now, now))

		post, err := repo.CreatePost(context.Background(), models.Post{ID: "p1", OwnerID: "u1", Content: "hello"})

		require.NoError(t, err)
		assert.Equal(t, "hello", post.Content)
		assert.Equal(t, now, post.CreatedAt)
	})

	t.Run("unknown owner", func(t *testing.T) {
		repo, mock := newTestPostRepo(t)

		mock.ExpectQuery("INSERT INTO posts").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

		_, err := repo.CreatePost(context.Background(), models.Post{ID: "p1", OwnerID: "gone", Content: "hello"})

		assert.ErrorIs(t, err, ErrReferenceNotFound)
	})
}

func TestFindPostByID_NotFound(t *testing.T) {
	repo, mock := newTestPostRepo(t)

	mock.ExpectQuery("FROM posts").WithArgs("p9").WillReturnRows(sqlmock.NewRows(postRowColumns))

	_, err := repo.FindPostByID(context.Background(), "p9")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUserPosts_NewestFirst(t *testing.T) {
	repo, mock := newTestPostRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM posts WHERE owner_id = \\$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery("FROM posts WHERE owner_id = \\$1 ORDER BY created_at DESC, id DESC").
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow("p2", "u1", "second", now, now).
			AddRow("p1", "u1", "first", now.Add(-time.Hour), now.Add(-time.Hour)))

	posts, total, err := repo.ListUserPosts(context.Background(), "u1", models.PageRequest{}.Normalized())

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePost_Success(t *testing.T) {
	repo, mock := newTestPostRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM likes").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM posts").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeletePost(context.Background(), "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
