package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLikeRepo(t *testing.T) (*likeRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &likeRepository{db: db, logger: logger.Nop()}, mock
}

func TestLikeExists(t *testing.T) {
	repo, mock := newTestLikeRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1", "video", "v1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.LikeExists(context.Background(), "u1", models.LikeTargetVideo, "v1")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateLike_Duplicate(t *testing.T) {
	repo, mock := newTestLikeRepo(t)

	mock.ExpectQuery("INSERT INTO likes").
		WithArgs("l1", "u1", "post", "p1").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateLike(context.Background(), models.Like{ID: "l1", LikedBy: "u1", TargetType: models.LikeTargetPost, TargetID: "p1"})

	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateLike_Success(t *testing.T) {
	repo, mock := newTestLikeRepo(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO likes").
		WithArgs("l1", "u1", "comment", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	like, err := repo.CreateLike(context.Background(), models.Like{ID: "l1", LikedBy: "u1", TargetType: models.LikeTargetComment, TargetID: "c1"})

	require.NoError(t, err)
	assert.True(t, like.CreatedAt.Equal(now))
}

func TestDeleteLike_AlreadyGone(t *testing.T) {
	repo, mock := newTestLikeRepo(t)

	mock.ExpectExec("DELETE FROM likes").
		WithArgs("u1", "video", "v1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.DeleteLike(context.Background(), "u1", models.LikeTargetVideo, "v1")

	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCountLikes_GroupedQuery(t *testing.T) {
	repo, mock := newTestLikeRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT target_id, COUNT(*) FROM likes WHERE target_type = $1 AND target_id IN ($2,$3) GROUP BY target_id")).
		WithArgs("video", "v1", "v2").
		WillReturnRows(sqlmock.NewRows([]string{"target_id", "count"}).AddRow("v1", int64(4)))

	counts, err := repo.CountLikes(context.Background(), models.LikeTargetVideo, []string{"v1", "v2"})

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"v1": 4}, counts)
}
