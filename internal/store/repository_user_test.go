package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/jackc/pgerrcode"
)

var userRowColumns = []string{"id", "username", "email", "full_name", "avatar", "cover_image", "password_hash", "refresh_token_hash", "created_at", "updated_at"}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	ctx := context.Background()
	user := models.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice",
		Avatar:       "http://cdn/avatar.png",
		PasswordHash: "hash",
	}
	now := time.Now()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(user.ID, user.Username, user.Email, user.FullName, user.Avatar, "", user.PasswordHash, nil, now, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.Email, user.FullName, user.Avatar, "", user.PasswordHash).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "u1" {
		t.Errorf("expected ID=u1, got %s", created.ID)
	}
	if created.RefreshTokenHash != nil {
		t.Errorf("expected no refresh token hash, got %v", *created.RefreshTokenHash)
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, created.CreatedAt)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT .* FROM users").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindUserByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindUserByLogin_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	hash := "digest"
	now := time.Now()
	mock.ExpectQuery("WHERE email = \\$1 OR username = \\$2").
		WithArgs("", "alice").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "alice", "alice@example.com", "Alice", "a.png", "", "hash", hash, now, now))

	user, err := repo.FindUserByLogin(context.Background(), "", "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != hash {
		t.Errorf("expected refresh token hash %q, got %v", hash, user.RefreshTokenHash)
	}
}

func TestSwapRefreshTokenHash(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "stored value matches", affected: 1},
		{name: "stored value superseded", affected: 0, wantErr: ErrRefreshTokenMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)

			mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND refresh_token_hash = $2")).
				WithArgs("u1", "old", "new").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.SwapRefreshTokenHash(context.Background(), "u1", "old", "new")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSetRefreshTokenHash_Clear(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WithArgs("u1", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetRefreshTokenHash(context.Background(), "u1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindProfiles_GroupsByID(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, full_name, avatar FROM users WHERE id IN ($1,$2)")).
		WithArgs("u1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name", "avatar"}).
			AddRow("u1", "alice", "Alice", "a.png"))

	profiles, err := repo.FindProfiles(context.Background(), []string{"u1", "u2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles["u1"]) != 1 || profiles["u1"][0].Username != "alice" {
		t.Errorf("unexpected profile for u1: %+v", profiles["u1"])
	}
	if _, ok := profiles["u2"]; ok {
		t.Errorf("expected no entry for u2")
	}
}

func TestFindProfiles_EmptyIDsSkipsQuery(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	profiles, err := repo.FindProfiles(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("expected empty map, got %v", profiles)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected query: %v", err)
	}
}

func TestChannelProfile_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users u").
		WithArgs("bob", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name", "email", "avatar", "cover_image", "subscribers_count", "subscribed_to_count", "is_subscribed"}).
			AddRow("u2", "bob", "Bob", "bob@example.com", "b.png", "", int64(3), int64(1), true))

	profile, err := repo.ChannelProfile(context.Background(), "bob", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.SubscribersCount != 3 || profile.SubscribedToCount != 1 || !profile.IsSubscribed {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestWatchHistory_ScansWatchedAt(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	now := time.Now()
	watched := now.Add(-time.Hour)
	mock.ExpectQuery("FROM watch_history w").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(append(videoRowColumns, "watched_at")).
			AddRow("v1", "u2", "f.mp4", "t.png", "Title", "Desc", int64(60), int64(5), true, now, now, watched))

	history, err := repo.WatchHistory(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].ID != "v1" || !history[0].WatchedAt.Equal(watched) {
		t.Errorf("unexpected history: %+v", history)
	}
}
