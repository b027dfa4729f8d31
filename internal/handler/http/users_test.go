package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-video-tube/internal/service"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func cookieMap(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

func TestRegister(t *testing.T) {
	fields := map[string]string{
		"username": " alice ",
		"email":    "alice@example.com",
		"fullName": "Alice A",
		"password": "password123",
	}

	t.Run("created", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.users.EXPECT().Register(gomock.Any(), models.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			FullName: "Alice A",
			Password: "password123",
		}, gomock.Any(), nil).DoAndReturn(
			func(_ context.Context, _ models.RegisterRequest, avatar, _ *models.Upload) (models.User, error) {
				require.NotNil(t, avatar)
				assert.Equal(t, "me.png", avatar.FileName)
				return models.User{ID: testUserID, Username: "alice"}, nil
			})

		req := newMultipartRequest(t, http.MethodPost, "/api/v1/users/register", fields, map[string]string{"avatar": "me.png"})
		rec := serve(h, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var user models.User
		env := decodeData(t, rec, &user)
		assert.Equal(t, "User registered successfully", env.Message)
		assert.Equal(t, testUserID, user.ID)
	})

	t.Run("invalid email never reaches the service", func(t *testing.T) {
		h, _ := newTestHandler(t)
		bad := map[string]string{"username": "alice", "email": "nope", "fullName": "A", "password": "password123"}

		rec := serve(h, newMultipartRequest(t, http.MethodPost, "/api/v1/users/register", bad, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Contains(t, env.Errors, "email must be a valid email address")
	})

	t.Run("duplicate account", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.users.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.User{}, service.ErrDuplicateAccount)

		rec := serve(h, newMultipartRequest(t, http.MethodPost, "/api/v1/users/register", fields, map[string]string{"avatar": "me.png"}))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "user with email or username already exists", decodeEnvelope(t, rec).Message)
	})

	t.Run("upload too large", func(t *testing.T) {
		h, _ := newTestHandler(t)
		h.cfg.MaxUploadSize = 16

		rec := serve(h, newMultipartRequest(t, http.MethodPost, "/api/v1/users/register", fields, map[string]string{"avatar": "me.png"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("sets session cookies", func(t *testing.T) {
		h, m := newTestHandler(t)
		pair := models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}
		m.users.EXPECT().Login(gomock.Any(), models.LoginRequest{Username: "alice", Password: "password123"}).
			Return(models.User{ID: testUserID, Username: "alice"}, pair, nil)

		rec := serve(h, newJSONRequest(http.MethodPost, "/api/v1/users/login", `{"username":"alice","password":"password123"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got models.LoginResponse
		decodeData(t, rec, &got)
		assert.Equal(t, "access", got.AccessToken)
		assert.Equal(t, "refresh", got.RefreshToken)
		assert.Equal(t, testUserID, got.User.ID)

		cookies := cookieMap(rec)
		require.Contains(t, cookies, accessTokenCookie)
		require.Contains(t, cookies, refreshTokenCookie)
		assert.Equal(t, "access", cookies[accessTokenCookie].Value)
		assert.True(t, cookies[refreshTokenCookie].HttpOnly)
		assert.True(t, cookies[refreshTokenCookie].Secure)
	})

	t.Run("missing login name", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := serve(h, newJSONRequest(http.MethodPost, "/api/v1/users/login", `{"password":"password123"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Contains(t, env.Errors, "username is required when Email is empty")
	})

	t.Run("unknown field", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := serve(h, newJSONRequest(http.MethodPost, "/api/v1/users/login", `{"username":"a","password":"b","admin":true}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.users.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(models.User{}, models.TokenPair{}, service.ErrInvalidCredentials)

		rec := serve(h, newJSONRequest(http.MethodPost, "/api/v1/users/login", `{"email":"a@example.com","password":"x"}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, cookieMap(rec))
	})
}

func TestLogout(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth()
	m.users.EXPECT().Logout(gomock.Any(), testIdentity).Return(nil)

	rec := serve(h, authorized(httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := cookieMap(rec)
	require.Contains(t, cookies, accessTokenCookie)
	require.Contains(t, cookies, refreshTokenCookie)
	assert.Empty(t, cookies[accessTokenCookie].Value)
	assert.Equal(t, -1, cookies[refreshTokenCookie].MaxAge)
}

func TestRefreshToken(t *testing.T) {
	pair := models.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	t.Run("from cookie", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.credentials.EXPECT().Rotate(gomock.Any(), "old-refresh").Return(pair, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "old-refresh"})
		rec := serve(h, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got models.TokenPair
		env := decodeData(t, rec, &got)
		assert.Equal(t, pair, got)
		assert.Equal(t, "Access token refreshed", env.Message)
		assert.Equal(t, "new-refresh", cookieMap(rec)[refreshTokenCookie].Value)
	})

	t.Run("from body", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.credentials.EXPECT().Rotate(gomock.Any(), "body-refresh").Return(pair, nil)

		rec := serve(h, newJSONRequest(http.MethodPost, "/api/v1/users/refresh-token", `{"refreshToken":"body-refresh"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("superseded token", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.credentials.EXPECT().Rotate(gomock.Any(), "stale").Return(models.TokenPair{}, service.ErrUnauthenticated)

		rec := serve(h, newJSONRequest(http.MethodPost, "/api/v1/users/refresh-token", `{"refreshToken":"stale"}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized request", decodeEnvelope(t, rec).Message)
		assert.Empty(t, cookieMap(rec))
	})
}

func TestChangePassword(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth()
	m.users.EXPECT().ChangePassword(gomock.Any(), testIdentity, models.ChangePasswordRequest{OldPassword: "old", NewPassword: "new-password"}).
		Return(service.ErrWrongPassword)

	rec := serve(h, authorized(newJSONRequest(http.MethodPost, "/api/v1/users/change-password",
		`{"oldPassword":"old","newPassword":"new-password"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid old password", decodeEnvelope(t, rec).Message)
}

func TestCurrentUser(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth()
	m.users.EXPECT().CurrentUser(gomock.Any(), testIdentity).
		Return(models.User{ID: testUserID, Username: "alice", PasswordHash: "secret"}, nil)

	rec := serve(h, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
	var user models.User
	decodeData(t, rec, &user)
	assert.Equal(t, "alice", user.Username)
}

func TestUpdateAccountDetails(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth()
	m.users.EXPECT().UpdateAccountDetails(gomock.Any(), testIdentity, gomock.Any()).Return(models.User{}, service.ErrEmailTaken)

	rec := serve(h, authorized(newJSONRequest(http.MethodPatch, "/api/v1/users/account-details",
		`{"fullName":"Alice","email":"taken@example.com"}`)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateAvatar(t *testing.T) {
	t.Run("replaced", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.expectAuth()
		m.users.EXPECT().UpdateAvatar(gomock.Any(), testIdentity, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ models.Identity, upload models.Upload) (models.User, error) {
				assert.Equal(t, "new.png", upload.FileName)
				return models.User{ID: testUserID, Avatar: "http://cdn/new.png"}, nil
			})

		req := newMultipartRequest(t, http.MethodPatch, "/api/v1/users/avatar", nil, map[string]string{"avatar": "new.png"})
		rec := serve(h, authorized(req))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Avatar updated successfully", decodeEnvelope(t, rec).Message)
	})

	t.Run("missing file", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.expectAuth()

		req := newMultipartRequest(t, http.MethodPatch, "/api/v1/users/cover-image", map[string]string{"x": "y"}, nil)
		rec := serve(h, authorized(req))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "coverImage file is required", decodeEnvelope(t, rec).Message)
	})
}

func TestChannelProfile(t *testing.T) {
	t.Run("anonymous viewer", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.users.EXPECT().ChannelProfile(gomock.Any(), models.Identity{}, "alice").
			Return(models.ChannelProfile{ID: testUserID, Username: "alice"}, nil)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/users/channel/alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("authenticated viewer", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.expectAuth()
		m.users.EXPECT().ChannelProfile(gomock.Any(), testIdentity, "bob").
			Return(models.ChannelProfile{}, service.ErrChannelNotFound)

		rec := serve(h, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/users/channel/bob", nil)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "channel does not exist", decodeEnvelope(t, rec).Message)
	})
}

func TestWatchHistory(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth()
	m.users.EXPECT().WatchHistory(gomock.Any(), testIdentity).Return([]models.WatchedVideo{}, nil)

	rec := serve(h, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/users/history", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var history []models.WatchedVideo
	decodeData(t, rec, &history)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}
