package http

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/mock"
	"github.com/MKhiriev/go-video-tube/internal/service"
	"github.com/MKhiriev/go-video-tube/internal/validators"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testToken   = "valid-access-token"
	testUserID  = "0190d5a2-7c4e-7a00-8000-000000000001"
	otherUserID = "0190d5a2-7c4e-7a00-8000-000000000002"
	testVideoID = "0190d5a2-7c4e-7a00-8000-0000000000a1"
	testItemID  = "0190d5a2-7c4e-7a00-8000-0000000000b1"
)

var testIdentity = models.Identity{UserID: testUserID, Username: "alice"}

type serviceMocks struct {
	credentials *mock.MockCredentialService
	users       *mock.MockUserService
	videos      *mock.MockVideoService
	comments    *mock.MockCommentService
	posts       *mock.MockPostService
	playlists   *mock.MockPlaylistService
	social      *mock.MockSocialService
	dashboard   *mock.MockDashboardService
	appInfo     *mock.MockAppInfoService
}

func testServerConfig() config.Server {
	return config.Server{
		HTTPAddress:    ":8080",
		RequestTimeout: 5 * time.Second,
		AuthRateLimit:  1000,
		MaxUploadSize:  1 << 20,
	}
}

func newTestHandler(t *testing.T) (*Handler, *serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		credentials: mock.NewMockCredentialService(ctrl),
		users:       mock.NewMockUserService(ctrl),
		videos:      mock.NewMockVideoService(ctrl),
		comments:    mock.NewMockCommentService(ctrl),
		posts:       mock.NewMockPostService(ctrl),
		playlists:   mock.NewMockPlaylistService(ctrl),
		social:      mock.NewMockSocialService(ctrl),
		dashboard:   mock.NewMockDashboardService(ctrl),
		appInfo:     mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		CredentialService: m.credentials,
		UserService:       m.users,
		VideoService:      m.videos,
		CommentService:    m.comments,
		PostService:       m.posts,
		PlaylistService:   m.playlists,
		SocialService:     m.social,
		DashboardService:  m.dashboard,
		AppInfoService:    m.appInfo,
	}

	return NewHandler(services, validators.NewRequestValidator(), testServerConfig(), logger.Nop()), m
}

// expectAuth lets testToken through the auth middleware as testIdentity.
func (m *serviceMocks) expectAuth() {
	m.credentials.EXPECT().VerifyAccess(gomock.Any(), testToken).Return(testIdentity, nil).AnyTimes()
}

func newJSONRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func authorized(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

// newMultipartRequest builds a multipart form with the given text fields and
// files (field name -> file name).
func newMultipartRequest(t *testing.T, method, path string, fields, files map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for field, fileName := range files {
		part, err := writer.CreateFormFile(field, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte("binary-content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.Equal(t, rec.Code, env.StatusCode)
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) envelope {
	t.Helper()

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, v))
	return env
}

func TestNewHandler(t *testing.T) {
	services := &service.Services{}
	cfg := testServerConfig()
	validator := validators.NewRequestValidator()

	h := NewHandler(services, validator, cfg, logger.Nop())

	require.NotNil(t, h)
	assert.Same(t, services, h.services)
	assert.Equal(t, cfg, h.cfg)
	assert.Equal(t, validator, h.validator)
	assert.NotSame(t, h, NewHandler(services, validator, cfg, logger.Nop()))
}

func TestPathID_DelegatesToValidator(t *testing.T) {
	ctrl := gomock.NewController(t)
	validator := mock.NewMockValidator(ctrl)
	h := NewHandler(&service.Services{}, validator, testServerConfig(), logger.Nop())

	rejected := errors.New("videoID must be a valid id")
	validator.EXPECT().ValidateVar(gomock.Any(), "videoID", "abc", "required,uuid").Return(rejected)

	router := chi.NewRouter()
	router.Get("/videos/{videoID}", func(w http.ResponseWriter, r *http.Request) {
		_, err := h.pathID(r, "videoID")
		assert.ErrorIs(t, err, rejected)
	})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/videos/abc", nil))
}
