package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-video-tube/internal/utils"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// operational endpoints
	router.Get("/healthz", h.health)
	router.Get("/readyz", h.ready)
	router.Get("/version", h.getServerVersion)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// multipart uploads are bounded by the media upload timeout instead
		r.With(h.authRateLimit()).Post("/users/register", h.register)
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Patch("/users/avatar", h.updateAvatar)
			r.Patch("/users/cover-image", h.updateCoverImage)
			r.Post("/videos", h.publishVideo)
			r.Patch("/videos/{videoID}", h.updateVideo)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requestTimeout())

			// session routes
			r.Group(func(r chi.Router) {
				r.Use(h.authRateLimit())
				r.Post("/users/login", h.login)
				r.Post("/users/refresh-token", h.refreshToken)
			})

			// public reads, the caller is resolved when a token is present
			r.Group(func(r chi.Router) {
				r.Use(h.optionalAuth)
				r.Get("/videos", h.listVideos)
				r.Get("/videos/{videoID}", h.getVideo)
				r.Get("/comments/{videoID}", h.listComments)
				r.Get("/posts/user/{userID}", h.listUserPosts)
				r.Get("/playlists/user/{userID}", h.listUserPlaylists)
				r.Get("/playlists/{playlistID}", h.getPlaylist)
				r.Get("/users/channel/{username}", h.channelProfile)
				r.Get("/users/{userID}/subscriptions", h.subscriptions)
				r.Get("/channels/{channelID}/subscribers", h.subscribers)
			})

			// routes with authorization
			r.Group(func(r chi.Router) {
				r.Use(h.auth)

				r.Post("/users/logout", h.logout)
				r.Post("/users/change-password", h.changePassword)
				r.Get("/users/current-user", h.currentUser)
				r.Patch("/users/account-details", h.updateAccountDetails)
				r.Get("/users/history", h.watchHistory)

				r.Delete("/videos/{videoID}", h.deleteVideo)
				r.Patch("/videos/{videoID}/publish", h.togglePublish)
				r.Post("/videos/{videoID}/like", h.toggleVideoLike)

				r.Post("/comments/{videoID}", h.addComment)
				r.Patch("/comments/c/{commentID}", h.updateComment)
				r.Delete("/comments/c/{commentID}", h.deleteComment)
				r.Post("/comments/{commentID}/like", h.toggleCommentLike)

				r.Post("/posts", h.createPost)
				r.Patch("/posts/{postID}", h.updatePost)
				r.Delete("/posts/{postID}", h.deletePost)
				r.Post("/posts/{postID}/like", h.togglePostLike)

				r.Post("/playlists", h.createPlaylist)
				r.Patch("/playlists/{playlistID}", h.updatePlaylist)
				r.Delete("/playlists/{playlistID}", h.deletePlaylist)
				r.Patch("/playlists/{playlistID}/videos/{videoID}", h.addVideoToPlaylist)
				r.Delete("/playlists/{playlistID}/videos/{videoID}", h.removeVideoFromPlaylist)

				r.Get("/likes/videos", h.likedVideos)
				r.Post("/channels/{channelID}/subscribe", h.toggleSubscription)

				r.Get("/dashboard/stats", h.channelStats)
				r.Get("/dashboard/videos", h.channelVideos)
			})
		})
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func passThrough(next http.Handler) http.Handler {
	return next
}

func (h *Handler) requestTimeout() func(http.Handler) http.Handler {
	if h.cfg.RequestTimeout <= 0 {
		return passThrough
	}
	return middleware.Timeout(h.cfg.RequestTimeout)
}

// authRateLimit limits the credential routes per client IP.
func (h *Handler) authRateLimit() func(http.Handler) http.Handler {
	if h.cfg.AuthRateLimit <= 0 {
		return passThrough
	}

	return httprate.Limit(
		h.cfg.AuthRateLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response := models.NewErrorResponse(http.StatusTooManyRequests, "too many requests, try again later")
			utils.WriteJSON(w, response, http.StatusTooManyRequests)
		}),
	)
}
