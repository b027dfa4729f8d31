package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		writeError(w, r, err)
		return
	}
	files := newFormFiles(r)
	defer files.close()

	req := models.RegisterRequest{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		FullName: strings.TrimSpace(r.FormValue("fullName")),
		Password: r.FormValue("password"),
	}
	if err := h.validator.Validate(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	avatar, err := files.get("avatar")
	if err != nil {
		writeError(w, r, err)
		return
	}
	coverImage, err := files.get("coverImage")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Register(r.Context(), req, avatar, coverImage)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", user.ID).Msg("user registered")
	writeResponse(w, r, http.StatusCreated, user, "User registered successfully")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, pair, err := h.services.UserService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setSessionCookies(w, pair)
	writeResponse(w, r, http.StatusOK, models.LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.Logout(r.Context(), caller); err != nil {
		writeError(w, r, err)
		return
	}

	clearSessionCookies(w)
	writeResponse(w, r, http.StatusOK, struct{}{}, "User logged out")
}

// refreshToken rotates the session. The rotation token is taken from the
// refreshToken cookie, or from the JSON body for clients without cookies.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		token = cookie.Value
	}

	if token == "" && r.ContentLength != 0 {
		var req models.RefreshRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		token = req.RefreshToken
	}

	pair, err := h.services.CredentialService.Rotate(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setSessionCookies(w, pair)
	writeResponse(w, r, http.StatusOK, pair, "Access token refreshed")
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ChangePasswordRequest
	if err = h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.ChangePassword(r.Context(), caller, req); err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, struct{}{}, "Password changed successfully")
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.CurrentUser(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, user, "Current user fetched successfully")
}

func (h *Handler) updateAccountDetails(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateAccountRequest
	if err = h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateAccountDetails(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, user, "Account details updated successfully")
}

func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	h.replaceImage(w, r, "avatar", h.services.UserService.UpdateAvatar, "Avatar updated successfully")
}

func (h *Handler) updateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.replaceImage(w, r, "coverImage", h.services.UserService.UpdateCoverImage, "Cover image updated successfully")
}

type imageUpdater func(ctx context.Context, identity models.Identity, upload models.Upload) (models.User, error)

func (h *Handler) replaceImage(w http.ResponseWriter, r *http.Request, field string, update imageUpdater, message string) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.parseMultipart(w, r); err != nil {
		writeError(w, r, err)
		return
	}
	files := newFormFiles(r)
	defer files.close()

	upload, err := files.get(field)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if upload == nil {
		writeError(w, r, missingFileError(field))
		return
	}

	user, err := update(r.Context(), caller, *upload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, user, message)
}

func (h *Handler) channelProfile(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if err := h.validator.ValidateVar(r.Context(), "username", username, "required,max=30"); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.services.UserService.ChannelProfile(r.Context(), viewer(r), username)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, profile, "User channel fetched successfully")
}

func (h *Handler) watchHistory(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	history, err := h.services.UserService.WatchHistory(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, history, "Watch history fetched successfully")
}
