package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/MKhiriev/go-video-tube/internal/service"
	"github.com/MKhiriev/go-video-tube/internal/utils"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/go-chi/chi/v5"
)

// multipartMemory is the part of a multipart form kept in memory; larger
// files spill to temporary files.
const multipartMemory = 32 << 20

// identity returns the caller attached by the auth middleware.
func identity(r *http.Request) (models.Identity, error) {
	id, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		return models.Identity{}, service.ErrUnauthenticated
	}
	return id, nil
}

// viewer returns the caller when one was resolved, the zero identity
// otherwise.
func viewer(r *http.Request) models.Identity {
	id, _ := utils.GetIdentityFromContext(r.Context())
	return id
}

// pathID returns the route parameter name, which must be a UUID.
func (h *Handler) pathID(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if err := h.validator.ValidateVar(r.Context(), name, value, "required,uuid"); err != nil {
		return "", err
	}
	return value, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInvalidInput, fmt.Sprintf("%s must be a number", name), errInvalidQuery)
	}
	return value, nil
}

// pageRequest reads page and limit from the query string.
func pageRequest(r *http.Request) (models.PageRequest, error) {
	page, err := queryInt(r, "page")
	if err != nil {
		return models.PageRequest{}, err
	}
	if page > models.MaxPage {
		return models.PageRequest{}, apperr.Wrap(apperr.KindInvalidInput, fmt.Sprintf("page must be at most %d", models.MaxPage), errInvalidQuery)
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return models.PageRequest{}, err
	}

	return models.PageRequest{Page: page, Limit: limit}, nil
}

// parseMultipart caps the body at the configured upload size and parses the
// form.
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apperr.Wrap(apperr.KindInvalidInput, errUploadTooLarge.Message, err)
		}
		return apperr.Wrap(apperr.KindInvalidInput, errInvalidForm.Message, err)
	}
	return nil
}

// formFiles tracks the files opened from a multipart form so they can be
// closed once the request is served.
type formFiles struct {
	r      *http.Request
	opened []multipart.File
}

func newFormFiles(r *http.Request) *formFiles {
	return &formFiles{r: r}
}

// get returns the upload in field name, or nil when the field is absent.
func (f *formFiles) get(name string) (*models.Upload, error) {
	file, header, err := f.r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidInput, errInvalidForm.Message, err)
	}
	f.opened = append(f.opened, file)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &models.Upload{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}, nil
}

func (f *formFiles) close() {
	for _, file := range f.opened {
		file.Close()
	}
	if f.r.MultipartForm != nil {
		f.r.MultipartForm.RemoveAll()
	}
}

func missingFileError(field string) error {
	return apperr.New(apperr.KindInvalidInput, fmt.Sprintf("%s file is required", field))
}
