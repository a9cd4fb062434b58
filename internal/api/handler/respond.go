package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pizza-nz/dish-admin/internal/api"
	"github.com/pizza-nz/dish-admin/internal/service"
	"github.com/pizza-nz/dish-admin/internal/websockets"
)

const maxFormMemory = 1 << 20

// Publisher broadcasts catalog change events
type Publisher interface {
	Publish(msgType websockets.MessageType, data any)
}

// updateEvent is the payload of dish.update and chef.update messages
type updateEvent struct {
	UpdateType string `json:"update_type"`
	ID         int64  `json:"id"`
}

// respondJSON writes data as a JSON body with the given status
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeServiceError maps service errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrPasswordsDoNotMatch):
		api.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		api.NotFound(w, err.Error())
	case errors.Is(err, service.ErrUsernameAlreadyExists), errors.Is(err, service.ErrConflict):
		api.Conflict(w, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		api.Unauthorized(w, err.Error())
	default:
		log.Printf("Unexpected error: %v", err)
		api.InternalServerError(w)
	}
}

// redirectWithError sends a form submission back to path with the error
// in the "error" query parameter
func redirectWithError(w http.ResponseWriter, r *http.Request, path string, err error) {
	if !errors.Is(err, service.ErrInvalidInput) && !errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrConflict) {
		log.Printf("Form %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	redirectWithMessage(w, r, path, err.Error())
}

func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?"+url.Values{"error": {message}}.Encode(), http.StatusFound)
}

// pathID parses the {id} path segment
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", service.ErrInvalidInput, r.PathValue("id"))
	}
	return id, nil
}

// isForm reports whether the request body is an HTML form
func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// formInt parses an optional integer form field; empty means zero
func formInt(r *http.Request, field string) (int, error) {
	v := r.PostFormValue(field)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", service.ErrInvalidInput, field)
	}
	return n, nil
}

// formIDs parses a repeated id form field
func formIDs(r *http.Request, field string) ([]int64, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
	}
	values := r.PostForm[field]
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s %q", service.ErrInvalidInput, field, v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
