package httpapi

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrResponse renders error payloads the same way for every route:
// {"detail": "..."} plus the mapped status code.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	Detail         string `json:"detail"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errBadRequest(detail string) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusBadRequest, Detail: detail}
}

func errNotFound(detail string) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusNotFound, Detail: detail}
}

func errInternal(detail string) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusInternalServerError, Detail: detail}
}
