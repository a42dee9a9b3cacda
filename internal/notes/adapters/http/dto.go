package http

import (
	"time"

	"notesapi/internal/notes/ports/api"
)

// NoteRequest is the body of POST and PUT. Fields are pointers so that an
// absent field can be told apart from a zero value.
type NoteRequest struct {
	Content   *string    `json:"content"`
	Important *bool      `json:"important"`
	Date      *time.Time `json:"date"`
}

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (r *NoteRequest) content() string {
	if r.Content == nil {
		return ""
	}
	return *r.Content
}

func (r *NoteRequest) important() bool {
	return r.Important != nil && *r.Important
}

func (r *NoteRequest) replacement() api.Replacement {
	return api.Replacement{
		Content:   r.content(),
		Important: r.important(),
		Date:      r.Date,
	}
}
