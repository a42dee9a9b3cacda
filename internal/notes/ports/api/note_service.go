// Package api defines the note operations consumed by transport adapters.
package api

import (
	"context"
	"time"

	"notesapi/internal/notes/domain/entities"
)

// Replacement is the payload of a full update. Every field not present is
// absent from the stored note.
type Replacement struct {
	Content   string
	Important bool
	Date      *time.Time
}

// NoteService is the note collection as seen by handlers.
type NoteService interface {
	List(ctx context.Context) []entities.Note
	Get(ctx context.Context, id int) (entities.Note, error)
	Create(ctx context.Context, content string, important bool) (entities.Note, error)
	Update(ctx context.Context, id int, replacement Replacement) (entities.Note, error)
	Delete(ctx context.Context, id int)
}
