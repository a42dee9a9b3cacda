// Package app implements the in-memory note collection.
package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"notesapi/internal/notes/domain/entities"
	"notesapi/internal/notes/ports/api"
	"notesapi/pkg/logger"
)

// Store errors.
var (
	ErrNotFound    = errors.New("note not found")
	ErrValidation  = errors.New("content missing")
	ErrDuplicateID = errors.New("duplicate note id")
	ErrInvalidID   = errors.New("note id must be positive")
)

const (
	LogNoteCreated  = "note created"
	LogNoteReplaced = "note replaced"
	LogNoteDeleted  = "note deleted"
)

var _ api.NoteService = (*NoteStore)(nil)

// NoteStore owns the note collection. Notes are kept in insertion order and
// every value handed out is a copy.
type NoteStore struct {
	mu    sync.RWMutex
	notes []entities.Note
	now   func() time.Time
}

// Option configures a NoteStore.
type Option func(*NoteStore)

// WithNotes preloads the store with notes in the given order.
func WithNotes(notes ...entities.Note) Option {
	return func(s *NoteStore) {
		s.notes = append(s.notes, notes...)
	}
}

// WithClock replaces time.Now as the source of creation dates.
func WithClock(now func() time.Time) Option {
	return func(s *NoteStore) {
		s.now = now
	}
}

// NewNoteStore builds a store. Preloaded notes must have unique positive ids.
func NewNoteStore(opts ...Option) (*NoteStore, error) {
	s := &NoteStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[int]struct{}, len(s.notes))
	for _, note := range s.notes {
		if note.ID <= 0 {
			return nil, fmt.Errorf("preload note %d: %w", note.ID, ErrInvalidID)
		}
		if _, ok := seen[note.ID]; ok {
			return nil, fmt.Errorf("preload note %d: %w", note.ID, ErrDuplicateID)
		}
		seen[note.ID] = struct{}{}
	}

	return s, nil
}

// List returns all notes in insertion order. The result is never nil.
func (s *NoteStore) List(_ context.Context) []entities.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]entities.Note, 0, len(s.notes)), s.notes...)
}

// Len returns the number of stored notes.
func (s *NoteStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.notes)
}

// Get returns the note with the given id.
func (s *NoteStore) Get(_ context.Context, id int) (entities.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return entities.Note{}, fmt.Errorf("get note %d: %w", id, ErrNotFound)
	}
	return s.notes[i], nil
}

// Create stores a new note. Its id is one more than the highest id currently
// stored, so the id of a deleted highest note is handed out again.
func (s *NoteStore) Create(ctx context.Context, content string, important bool) (entities.Note, error) {
	if content == "" {
		return entities.Note{}, fmt.Errorf("create note: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := entities.NewNote(s.nextID(), content, important, s.now())
	s.notes = append(s.notes, note)

	logger.Log(ctx).Debug(ctx, LogNoteCreated, zap.Int("note_id", note.ID))

	return note, nil
}

// Update overwrites the note with the given id by the replacement. Nothing
// from the old note survives except its id and position.
func (s *NoteStore) Update(ctx context.Context, id int, replacement api.Replacement) (entities.Note, error) {
	if replacement.Content == "" {
		return entities.Note{}, fmt.Errorf("update note %d: %w", id, ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return entities.Note{}, fmt.Errorf("update note %d: %w", id, ErrNotFound)
	}

	note := entities.Note{
		ID:        id,
		Content:   replacement.Content,
		Important: replacement.Important,
	}
	if replacement.Date != nil {
		note.Date = *replacement.Date
	}
	s.notes[i] = note

	logger.Log(ctx).Debug(ctx, LogNoteReplaced, zap.Int("note_id", id))

	return note, nil
}

// Delete removes the note with the given id. Deleting a missing id is a no-op.
func (s *NoteStore) Delete(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.notes)
	s.notes = slices.DeleteFunc(s.notes, func(n entities.Note) bool {
		return n.ID == id
	})

	if len(s.notes) != before {
		logger.Log(ctx).Debug(ctx, LogNoteDeleted, zap.Int("note_id", id))
	}
}

func (s *NoteStore) indexOf(id int) int {
	return slices.IndexFunc(s.notes, func(n entities.Note) bool {
		return n.ID == id
	})
}

func (s *NoteStore) nextID() int {
	maxID := 0
	for _, note := range s.notes {
		maxID = max(maxID, note.ID)
	}
	return maxID + 1
}
