// Package entities defines the domain entities for the notes service.
package entities

import "time"

// Note is a single note. Date is the zero time when the note was stored
// without one, and is then omitted from JSON.
type Note struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Important bool      `json:"important"`
	Date      time.Time `json:"date,omitzero"`
}

// NewNote creates a note with the given id stamped with date.
func NewNote(id int, content string, important bool, date time.Time) Note {
	return Note{
		ID:        id,
		Content:   content,
		Important: important,
		Date:      date,
	}
}

// SeedNotes returns the notes the service starts with.
func SeedNotes() []Note {
	return []Note{
		{ID: 1, Content: "HTML is easy", Important: true},
		{ID: 2, Content: "Browser can execute only JavaScript", Important: false},
		{ID: 3, Content: "GET and POST are the most important methods of HTTP protocol", Important: true},
	}
}
