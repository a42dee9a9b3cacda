package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notehttp "notesapi/internal/notes/adapters/http"
	"notesapi/internal/notes/adapters/http/middleware"
	"notesapi/internal/notes/app"
	"notesapi/internal/notes/domain/entities"
)

var fixedNow = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

var defaultRouterConfig = notehttp.RouterConfig{
	EnablePut:       true,
	UnknownEndpoint: true,
	CORSOrigins:     []string{"*"},
}

func newTestApp(t *testing.T, cfg notehttp.RouterConfig) *fiber.App {
	t.Helper()

	store, err := app.NewNoteStore(
		app.WithNotes(entities.SeedNotes()...),
		app.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)

	fiberApp := fiber.New()
	notehttp.SetupRouter(fiberApp, store, cfg)
	return fiberApp
}

func do(t *testing.T, fiberApp *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestIndex(t *testing.T) {
	fiberApp := newTestApp(t, defaultRouterConfig)

	resp, body := do(t, fiberApp, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Equal(t, notehttp.IndexPage, string(body))
}

func TestEndToEndScenario(t *testing.T) {
	fiberApp := newTestApp(t, defaultRouterConfig)

	resp, body := do(t, fiberApp, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notes := decode[[]entities.Note](t, body)
	assert.Equal(t, entities.SeedNotes(), notes)

	resp, body = do(t, fiberApp, http.MethodPost, "/api/notes", `{"content":"new","important":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[entities.Note](t, body)
	assert.Equal(t, entities.Note{ID: 4, Content: "new", Important: true, Date: fixedNow}, created)

	resp, body = do(t, fiberApp, http.MethodDelete, "/api/notes/4", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp, body = do(t, fiberApp, http.MethodGet, "/api/notes/4", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, body)
}

func TestGetNote(t *testing.T) {
	fiberApp := newTestApp(t, defaultRouterConfig)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedID     int
	}{
		{name: "existing note", target: "/api/notes/3", expectedStatus: http.StatusOK, expectedID: 3},
		{name: "missing note", target: "/api/notes/99", expectedStatus: http.StatusNotFound},
		{name: "non-numeric id", target: "/api/notes/abc", expectedStatus: http.StatusNotFound},
		{name: "integral float id", target: "/api/notes/1.0", expectedStatus: http.StatusOK, expectedID: 1},
		{name: "exponent id", target: "/api/notes/2e0", expectedStatus: http.StatusOK, expectedID: 2},
		{name: "fractional id", target: "/api/notes/1.5", expectedStatus: http.StatusNotFound},
		{name: "infinite id", target: "/api/notes/Inf", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, fiberApp, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedID, decode[entities.Note](t, body).ID)
			} else {
				assert.Empty(t, body)
			}
		})
	}
}

func TestCreateNote(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
		expectedNote   entities.Note
	}{
		{
			name:           "important defaults to false",
			body:           `{"content":"plain"}`,
			expectedStatus: http.StatusOK,
			expectedNote:   entities.Note{ID: 4, Content: "plain", Date: fixedNow},
		},
		{
			name:           "client id is ignored",
			body:           `{"id":100,"content":"mine","important":true}`,
			expectedStatus: http.StatusOK,
			expectedNote:   entities.Note{ID: 4, Content: "mine", Important: true, Date: fixedNow},
		},
		{
			name:           "missing content",
			body:           `{"important":true}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  notehttp.ErrMsgContentMissing,
		},
		{
			name:           "empty content",
			body:           `{"content":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  notehttp.ErrMsgContentMissing,
		},
		{
			name:           "null content",
			body:           `{"content":null}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  notehttp.ErrMsgContentMissing,
		},
		{
			name:           "no body",
			body:           "",
			expectedStatus: http.StatusBadRequest,
			expectedError:  notehttp.ErrMsgContentMissing,
		},
		{
			name:           "non-string content",
			body:           `{"content":0}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  notehttp.ErrMsgMalformedBody,
		},
		{
			name:           "broken json",
			body:           `{"content":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  notehttp.ErrMsgMalformedBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fiberApp := newTestApp(t, defaultRouterConfig)

			resp, body := do(t, fiberApp, http.MethodPost, "/api/notes", tt.body)

			require.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decode[notehttp.ErrorResponse](t, body).Error)

				_, listBody := do(t, fiberApp, http.MethodGet, "/api/notes", "")
				assert.Len(t, decode[[]entities.Note](t, listBody), 3, "rejected create must not mutate")
				return
			}
			assert.Equal(t, tt.expectedNote, decode[entities.Note](t, body))
		})
	}
}

func TestCreateNoteWithoutJSONContentType(t *testing.T) {
	fiberApp := newTestApp(t, defaultRouterConfig)

	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"content":"x"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMETextPlain)

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateNote(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		body           string
		expectedStatus int
		expectedError  string
		expectedNote   entities.Note
	}{
		{
			name:           "full overwrite",
			target:         "/api/notes/1",
			body:           `{"content":"HTML is hard"}`,
			expectedStatus: http.StatusOK,
			expectedNote:   entities.Note{ID: 1, Content: "HTML is hard"},
		},
		{
			name:           "replacement keeps supplied fields",
			target:         "/api/notes/2",
			body:           `{"content":"JS","important":true,"date":"2023-01-02T03:04:05Z"}`,
			expectedStatus: http.StatusOK,
			expectedNote: entities.Note{
				ID: 2, Content: "JS", Important: true,
				Date: time.Date(2023, time.January, 2, 3, 4, 5, 0, time.UTC),
			},
		},
		{
			name:           "missing content",
			target:         "/api/notes/1",
			body:           `{"important":false}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  notehttp.ErrMsgContentMissing,
		},
		{
			name:           "missing content on missing note",
			target:         "/api/notes/99",
			body:           `{"content":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  notehttp.ErrMsgContentMissing,
		},
		{
			name:           "missing note",
			target:         "/api/notes/99",
			body:           `{"content":"valid content"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			target:         "/api/notes/abc",
			body:           `{"content":"valid content"}`,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fiberApp := newTestApp(t, defaultRouterConfig)

			resp, body := do(t, fiberApp, http.MethodPut, tt.target, tt.body)

			require.Equal(t, tt.expectedStatus, resp.StatusCode)
			switch {
			case tt.expectedError != "":
				assert.Equal(t, tt.expectedError, decode[notehttp.ErrorResponse](t, body).Error)
			case tt.expectedStatus == http.StatusNotFound:
				assert.Empty(t, body)
			default:
				assert.Equal(t, tt.expectedNote, decode[entities.Note](t, body))

				_, stored := do(t, fiberApp, http.MethodGet, tt.target, "")
				assert.Equal(t, tt.expectedNote, decode[entities.Note](t, stored))
			}
		})
	}
}

func TestUpdateNoteOmitsDateWhenNotSupplied(t *testing.T) {
	fiberApp := newTestApp(t, defaultRouterConfig)

	_, body := do(t, fiberApp, http.MethodPut, "/api/notes/1", `{"content":"no date"}`)

	fields := decode[map[string]any](t, body)
	assert.NotContains(t, fields, "date")
	assert.Equal(t, false, fields["important"])
}

func TestDeleteNote(t *testing.T) {
	fiberApp := newTestApp(t, defaultRouterConfig)

	for _, target := range []string{"/api/notes/2", "/api/notes/2", "/api/notes/99", "/api/notes/abc"} {
		resp, body := do(t, fiberApp, http.MethodDelete, target, "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode, target)
		assert.Empty(t, body)
	}

	_, body := do(t, fiberApp, http.MethodGet, "/api/notes", "")
	notes := decode[[]entities.Note](t, body)
	require.Len(t, notes, 2)
	assert.Equal(t, 1, notes[0].ID)
	assert.Equal(t, 3, notes[1].ID)
}

func TestListNotesEmptyIsArray(t *testing.T) {
	fiberApp := newTestApp(t, defaultRouterConfig)
	for _, id := range []string{"1", "2", "3"} {
		do(t, fiberApp, http.MethodDelete, "/api/notes/"+id, "")
	}

	_, body := do(t, fiberApp, http.MethodGet, "/api/notes", "")
	assert.JSONEq(t, `[]`, string(body))
}

func TestUnknownEndpoint(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		fiberApp := newTestApp(t, defaultRouterConfig)

		resp, body := do(t, fiberApp, http.MethodGet, "/api/unknown", "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, notehttp.ErrMsgUnknownEndpoint, decode[notehttp.ErrorResponse](t, body).Error)
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := defaultRouterConfig
		cfg.UnknownEndpoint = false
		fiberApp := newTestApp(t, cfg)

		resp, body := do(t, fiberApp, http.MethodGet, "/api/unknown", "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.NotContains(t, string(body), notehttp.ErrMsgUnknownEndpoint)
	})
}

func TestPutRouteCanBeDisabled(t *testing.T) {
	cfg := defaultRouterConfig
	cfg.EnablePut = false
	fiberApp := newTestApp(t, cfg)

	resp, _ := do(t, fiberApp, http.MethodPut, "/api/notes/1", `{"content":"x"}`)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)

	_, body := do(t, fiberApp, http.MethodGet, "/api/notes/1", "")
	assert.Equal(t, "HTML is easy", decode[entities.Note](t, body).Content)

	t.Run("without fallback the framework error is returned as is", func(t *testing.T) {
		cfg := cfg
		cfg.UnknownEndpoint = false
		fiberApp := newTestApp(t, cfg)

		resp, body := do(t, fiberApp, http.MethodPut, "/api/notes/1", `{"content":"x"}`)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, fiber.ErrMethodNotAllowed.Message, string(body))
	})
}

func TestRequestIDHeader(t *testing.T) {
	fiberApp := newTestApp(t, defaultRouterConfig)

	t.Run("incoming id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-123")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "req-123", resp.Header.Get(middleware.HeaderRequestID))
	})

	t.Run("id is generated when absent", func(t *testing.T) {
		resp, _ := do(t, fiberApp, http.MethodGet, "/api/notes", "")
		assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))
	})
}

func TestCORSHeaders(t *testing.T) {
	fiberApp := newTestApp(t, defaultRouterConfig)

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestStaticAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>front-end</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))

	cfg := defaultRouterConfig
	cfg.StaticDir = dir
	fiberApp := newTestApp(t, cfg)

	resp, body := do(t, fiberApp, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "console.log(1)", string(body))

	resp, body = do(t, fiberApp, http.MethodGet, "/api/notes/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "API routes still reachable")
	assert.Equal(t, 1, decode[entities.Note](t, body).ID)
}
