package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/static"

	"notesapi/internal/notes/adapters/http/middleware"
	"notesapi/internal/notes/ports/api"
)

// RouterConfig selects the optional parts of the HTTP surface.
type RouterConfig struct {
	EnablePut       bool
	UnknownEndpoint bool
	StaticDir       string
	CORSOrigins     []string
}

// SetupRouter registers middleware and note routes on app.
func SetupRouter(app *fiber.App, notes api.NoteService, cfg RouterConfig) {
	handler := NewHandler(notes)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	// Static assets shadow the greeting on / when a front-end build is served.
	if cfg.StaticDir != "" {
		app.Get("/*", static.New(cfg.StaticDir))
	}

	app.Get("/", handler.Index)

	notesRoutes := app.Group("/api/notes")
	notesRoutes.Get("/", handler.ListNotes)
	notesRoutes.Post("/", handler.CreateNote)
	notesRoutes.Get("/:id", handler.GetNote)
	if cfg.EnablePut {
		notesRoutes.Put("/:id", handler.UpdateNote)
	}
	notesRoutes.Delete("/:id", handler.DeleteNote)

	if cfg.UnknownEndpoint {
		app.Use(fiber.Handler(handler.UnknownEndpoint))
	}
}
