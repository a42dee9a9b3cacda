// Package http exposes the note collection over fiber.
package http

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesapi/internal/notes/app"
	"notesapi/internal/notes/ports/api"
	"notesapi/pkg/logger"
)

const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgContentMissing    = "content missing"
	ErrMsgMalformedBody     = "malformed request body"
	ErrMsgUnknownEndpoint   = "unknown endpoint"
	ErrMsgInternal          = "internal server error"
	ErrMsgFailedSendingResp = "error sending response"
)

// IndexPage is served on GET /.
const IndexPage = "<h1>The Notes API</h1>"

const paramID = "id"

// Handler serves the notes endpoints.
type Handler struct {
	notes api.NoteService
}

// NewHandler creates a handler backed by notes.
func NewHandler(notes api.NoteService) *Handler {
	return &Handler{notes: notes}
}

// Index serves the HTML greeting.
func (h *Handler) Index(ctx fiber.Ctx) error {
	if err := ctx.Type("html").SendString(IndexPage); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSendingResp, err)
	}
	return nil
}

// ListNotes returns every note.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListNotes)

	if err := ctx.JSON(h.notes.List(requestCtx)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSendingResp, err)
	}
	return nil
}

// GetNote returns one note or 404 with an empty body.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(requestCtx, LogHandlerGetNote)

	id, ok := noteID(ctx)
	if !ok {
		return sendNotFound(ctx)
	}

	note, err := h.notes.Get(requestCtx, id)
	if err != nil {
		return handleError(requestCtx, ctx, err)
	}

	if err := ctx.JSON(note); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSendingResp, err)
	}
	return nil
}

// CreateNote stores a note built from the request body.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	req, err := decodeNoteRequest(ctx)
	if err != nil {
		log.Debug(requestCtx, ErrMsgMalformedBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgMalformedBody)
	}

	note, err := h.notes.Create(requestCtx, req.content(), req.important())
	if err != nil {
		return handleError(requestCtx, ctx, err)
	}

	if err := ctx.JSON(note); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSendingResp, err)
	}
	return nil
}

// UpdateNote fully replaces a note with the request body.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	req, err := decodeNoteRequest(ctx)
	if err != nil {
		log.Debug(requestCtx, ErrMsgMalformedBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgMalformedBody)
	}

	id, ok := noteID(ctx)
	if !ok {
		// Content is checked before existence, as the store does.
		if req.content() == "" {
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgContentMissing)
		}
		return sendNotFound(ctx)
	}

	note, err := h.notes.Update(requestCtx, id, req.replacement())
	if err != nil {
		return handleError(requestCtx, ctx, err)
	}

	if err := ctx.JSON(note); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSendingResp, err)
	}
	return nil
}

// DeleteNote removes a note. It answers 204 whether or not the note existed.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteNote)

	if id, ok := noteID(ctx); ok {
		h.notes.Delete(requestCtx, id)
	}

	ctx.Status(fiber.StatusNoContent)
	return nil
}

// UnknownEndpoint answers requests no route matched.
func (h *Handler) UnknownEndpoint(ctx fiber.Ctx) error {
	return sendError(ctx, fiber.StatusNotFound, ErrMsgUnknownEndpoint)
}

// noteID parses the :id route parameter. Integral numbers such as "1.0" or
// "1e0" name note 1; anything else names no note.
func noteID(ctx fiber.Ctx) (int, bool) {
	raw := ctx.Params(paramID)
	if id, err := strconv.Atoi(raw); err == nil {
		return id, true
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// decodeNoteRequest reads a JSON body. A missing or non-JSON body decodes to
// an empty request, which then fails the content check.
func decodeNoteRequest(ctx fiber.Ctx) (NoteRequest, error) {
	var req NoteRequest
	if len(ctx.Body()) == 0 || !ctx.Is("json") {
		return req, nil
	}
	if err := ctx.Bind().JSON(&req); err != nil {
		return NoteRequest{}, fmt.Errorf("decode note request: %w", err)
	}
	return req, nil
}

func handleError(requestCtx context.Context, ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrValidation):
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgContentMissing)
	case errors.Is(err, app.ErrNotFound):
		return sendNotFound(ctx)
	default:
		logger.Log(requestCtx).Error(requestCtx, ErrMsgInternal, zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
}

func sendNotFound(ctx fiber.Ctx) error {
	ctx.Status(fiber.StatusNotFound)
	return nil
}

func sendError(ctx fiber.Ctx, status int, msg string) error {
	if err := ctx.Status(status).JSON(ErrorResponse{Error: msg}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSendingResp, err)
	}
	return nil
}
