package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mdnotes/notes-api/internal/api/metrics"
	"github.com/mdnotes/notes-api/internal/core/domain"
	"github.com/mdnotes/notes-api/internal/core/ports"
)

type NoteHandler struct {
	notes ports.NoteService
}

func NewNoteHandler(notes ports.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// ownedNote loads the note named by :id and applies the ownership guard.
func (h *NoteHandler) ownedNote(c echo.Context) (*domain.Note, error) {
	caller, err := callerID(c)
	if err != nil {
		return nil, err
	}
	note, err := h.notes.GetNote(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	return domain.EnsureOwner(note, caller)
}

// Create stores a new note owned by the caller.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "Note"
// @Success      201   {object}  domain.Note
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req createNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.NoteOperationsTotal.WithLabelValues("create", "invalid").Inc()
		return err
	}

	note, err := h.notes.CreateNote(c.Request().Context(), caller, req.Title, req.Content)
	metrics.NoteOperationsTotal.WithLabelValues("create", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, note)
}

// List returns the caller's notes, most recently updated first.
//
// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Note
// @Failure      401  {object}  map[string]string
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	notes, err := h.notes.ListNotes(c.Request().Context(), caller)
	metrics.NoteOperationsTotal.WithLabelValues("list", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

// Get returns one note.
//
// @Summary      Get a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  domain.Note
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	note, err := h.ownedNote(c)
	metrics.NoteOperationsTotal.WithLabelValues("get", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

// Update applies a partial update to a note.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Note ID"
// @Param        body  body      updateNoteRequest  true  "Fields to change"
// @Success      200   {object}  domain.Note
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	note, err := h.ownedNote(c)
	if err != nil {
		metrics.NoteOperationsTotal.WithLabelValues("update", resultLabel(err)).Inc()
		return err
	}

	var req updateNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.NoteOperationsTotal.WithLabelValues("update", "invalid").Inc()
		return err
	}

	updated, err := h.notes.UpdateNote(c.Request().Context(), note.ID, domain.NotePatch{
		Title:   req.Title,
		Content: req.Content,
	})
	if err == nil && updated == nil {
		// Deleted between the ownership check and the write.
		err = domain.ErrNoteNotFound
	}
	metrics.NoteOperationsTotal.WithLabelValues("update", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a note.
//
// @Summary      Delete a note
// @Tags         notes
// @Security     BearerAuth
// @Param        id   path  string  true  "Note ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	note, err := h.ownedNote(c)
	if err != nil {
		metrics.NoteOperationsTotal.WithLabelValues("delete", resultLabel(err)).Inc()
		return err
	}

	removed, err := h.notes.DeleteNote(c.Request().Context(), note.ID)
	if err == nil && !removed {
		err = domain.ErrNoteNotFound
	}
	metrics.NoteOperationsTotal.WithLabelValues("delete", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// HTML renders the note content as an HTML fragment.
//
// @Summary      Render a note
// @Tags         notes
// @Produce      html
// @Security     BearerAuth
// @Param        id   path      string  true  "Note ID"
// @Success      200  {string}  string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id}/html [get]
func (h *NoteHandler) HTML(c echo.Context) error {
	note, err := h.ownedNote(c)
	if err != nil {
		metrics.NoteOperationsTotal.WithLabelValues("render", resultLabel(err)).Inc()
		return err
	}

	html, err := h.notes.RenderNote(c.Request().Context(), note)
	metrics.NoteOperationsTotal.WithLabelValues("render", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}
