package httpapi

import (
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"

	"github.com/akuzmin/notehub/internal/errs"
	"github.com/akuzmin/notehub/internal/model"
	"github.com/akuzmin/notehub/internal/token"
)

type noteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	IsPinned *bool    `json:"isPinned"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNoteResponse(n *model.Note) noteResponse {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		IsPinned:  n.IsPinned,
		CreatedAt: n.CreatedAt,
	}
}

// caller resolves the authenticated identity placed by the access guard.
func (s *Server) caller(c echo.Context) (token.Claims, error) {
	cl, ok := claimsFrom(c)
	if !ok {
		return token.Claims{}, errs.ErrMissingToken
	}
	return cl, nil
}

// noteID parses the path id. An unparseable id behaves like a missing note
// so malformed probes are indistinguishable from misses.
func noteID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return uuid.Nil, errs.ErrNotFound
	}
	return id, nil
}

func (s *Server) listNotes(c echo.Context) error {
	cl, err := s.caller(c)
	if err != nil {
		return s.writeError(c, err)
	}
	notes, err := s.notes.List(c.Request().Context(), cl.UserID)
	if err != nil {
		return s.writeError(c, err)
	}
	out := make([]noteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResponse(&notes[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"notes": out})
}

func (s *Server) createNote(c echo.Context) error {
	cl, err := s.caller(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Validation("body", "malformed request body"))
	}
	n, err := s.notes.Create(c.Request().Context(), cl.UserID, model.NoteDraft{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"note": toNoteResponse(n)})
}

func (s *Server) updateNote(c echo.Context) error {
	cl, err := s.caller(c)
	if err != nil {
		return s.writeError(c, err)
	}
	id, err := noteID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Validation("body", "malformed request body"))
	}
	n, err := s.notes.Update(c.Request().Context(), cl.UserID, id, model.NoteDraft{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"note": toNoteResponse(n)})
}

func (s *Server) deleteNote(c echo.Context) error {
	cl, err := s.caller(c)
	if err != nil {
		return s.writeError(c, err)
	}
	id, err := noteID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	if err := s.notes.Delete(c.Request().Context(), cl.UserID, id); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "note deleted"})
}

func (s *Server) togglePin(c echo.Context) error {
	cl, err := s.caller(c)
	if err != nil {
		return s.writeError(c, err)
	}
	id, err := noteID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	n, err := s.notes.TogglePin(c.Request().Context(), cl.UserID, id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"note": toNoteResponse(n)})
}
