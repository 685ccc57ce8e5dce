package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/suggest"
)

// SuggestHandlers provides the autocomplete endpoint.
type SuggestHandlers struct {
	log *zerolog.Logger
}

// NewSuggestHandlers creates a new suggestion handlers instance.
func NewSuggestHandlers(logger *zerolog.Logger) *SuggestHandlers {
	return &SuggestHandlers{log: logger}
}

// SuggestResponse represents the autocomplete response body.
type SuggestResponse struct {
	Suggestion string `json:"suggestion"`
}

// Autocomplete handles suggestion queries.
// POST /api/autocomplete
func (h *SuggestHandlers) Autocomplete(c *gin.Context) {
	var req suggest.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid autocomplete request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, SuggestResponse{
		Suggestion: suggest.Suggest(req.Code, req.CursorPosition),
	})
}
