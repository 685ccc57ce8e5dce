package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/store"
)

// RoomHandlers provides HTTP handlers for room management endpoints.
type RoomHandlers struct {
	store store.Store
	log   *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(st store.Store, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		store: st,
		log:   logger,
	}
}

// CreateRoomResponse represents the create room response body.
type CreateRoomResponse struct {
	RoomID string `json:"roomId"`
}

// RoomResponse represents a room in fetch responses.
type RoomResponse struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateRoom handles room creation. The request carries no body; the
// server generates the room ID.
// POST /api/rooms
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	room, err := h.store.CreateRoom(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("room_id", room.ID).Msg("room created")
	c.JSON(http.StatusCreated, CreateRoomResponse{RoomID: room.ID})
}

// FetchRoom handles reading a room's current buffer. An unknown room is
// answered with empty code, not an error status.
// GET /api/rooms/:id
func (h *RoomHandlers) FetchRoom(c *gin.Context) {
	roomID := c.Param("id")

	code, found, err := h.store.GetRoomState(c.Request.Context(), roomID)
	if err != nil {
		h.log.Error().Err(err).Str("room_id", roomID).Msg("failed to fetch room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	if !found {
		h.log.Debug().Str("room_id", roomID).Msg("room not found, returning empty state")
	}
	c.JSON(http.StatusOK, RoomResponse{RoomID: roomID, Code: code})
}
