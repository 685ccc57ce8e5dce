package http

import (
	"context"
	"errors"
	"io"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/core"
	"github.com/pairpad/pairpad-server/internal/proto"
	"github.com/pairpad/pairpad-server/internal/store"
)

// WSHandler upgrades HTTP connections and runs the room sync protocol
// for the lifetime of each connection.
type WSHandler struct {
	manager *core.Manager
	store   store.Store
	log     *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(manager *core.Manager, st store.Store, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{manager: manager, store: st, log: logger}
}

// Handle serves one room connection.
// GET /ws/:room?name=<displayName>
func (h *WSHandler) Handle(c *gin.Context) {
	roomID := c.Param("room")
	name := c.Query("name")

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Str("room_id", roomID).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	sess := core.NewSession(uuid.NewString(), name, roomID)
	if err := h.manager.Connect(sess); err != nil {
		h.log.Warn().Err(err).Str("session_id", sess.ID).Msg("ws register rejected")
		conn.Close(websocket.StatusPolicyViolation, "already connected")
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	h.initSession(ctx, sess)

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, sess)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, sess)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	// Transport failure and graceful close both funnel through here,
	// once per session.
	h.leave(sess)

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("session_id", sess.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// initSession performs the join sequence: fetch the current buffer,
// queue the init frame for the new session, then tell the rest of the
// room. An unknown room joins with an empty buffer.
func (h *WSHandler) initSession(ctx context.Context, sess *core.Session) {
	code, found, err := h.store.GetRoomState(ctx, sess.RoomID)
	if err != nil {
		h.log.Error().Err(err).Str("room_id", sess.RoomID).Msg("read room state")
		code = ""
	} else if !found {
		h.log.Debug().Str("room_id", sess.RoomID).Msg("joining unknown room with empty state")
	}

	users := h.manager.Members(sess.RoomID)
	if err := sess.Send(proto.NewInit(code, users)); err != nil {
		h.log.Warn().Err(err).Str("session_id", sess.ID).Msg("queue init frame")
	}

	h.manager.Broadcast(sess.RoomID, proto.NewPresence(proto.ActionJoin, sess.Name, users), sess.ID)
}

// leave removes the session from the registry and notifies the
// remaining members. A session that was already removed is a no-op.
func (h *WSHandler) leave(sess *core.Session) {
	name, ok := h.manager.Disconnect(sess)
	if !ok {
		return
	}

	users := h.manager.Members(sess.RoomID)
	h.manager.Broadcast(sess.RoomID, proto.NewPresence(proto.ActionLeave, name, users), "")
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, sess *core.Session) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		msg, err := proto.DecodeClient(data)
		if err != nil {
			// Unknown tags and unparseable frames are dropped without
			// closing the connection or answering the sender.
			h.log.Debug().Err(err).Str("session_id", sess.ID).Msg("ignoring client frame")
			continue
		}

		switch m := msg.(type) {
		case proto.ClientUpdate:
			if _, err := h.store.SetRoomState(ctx, sess.RoomID, m.Code); err != nil {
				h.log.Error().Err(err).Str("room_id", sess.RoomID).Msg("write room state")
			}
			// The sender already holds this buffer locally; echoing it
			// back would reapply the edit.
			h.manager.Broadcast(sess.RoomID, proto.NewUpdate(m.Code), sess.ID)
		case proto.ClientChat:
			// Chat goes to everyone, the sender included: clients wait
			// for the server copy instead of echoing locally.
			h.manager.Broadcast(sess.RoomID, proto.NewChat(sess.Name, m.Text), "")
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, sess *core.Session) error {
	for {
		select {
		case event := <-sess.Events():
			if err := wsjson.Write(ctx, conn, event); err != nil {
				h.log.Warn().Err(err).Str("session_id", sess.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
