package proto

import (
	"encoding/json"
	"errors"
)

// Message type discriminators carried in the "type" field of every frame.
const (
	TypeInit     = "init"
	TypeUpdate   = "update"
	TypeChat     = "chat"
	TypePresence = "presence"
)

// Presence actions.
const (
	ActionJoin  = "join"
	ActionLeave = "leave"
)

var (
	// ErrMalformed marks a frame that is not a JSON object or is missing
	// required fields. The caller drops the frame and keeps the connection.
	ErrMalformed = errors.New("malformed message")
	// ErrUnknownType marks a frame with a tag outside the protocol.
	// Distinct from ErrMalformed so handlers can ignore it explicitly.
	ErrUnknownType = errors.New("unknown message type")
)

// Init is the first server frame on a connection: the current buffer
// plus the membership list including the new session.
type Init struct {
	Type  string   `json:"type"`
	Code  string   `json:"code"`
	Users []string `json:"users"`
}

// Update carries a full-buffer replace. Same shape inbound and outbound.
type Update struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// Chat is the outbound chat frame; Sender is resolved server-side.
type Chat struct {
	Type   string `json:"type"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Presence notifies remaining members about a join or leave, carrying
// the membership list as of after the change.
type Presence struct {
	Type   string   `json:"type"`
	Action string   `json:"action"`
	Name   string   `json:"name"`
	Users  []string `json:"users"`
}

func NewInit(code string, users []string) Init {
	return Init{Type: TypeInit, Code: code, Users: users}
}

func NewUpdate(code string) Update {
	return Update{Type: TypeUpdate, Code: code}
}

func NewChat(sender, text string) Chat {
	return Chat{Type: TypeChat, Sender: sender, Text: text}
}

func NewPresence(action, name string, users []string) Presence {
	return Presence{Type: TypePresence, Action: action, Name: name, Users: users}
}

// Client is one of the frames a connected client may send.
type Client interface {
	clientFrame()
}

// ClientUpdate replaces the room buffer with Code.
type ClientUpdate struct {
	Code string
}

// ClientChat posts Text to the room.
type ClientChat struct {
	Text string
}

func (ClientUpdate) clientFrame() {}
func (ClientChat) clientFrame()   {}

type envelope struct {
	Type string `json:"type"`
	Code string `json:"code"`
	Text string `json:"text"`
}

// DecodeClient parses one raw client frame into the closed set of inbound
// messages. Frames with an unrecognized tag return ErrUnknownType; frames
// that do not parse return ErrMalformed. Both are dropped by callers
// without terminating the connection.
func DecodeClient(data []byte) (Client, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ErrMalformed
	}

	switch env.Type {
	case TypeUpdate:
		return ClientUpdate{Code: env.Code}, nil
	case TypeChat:
		return ClientChat{Text: env.Text}, nil
	case "":
		return nil, ErrMalformed
	default:
		return nil, ErrUnknownType
	}
}
