package app

import (
	"encoding/json"
	"time"

	"github.com/sketchroom/server/internal/domain"
)

// Outbound event envelopes. Every event carries a flat "type" tag the
// client dispatches on, mirroring the inbound envelopes.

type roomStateEvent struct {
	Type    string                `json:"type"`
	RoomID  domain.RoomID         `json:"roomId"`
	Users   []*domain.Participant `json:"users"`
	Diagram domain.DiagramState   `json:"diagram"`
	OwnerID domain.ClientID       `json:"ownerId"`
	IsOwner bool                  `json:"isOwner"`
}

type userJoinedEvent struct {
	Type string              `json:"type"`
	User *domain.Participant `json:"user"`
}

type usersUpdatedEvent struct {
	Type  string                `json:"type"`
	Users []*domain.Participant `json:"users"`
}

type userLeftEvent struct {
	Type     string          `json:"type"`
	UserID   domain.ClientID `json:"userId"`
	Username string          `json:"username"`
}

type videoRoomStateEvent struct {
	Type   string                `json:"type"`
	RoomID domain.RoomID         `json:"roomId"`
	Users  []*domain.Participant `json:"users"`
}

type videoUserJoinedEvent struct {
	Type string              `json:"type"`
	User *domain.Participant `json:"user"`
}

type videoUserLeftEvent struct {
	Type   string                `json:"type"`
	UserID domain.ClientID       `json:"userId"`
	Users  []*domain.Participant `json:"users"`
}

type mediaUpdateEvent struct {
	Type   string          `json:"type"`
	UserID domain.ClientID `json:"userId"`
	Video  bool            `json:"video"`
	Audio  bool            `json:"audio"`
}

type ownershipTransferredEvent struct {
	Type       string                `json:"type"`
	NewOwnerID domain.ClientID       `json:"newOwnerId"`
	Users      []*domain.Participant `json:"users"`
}

// signalEvent relays one negotiation payload to a single peer. Exactly one
// of Offer/Answer/Candidate is set, matching the Type tag.
type signalEvent struct {
	Type       string          `json:"type"`
	Sender     domain.ClientID `json:"sender"`
	SenderName string          `json:"senderName"`
	Offer      json.RawMessage `json:"offer,omitempty"`
	Answer     json.RawMessage `json:"answer,omitempty"`
	Candidate  json.RawMessage `json:"candidate,omitempty"`
}

type diagramEvent struct {
	Type  string            `json:"type"`
	Nodes []json.RawMessage `json:"nodes,omitempty"`
	Edges []json.RawMessage `json:"edges,omitempty"`
}

type drawEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type clearEvent struct {
	Type   string          `json:"type"`
	UserID domain.ClientID `json:"userId"`
}

// ChatMessage is a server-stamped chat entry: id and timestamp are
// assigned here so every member, sender included, sees the canonical copy.
type ChatMessage struct {
	ID        string          `json:"id"`
	UserID    domain.ClientID `json:"userId"`
	Username  string          `json:"username"`
	Text      string          `json:"text"`
	Timestamp time.Time       `json:"timestamp"`
}

type chatEvent struct {
	Type    string      `json:"type"`
	Message ChatMessage `json:"message"`
}

type screenShareEvent struct {
	Type     string          `json:"type"`
	UserID   domain.ClientID `json:"userId"`
	Username string          `json:"username"`
}

type recordingEvent struct {
	Type   string          `json:"type"`
	UserID domain.ClientID `json:"userId"`
}
