// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"time"
)

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

// ClientID identifies one live connection. It is the membership key in
// both rosters of a room.
type ClientID string

type Participant struct {
	ID           ClientID  `json:"id"`
	Username     string    `json:"username"`
	IsOwner      bool      `json:"isOwner"`
	VideoEnabled bool      `json:"videoEnabled"`
	AudioEnabled bool      `json:"audioEnabled"`
	JoinedAt     time.Time `json:"joinedAt"`
	LastSeen     time.Time `json:"lastSeen"`
}

// NewParticipant validates the display name and fills the media defaults
// (camera and microphone start enabled).
func NewParticipant(id ClientID, username string, now time.Time) (*Participant, error) {
	if len(username) == 0 {
		return nil, ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return nil, ErrUsernameTooLong
	}
	return &Participant{
		ID:           id,
		Username:     username,
		VideoEnabled: true,
		AudioEnabled: true,
		JoinedAt:     now,
		LastSeen:     now,
	}, nil
}
