package domain

import (
	"time"

	"github.com/google/uuid"
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Message is one line of the append-only conversation log.
type Message struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	JobID     *uuid.UUID `json:"job_id,omitempty"`
	Direction Direction  `json:"direction"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewMessage(userID uuid.UUID, jobID *uuid.UUID, dir Direction, content string) *Message {
	return &Message{
		ID:        uuid.New(),
		UserID:    userID,
		JobID:     jobID,
		Direction: dir,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
