package domain

import (
	"time"

	"github.com/google/uuid"
)

type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// User is one Telegram identity. Created on first contact.
type User struct {
	ID               uuid.UUID      `json:"id"`
	TelegramUserID   string         `json:"telegram_user_id"`
	TelegramUsername string         `json:"telegram_username,omitempty"`
	Name             string         `json:"name,omitempty"`
	Email            string         `json:"email,omitempty"`
	Tier             Tier           `json:"tier"`
	DocumentCounts   map[string]int `json:"document_counts"`
	RoleCounts       map[string]int `json:"role_counts"`
	QuotaResetsAt    time.Time      `json:"quota_resets_at"`
	PremiumExpiresAt *time.Time     `json:"premium_expires_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func NewUser(telegramUserID, telegramUsername string) *User {
	now := time.Now()
	return &User{
		ID:               uuid.New(),
		TelegramUserID:   telegramUserID,
		TelegramUsername: telegramUsername,
		Tier:             TierFree,
		DocumentCounts:   map[string]int{},
		RoleCounts:       map[string]int{},
		QuotaResetsAt:    now.AddDate(0, 1, 0),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (u *User) DocumentCount(dt DocumentType) int {
	if u.DocumentCounts == nil {
		return 0
	}
	return u.DocumentCounts[string(dt)]
}

func (u *User) IncrementDocumentCount(dt DocumentType) {
	if u.DocumentCounts == nil {
		u.DocumentCounts = map[string]int{}
	}
	u.DocumentCounts[string(dt)]++
}

func (u *User) RoleCount(role string) int {
	if u.RoleCounts == nil {
		return 0
	}
	return u.RoleCounts[role]
}

func (u *User) IncrementRoleCount(role string) {
	if u.RoleCounts == nil {
		u.RoleCounts = map[string]int{}
	}
	u.RoleCounts[role]++
}

func (u *User) TotalGenerations() int {
	total := 0
	for _, n := range u.DocumentCounts {
		total += n
	}
	return total
}

func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.TelegramUsername != "" {
		return u.TelegramUsername
	}
	return "User"
}
