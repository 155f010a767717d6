package domain

import (
	"fmt"
	"time"
)

// ChatKind is a custom type for our ENUM
type ChatKind string

const (
	ChatKindUser  ChatKind = "user"
	ChatKindGroup ChatKind = "group"
)

// Locale length bounds, e.g. "en" or "en-GB".
const (
	MinLocaleLength = 2
	MaxLocaleLength = 6
)

// Chat represents a user or group the bot has talked to.
type Chat struct {
	ID          int64 // Telegram chat ID
	Kind        ChatKind
	DisplayName string // Encrypted at rest
	Locale      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the invariants a chat must satisfy before it is stored.
func (c *Chat) Validate() error {
	if c.Kind != ChatKindUser && c.Kind != ChatKindGroup {
		return fmt.Errorf("invalid chat kind %q", c.Kind)
	}
	if n := len(c.Locale); n < MinLocaleLength || n > MaxLocaleLength {
		return fmt.Errorf("locale %q must be %d-%d characters", c.Locale, MinLocaleLength, MaxLocaleLength)
	}
	return nil
}
