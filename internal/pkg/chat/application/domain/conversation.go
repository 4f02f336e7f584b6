package chat

import (
	"errors"
	"strings"
	"time"
)

// Kind distinguishes the two conversation shapes.
type Kind string

const (
	KindDirect Kind = "direct"
	KindGroup  Kind = "group"
)

// Domain-level errors for conversation behaviors
var (
	ErrSelfConversation = errors.New("chat: cannot open a conversation with yourself")
	ErrGroupTooSmall    = errors.New("chat: a group needs at least 2 other members")
	ErrGroupNameEmpty   = errors.New("chat: group name is required")
	ErrNotGroup         = errors.New("chat: operation applies to group conversations only")
	ErrNotParticipant   = errors.New("chat: user is not a participant in the conversation")
	ErrNotAdmin         = errors.New("chat: only the group admin may do this")
)

// Conversation is the persisted record. Name is empty and AdminID nil for
// direct conversations; DirectKey is set for direct conversations only.
type Conversation struct {
	ID              string    `db:"id"`
	Kind            Kind      `db:"kind"`
	Name            string    `db:"name"`
	AdminID         *string   `db:"admin_id"`
	DirectKey       *string   `db:"direct_key"`
	LatestMessageID *string   `db:"latest_message_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// IsGroup reports whether group-only operations (rename, membership changes)
// apply to this conversation.
func (c *Conversation) IsGroup() bool {
	return c != nil && c.Kind == KindGroup
}

// DirectKey canonicalizes an unordered user id pair. Both orderings of the
// same two ids produce the same key, so a unique index on the stored key
// admits exactly one direct conversation per pair.
func DirectKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}

// GroupMembers validates and normalizes the requested member list for a new
// group: blanks, duplicates and the creator are dropped, and at least two
// other members must remain. The returned slice preserves request order with
// the creator appended last.
func GroupMembers(creatorID string, requested []string) ([]string, error) {
	seen := make(map[string]struct{}, len(requested))
	members := make([]string, 0, len(requested)+1)
	for _, id := range requested {
		if id == "" || id == creatorID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	if len(members) < 2 {
		return nil, ErrGroupTooSmall
	}
	return append(members, creatorID), nil
}

// ValidateGroupName trims and checks the display name for a group.
func ValidateGroupName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrGroupNameEmpty
	}
	return trimmed, nil
}
