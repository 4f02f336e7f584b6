package chat

import "time"

// UserView is the outward shape of a resolved participant. It carries profile
// fields only; the credential never leaves the persistence layer.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Pic   string `json:"pic"`
}

// MessageView is a message with its sender resolved.
type MessageView struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversation_id"`
	Body           *string     `json:"body"`
	MsgType        MessageType `json:"msg_type"`
	AttachmentURL  *string     `json:"attachment_url,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	Sender         UserView    `json:"sender"`
}

// ConversationView is a conversation with participants, admin and latest
// message denormalized for the caller. Participants keep insertion order.
type ConversationView struct {
	ID            string       `json:"id"`
	Kind          Kind         `json:"kind"`
	Name          string       `json:"name"`
	Participants  []UserView   `json:"participants"`
	Admin         *UserView    `json:"admin,omitempty"`
	LatestMessage *MessageView `json:"latest_message,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// HasParticipant tells whether userID appears among the resolved participants.
func (v *ConversationView) HasParticipant(userID string) bool {
	if v == nil {
		return false
	}
	for _, p := range v.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}
