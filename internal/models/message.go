package models

// MessageStatus tracks delivery progress for a recipient.
type MessageStatus string

const (
	MessageStatusQueued MessageStatus = "queued"
	MessageStatusSent   MessageStatus = "sent"
	MessageStatusFailed MessageStatus = "failed"
)

// Message is an outbound SMS broadcast to one or more members.
type Message struct {
	Base
	Body       string `gorm:"not null" json:"body"`
	SenderName string `json:"sender_name,omitempty"`

	// Relationships
	Recipients []MessageRecipient `gorm:"foreignKey:MessageID" json:"recipients,omitempty"`
}

// MessageRecipient is one member's copy of a message with its delivery state.
type MessageRecipient struct {
	Base
	MessageID string        `gorm:"type:uuid;not null;index" json:"message_id"`
	MemberID  string        `gorm:"type:uuid;not null" json:"member_id"`
	Phone     string        `gorm:"not null" json:"phone"`
	Status    MessageStatus `gorm:"not null;default:'queued'" json:"status"`
	Error     string        `json:"error,omitempty"`

	// Relationships
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
