package models

import "time"

// MemberStatus represents a member's standing in the congregation.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
	MemberStatusVisitor  MemberStatus = "visitor"
)

// Member represents a person in the church register.
type Member struct {
	Base
	FirstName   string       `gorm:"not null" json:"first_name"`
	LastName    string       `gorm:"not null" json:"last_name"`
	Gender      string       `json:"gender,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Email       string       `json:"email,omitempty"`
	Address     string       `json:"address,omitempty"`
	DateOfBirth *time.Time   `json:"date_of_birth,omitempty"`
	JoinedAt    *time.Time   `json:"joined_at,omitempty"`
	Status      MemberStatus `gorm:"not null;default:'active'" json:"status"`
	Notes       string       `json:"notes,omitempty"`

	// Relationships
	Attendance []Attendance `gorm:"foreignKey:MemberID" json:"attendance,omitempty"`
}

// FullName returns the member's display name.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
