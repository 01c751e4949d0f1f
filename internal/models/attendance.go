package models

import "time"

// Attendance records a member's presence at an event. One row per
// member per event.
type Attendance struct {
	Base
	EventID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_event_member" json:"event_id"`
	MemberID string    `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_event_member" json:"member_id"`
	Date     time.Time `gorm:"not null" json:"date"`
	Present  bool      `gorm:"not null;default:true" json:"present"`
	Note     string    `json:"note,omitempty"`

	// Relationships
	Event  Event  `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
