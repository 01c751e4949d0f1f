package models

import "time"

// Event represents a service, meeting or program on the church calendar.
type Event struct {
	Base
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `gorm:"not null" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`

	// Relationships
	Attendance []Attendance `gorm:"foreignKey:EventID" json:"attendance,omitempty"`
}
