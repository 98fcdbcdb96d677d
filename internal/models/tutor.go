package models

import "time"

// Tutor represents an instructor on the roster.
type Tutor struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Email       string         `db:"email" json:"email"`
	Phone       *string        `db:"phone" json:"phone,omitempty"`
	Instruments InstrumentList `db:"instruments" json:"instruments"`
	Postcode    *string        `db:"postcode" json:"postcode,omitempty"`
	Strikes     int            `db:"strikes" json:"strikes"`
	Active      bool           `db:"active" json:"active"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}
