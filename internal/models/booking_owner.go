package models

import "time"

// EnquiryStatus tracks the lifecycle of a booking owner's enquiry.
type EnquiryStatus string

const (
	StatusNew       EnquiryStatus = "new"
	StatusAssigned  EnquiryStatus = "assigned"
	StatusExpired   EnquiryStatus = "expired"
	StatusCompleted EnquiryStatus = "completed"
)

// BookingOwner is the person who submitted an enquiry. They may book for
// themselves (no linked students) or on behalf of one or more students.
type BookingOwner struct {
	ID              string         `db:"id" json:"id"`
	FirstName       string         `db:"first_name" json:"first_name"`
	LastName        string         `db:"last_name" json:"last_name"`
	Email           string         `db:"email" json:"email"`
	Phone           string         `db:"phone" json:"phone"`
	Postcode        *string        `db:"postcode" json:"postcode,omitempty"`
	Ward            *string        `db:"ward" json:"ward,omitempty"`
	Age             *int           `db:"age" json:"age,omitempty"`
	Instruments     InstrumentList `db:"instruments" json:"instruments"`
	Level           *string        `db:"level" json:"level,omitempty"`
	Message         *string        `db:"message" json:"message,omitempty"`
	Status          EnquiryStatus  `db:"status" json:"status"`
	AssignedTutorID *string        `db:"assigned_tutor_id" json:"assigned_tutor_id,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`

	// Students is populated by the joined read, not a column.
	Students []Student `db:"-" json:"students"`
}
