package models

import "time"

// Student is a learner linked to a booking owner. Rows are created by the
// external intake flow; this service only mutates the tutor reference and
// its companion flag.
type Student struct {
	ID              string         `db:"id" json:"id"`
	BookingOwnerID  string         `db:"booking_owner_id" json:"booking_owner_id"`
	Name            string         `db:"name" json:"name"`
	Age             *int           `db:"age" json:"age,omitempty"`
	Instruments     InstrumentList `db:"instruments" json:"instruments"`
	Level           *string        `db:"level" json:"level,omitempty"`
	TutorID         *string        `db:"tutor_id" json:"tutor_id,omitempty"`
	IsTutorAssigned bool           `db:"is_tutor_assigned" json:"is_tutor_assigned"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}
