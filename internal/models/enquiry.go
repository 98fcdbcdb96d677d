package models

import "time"

// BookingType discriminates how an enquiry row was derived.
type BookingType string

const (
	BookingParentForChild BookingType = "parent_for_child"
	BookingSelf           BookingType = "self_booking"
)

// Enquiry is a denormalized view row, not a stored entity. Each row traces
// to exactly one booking owner and either one of its students or, for an
// owner with no students, a synthetic self-booking entry whose student_id
// equals the owner's own id.
type Enquiry struct {
	ID              string        `json:"id"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Postcode        *string       `json:"postcode,omitempty"`
	Ward            *string       `json:"ward,omitempty"`
	Message         *string       `json:"message,omitempty"`
	Status          EnquiryStatus `json:"status"`
	AssignedTutorID *string       `json:"assigned_tutor_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`

	StudentID     string      `json:"student_id"`
	StudentName   string      `json:"student_name"`
	StudentAge    *int        `json:"student_age,omitempty"`
	Instruments   string      `json:"instruments"`
	Level         *string     `json:"level,omitempty"`
	IsSelfBooking bool        `json:"is_self_booking"`
	BookingType   BookingType `json:"booking_type"`

	// Students carries the owner's full student list so callers can run
	// per-student allocation; empty for self-bookings.
	Students []Student `json:"students"`
}

// DashboardStats summarises enquiry and roster volumes for the admin home.
type DashboardStats struct {
	TotalEnquiries    int `json:"total_enquiries"`
	NewEnquiries      int `json:"new_enquiries"`
	AssignedStudents  int `json:"assigned_students"`
	TotalTutors       int `json:"total_tutors"`
	ActiveTutors      int `json:"active_tutors"`
	ArchivedEnquiries int `json:"archived_enquiries"`
}
