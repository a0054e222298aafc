package domain

import "time"

// Student is a pupil managed by a teacher. PlanID is nil until a
// subscription plan is assigned.
type Student struct {
	ID        int64
	TeacherID int64
	FullName  string
	Email     string
	PlanID    *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
