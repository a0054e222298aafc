package domain

import "time"

// Teacher is the tenant profile attached to a TEACHER-role user. Students,
// class groups and evaluations are scoped to a teacher.
type Teacher struct {
	ID        int64
	UserID    int64
	FullName  string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
