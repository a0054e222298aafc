package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStudentCreated      EventType = "student_created"
	EventStudentAddedToGroup EventType = "student_added_to_group"
	EventGroupCreated        EventType = "group_created"
	EventEvaluationRecorded  EventType = "evaluation_recorded"
	EventPlanAssigned        EventType = "plan_assigned"
)

// Event represents a business activity emitted by services; the dashboard
// feed is built from these.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TeacherID int64       `json:"teacher_id"`
	Summary   string      `json:"summary"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// StudentCreatedPayload payload.
type StudentCreatedPayload struct {
	StudentID int64  `json:"student_id"`
	FullName  string `json:"full_name"`
}

// StudentAddedToGroupPayload payload.
type StudentAddedToGroupPayload struct {
	StudentID int64 `json:"student_id"`
	GroupID   int64 `json:"group_id"`
}

// GroupCreatedPayload payload.
type GroupCreatedPayload struct {
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
}

// EvaluationRecordedPayload payload.
type EvaluationRecordedPayload struct {
	EvaluationID int64 `json:"evaluation_id"`
	StudentID    int64 `json:"student_id"`
	TraitID      int64 `json:"trait_id"`
	Score        int   `json:"score"`
}

// PlanAssignedPayload payload.
type PlanAssignedPayload struct {
	StudentID int64 `json:"student_id"`
	PlanID    int64 `json:"plan_id"`
}
