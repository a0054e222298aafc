package domain

import "time"

// GroupLevel is the computed proficiency level of a class group.
type GroupLevel string

const (
	GroupLevelBeginner     GroupLevel = "BEGINNER"
	GroupLevelIntermediate GroupLevel = "INTERMEDIATE"
	GroupLevelAdvanced     GroupLevel = "ADVANCED"
)

// ClassGroup is a named set of students taught together.
type ClassGroup struct {
	ID          int64
	TeacherID   int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LevelForAverage maps an average evaluation score (0-10 scale) to a group
// level. Averages at or below 3 are beginner, at or below 7 intermediate,
// anything higher advanced.
func LevelForAverage(avg float64) GroupLevel {
	switch {
	case avg <= 3:
		return GroupLevelBeginner
	case avg <= 7:
		return GroupLevelIntermediate
	default:
		return GroupLevelAdvanced
	}
}
