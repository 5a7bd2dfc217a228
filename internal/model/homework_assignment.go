package model

import "time"

type HomeworkStatus string

const (
	HomeworkPending   HomeworkStatus = "pending"
	HomeworkSubmitted HomeworkStatus = "submitted"
	HomeworkAccepted  HomeworkStatus = "accepted"
)

// CanTransitionTo reports whether the status may move to next. The lifecycle
// is strictly pending -> submitted -> accepted; nothing skips or reverses.
func (s HomeworkStatus) CanTransitionTo(next HomeworkStatus) bool {
	switch s {
	case HomeworkPending:
		return next == HomeworkSubmitted
	case HomeworkSubmitted:
		return next == HomeworkAccepted
	}
	return false
}

// HomeworkAssignment binds one student to one interactive lesson as required
// work for a scheduled lesson. AssignedBy never changes after creation, and
// the transition timestamps are written exactly once.
// swagger:model HomeworkAssignment
type HomeworkAssignment struct {
	BaseModel
	LessonID            uint           `gorm:"uniqueIndex:idx_homework_triple;type:bigint unsigned" json:"lessonId"`
	InteractiveLessonID uint           `gorm:"uniqueIndex:idx_homework_triple;type:bigint unsigned" json:"interactiveLessonId"`
	StudentID           uint           `gorm:"uniqueIndex:idx_homework_triple;type:bigint unsigned" json:"studentId"`
	AssignedBy          uint           `gorm:"type:bigint unsigned" json:"assignedBy"`
	Status              HomeworkStatus `gorm:"size:20;default:'pending'" json:"status"`
	AssignedAt          time.Time      `json:"assignedAt"`
	SubmittedAt         *time.Time     `json:"submittedAt,omitempty"`
	AcceptedAt          *time.Time     `json:"acceptedAt,omitempty"`
}

func (HomeworkAssignment) TableName() string {
	return "homework_assignments"
}
