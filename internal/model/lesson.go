package model

import "time"

// Lesson is a scheduled class. Scheduling itself lives in the calendar
// service; this backend only needs the roster and the owning teacher.
// swagger:model Lesson
type Lesson struct {
	BaseModel
	Title     string     `gorm:"size:255;not null" json:"title"`
	TeacherID uint       `gorm:"index;type:bigint unsigned" json:"teacherId"`
	StartsAt  *time.Time `json:"startsAt,omitempty"`
	Students  []User     `gorm:"many2many:lesson_students" json:"students,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// InteractiveLesson is a container of exercise blocks that can be assigned as
// homework to students of a scheduled lesson.
// swagger:model InteractiveLesson
type InteractiveLesson struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CreatedBy   uint   `gorm:"index;type:bigint unsigned" json:"createdBy"`
}

func (InteractiveLesson) TableName() string {
	return "interactive_lessons"
}
