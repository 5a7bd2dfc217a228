package model

import (
	"encoding/json"

	"lingua_school_backend/internal/grading"
)

// ExerciseBlock is one unit of an interactive lesson. Content is the
// authoring document (including the answer key) whose shape is fixed by
// BlockType; it is stored untyped and decoded by the grading package.
// swagger:model ExerciseBlock
type ExerciseBlock struct {
	BaseModel
	LessonID  uint              `gorm:"index;type:bigint unsigned" json:"lessonId"` // owning interactive lesson
	BlockType grading.BlockType `gorm:"size:50;not null" json:"blockType"`
	Content   json.RawMessage   `gorm:"type:json" json:"content"`
	Position  int               `gorm:"default:0" json:"position"`
}

func (ExerciseBlock) TableName() string {
	return "exercise_blocks"
}
