package model

import "encoding/json"

// ExerciseResult stores a student's latest answer to one block. The
// (student_id, block_id) unique index makes resubmission an update, never a
// second row. IsCorrect is nil when the block could not be auto-graded.
// swagger:model ExerciseResult
type ExerciseResult struct {
	BaseModel
	StudentID uint            `gorm:"uniqueIndex:idx_results_student_block;type:bigint unsigned" json:"studentId"`
	BlockID   uint            `gorm:"uniqueIndex:idx_results_student_block;type:bigint unsigned" json:"blockId"`
	LessonID  uint            `gorm:"index;type:bigint unsigned" json:"lessonId"` // denormalized from the block
	Answer    json.RawMessage `gorm:"type:json" json:"answer"`
	IsCorrect *bool           `json:"isCorrect"`
}

func (ExerciseResult) TableName() string {
	return "exercise_results"
}
