package repository

import (
	"lingua_school_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Upsert writes the result atomically against the (student_id, block_id)
// unique index. Concurrent resubmissions serialize in the database; the last
// writer's answer and verdict win and exactly one row survives.
func (r *ResultRepository) Upsert(result *model.ExerciseResult) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "block_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"lesson_id", "answer", "is_correct", "updated_at",
		}),
	}).Create(result).Error
}

func (r *ResultRepository) FindByStudentAndBlock(studentID, blockID uint) (*model.ExerciseResult, error) {
	var result model.ExerciseResult
	err := r.DB.Where("student_id = ? AND block_id = ?", studentID, blockID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) ListByStudentAndLesson(studentID, lessonID uint) ([]model.ExerciseResult, error) {
	var results []model.ExerciseResult
	err := r.DB.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) ListByLesson(lessonID uint) ([]model.ExerciseResult, error) {
	var results []model.ExerciseResult
	err := r.DB.Where("lesson_id = ?", lessonID).Find(&results).Error
	return results, err
}
