package repository

import (
	"lingua_school_backend/internal/model"

	"gorm.io/gorm"
)

// LessonRepository covers scheduled lessons and their rosters plus the
// interactive lessons that get assigned from them.
type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.DB.First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// StudentIDs returns the ids of students enrolled in a scheduled lesson.
func (r *LessonRepository) StudentIDs(lessonID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Table("lesson_students").
		Where("lesson_id = ?", lessonID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *LessonRepository) FindInteractiveByID(id uint) (*model.InteractiveLesson, error) {
	var lesson model.InteractiveLesson
	if err := r.DB.First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}
