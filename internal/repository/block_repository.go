package repository

import (
	"lingua_school_backend/internal/model"

	"gorm.io/gorm"
)

type BlockRepository struct {
	DB *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{DB: db}
}

func (r *BlockRepository) FindByID(id uint) (*model.ExerciseBlock, error) {
	var block model.ExerciseBlock
	if err := r.DB.First(&block, id).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

// ListByLesson returns the blocks of an interactive lesson in display order.
func (r *BlockRepository) ListByLesson(lessonID uint) ([]model.ExerciseBlock, error) {
	var blocks []model.ExerciseBlock
	err := r.DB.Where("lesson_id = ?", lessonID).
		Order("position ASC, id ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *BlockRepository) Create(block *model.ExerciseBlock) error {
	return r.DB.Create(block).Error
}

func (r *BlockRepository) Update(block *model.ExerciseBlock) error {
	return r.DB.Save(block).Error
}

func (r *BlockRepository) Delete(id uint) error {
	return r.DB.Delete(&model.ExerciseBlock{}, id).Error
}

// Reorder rewrites the positions of a lesson's blocks to match the given id
// order. Ids not belonging to the lesson are ignored by the WHERE clause.
func (r *BlockRepository) Reorder(lessonID uint, orderedIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for pos, id := range orderedIDs {
			err := tx.Model(&model.ExerciseBlock{}).
				Where("id = ? AND lesson_id = ?", id, lessonID).
				Update("position", pos).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
