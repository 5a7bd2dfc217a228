package service

import (
	"encoding/json"

	"lingua_school_backend/internal/grading"
	"lingua_school_backend/internal/model"
	"lingua_school_backend/internal/repository"
	"lingua_school_backend/internal/util"

	"gorm.io/gorm"
)

// LessonService covers the thin authoring surface around exercise blocks.
// Content documents are validated only for a known block type; their inner
// shape is the renderer's contract and legacy documents must keep loading.
type LessonService struct {
	Lessons *repository.LessonRepository
	Blocks  *repository.BlockRepository
}

func NewLessonService(lessons *repository.LessonRepository, blocks *repository.BlockRepository) *LessonService {
	return &LessonService{Lessons: lessons, Blocks: blocks}
}

type BlockReq struct {
	BlockType grading.BlockType `json:"blockType" binding:"required"`
	Content   json.RawMessage   `json:"content"`
	Position  *int              `json:"position"`
}

func (s *LessonService) ListBlocks(lessonID uint) ([]model.ExerciseBlock, error) {
	if _, err := s.Lessons.FindInteractiveByID(lessonID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInteractiveLessonNotFound
		}
		return nil, err
	}
	return s.Blocks.ListByLesson(lessonID)
}

func (s *LessonService) CreateBlock(lessonID uint, req BlockReq) (*model.ExerciseBlock, error) {
	if _, err := s.Lessons.FindInteractiveByID(lessonID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInteractiveLessonNotFound
		}
		return nil, err
	}
	if !req.BlockType.Known() {
		return nil, util.ErrUnknownBlockType
	}

	block := &model.ExerciseBlock{
		LessonID:  lessonID,
		BlockType: req.BlockType,
		Content:   req.Content,
	}
	if req.Position != nil {
		block.Position = *req.Position
	} else {
		existing, err := s.Blocks.ListByLesson(lessonID)
		if err != nil {
			return nil, err
		}
		block.Position = len(existing)
	}

	if err := s.Blocks.Create(block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *LessonService) UpdateBlock(blockID uint, req BlockReq) (*model.ExerciseBlock, error) {
	block, err := s.Blocks.FindByID(blockID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrBlockNotFound
		}
		return nil, err
	}
	if !req.BlockType.Known() {
		return nil, util.ErrUnknownBlockType
	}

	block.BlockType = req.BlockType
	block.Content = req.Content
	if req.Position != nil {
		block.Position = *req.Position
	}
	if err := s.Blocks.Update(block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *LessonService) DeleteBlock(blockID uint) error {
	if _, err := s.Blocks.FindByID(blockID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrBlockNotFound
		}
		return err
	}
	return s.Blocks.Delete(blockID)
}

func (s *LessonService) ReorderBlocks(lessonID uint, orderedIDs []uint) error {
	if _, err := s.Lessons.FindInteractiveByID(lessonID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrInteractiveLessonNotFound
		}
		return err
	}
	return s.Blocks.Reorder(lessonID, orderedIDs)
}
