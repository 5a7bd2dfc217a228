package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"lingua_school_backend/internal/grading"
	"lingua_school_backend/internal/model"
	"lingua_school_backend/internal/repository"
	"lingua_school_backend/internal/util"
	"lingua_school_backend/pkg/logger"
	"lingua_school_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	lessonSummaryKeyPrefix = "lesson_summary:"
	lessonSummaryTTL       = 5 * time.Minute
)

// ExerciseService grades submitted answers, stores results and aggregates
// per-lesson progress.
type ExerciseService struct {
	Blocks      *repository.BlockRepository
	Results     *repository.ResultRepository
	Assignments *repository.AssignmentRepository
	Users       *repository.UserRepository
	Redis       *redis.Client
}

func NewExerciseService(
	blocks *repository.BlockRepository,
	results *repository.ResultRepository,
	assignments *repository.AssignmentRepository,
	users *repository.UserRepository,
	rdb *redis.Client,
) *ExerciseService {
	return &ExerciseService{
		Blocks:      blocks,
		Results:     results,
		Assignments: assignments,
		Users:       users,
		Redis:       rdb,
	}
}

// LessonSummary is a student's progress over one interactive lesson. Total
// counts only auto-gradable blocks, Answered counts every stored result
// (an answered essay counts toward completion), so Answered can exceed Total.
type LessonSummary struct {
	Score    int `json:"score"`
	Total    int `json:"total"`
	Answered int `json:"answered"`
}

type StudentLessonSummary struct {
	StudentID   uint   `json:"studentId"`
	StudentName string `json:"studentName"`
	LessonSummary
}

// BlockDetail is the teacher drill-down row: block content plus the
// student's stored answer, if any.
type BlockDetail struct {
	BlockID   uint              `json:"blockId"`
	BlockType grading.BlockType `json:"blockType"`
	Position  int               `json:"position"`
	Content   json.RawMessage   `json:"content"`
	Answer    json.RawMessage   `json:"answer,omitempty"`
	IsCorrect *bool             `json:"isCorrect"`
}

// SubmitAnswer grades one block for one student and upserts the result. The
// lessonID must match the block's owning lesson; a mismatch rejects the
// submission before anything is written.
func (s *ExerciseService) SubmitAnswer(studentID, blockID, lessonID uint, answer json.RawMessage) (*model.ExerciseResult, error) {
	block, err := s.Blocks.FindByID(blockID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrBlockNotFound
		}
		return nil, err
	}
	if block.LessonID != lessonID {
		return nil, util.ErrLessonMismatch
	}

	verdict, gradeErr := grading.Grade(block.BlockType, block.Content, answer)
	if gradeErr != nil {
		// Malformed authoring content must not fail the submission; the
		// verdict stays unknown and the defect is logged for content review.
		logger.Log.Warn("grading defect",
			zap.Uint("block_id", block.ID),
			zap.String("block_type", string(block.BlockType)),
			zap.Error(gradeErr))
	}
	monitoring.SubmissionCounter.WithLabelValues(string(block.BlockType), verdict.String()).Inc()

	result := &model.ExerciseResult{
		StudentID: studentID,
		BlockID:   blockID,
		LessonID:  block.LessonID,
		Answer:    answer,
		IsCorrect: verdict.Bool(),
	}
	if err := s.Results.Upsert(result); err != nil {
		return nil, err
	}
	s.invalidateLessonSummary(block.LessonID)

	// Re-read so resubmissions return the surviving row's id and timestamps
	// rather than the zero values of the conflicting insert.
	return s.Results.FindByStudentAndBlock(studentID, blockID)
}

// GetLessonResults is the student's own view of one lesson.
func (s *ExerciseService) GetLessonResults(studentID, lessonID uint) (*LessonSummary, []model.ExerciseResult, error) {
	blocks, err := s.Blocks.ListByLesson(lessonID)
	if err != nil {
		return nil, nil, err
	}
	results, err := s.Results.ListByStudentAndLesson(studentID, lessonID)
	if err != nil {
		return nil, nil, err
	}
	summary := summarize(blocks, results)
	return &summary, results, nil
}

// GetLessonResultsForAllStudents is the teacher overview: one summary per
// student who was assigned the lesson or has answered anything in it. The
// computed list is cached briefly and invalidated on every submission.
func (s *ExerciseService) GetLessonResultsForAllStudents(lessonID uint) ([]StudentLessonSummary, error) {
	if cached, ok := s.cachedLessonSummary(lessonID); ok {
		return cached, nil
	}

	blocks, err := s.Blocks.ListByLesson(lessonID)
	if err != nil {
		return nil, err
	}
	results, err := s.Results.ListByLesson(lessonID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.Assignments.ListByInteractiveLesson(lessonID)
	if err != nil {
		return nil, err
	}

	studentSet := map[uint]bool{}
	for _, a := range assignments {
		studentSet[a.StudentID] = true
	}
	resultsByStudent := map[uint][]model.ExerciseResult{}
	for _, r := range results {
		studentSet[r.StudentID] = true
		resultsByStudent[r.StudentID] = append(resultsByStudent[r.StudentID], r)
	}

	studentIDs := make([]uint, 0, len(studentSet))
	for id := range studentSet {
		studentIDs = append(studentIDs, id)
	}
	sort.Slice(studentIDs, func(i, j int) bool { return studentIDs[i] < studentIDs[j] })

	users, err := s.Users.FindByIDs(studentIDs)
	if err != nil {
		return nil, err
	}
	names := map[uint]string{}
	for _, u := range users {
		names[u.ID] = u.Name
	}

	summaries := make([]StudentLessonSummary, 0, len(studentIDs))
	for _, id := range studentIDs {
		summaries = append(summaries, StudentLessonSummary{
			StudentID:     id,
			StudentName:   names[id],
			LessonSummary: summarize(blocks, resultsByStudent[id]),
		})
	}

	s.storeLessonSummary(lessonID, summaries)
	return summaries, nil
}

// GetStudentLessonDetail merges the lesson's blocks with one student's
// answers for the teacher drill-down, in display order.
func (s *ExerciseService) GetStudentLessonDetail(studentID, lessonID uint) (*LessonSummary, []BlockDetail, error) {
	blocks, err := s.Blocks.ListByLesson(lessonID)
	if err != nil {
		return nil, nil, err
	}
	results, err := s.Results.ListByStudentAndLesson(studentID, lessonID)
	if err != nil {
		return nil, nil, err
	}

	byBlock := map[uint]model.ExerciseResult{}
	for _, r := range results {
		byBlock[r.BlockID] = r
	}

	details := make([]BlockDetail, 0, len(blocks))
	for _, b := range blocks {
		detail := BlockDetail{
			BlockID:   b.ID,
			BlockType: b.BlockType,
			Position:  b.Position,
			Content:   b.Content,
		}
		if r, ok := byBlock[b.ID]; ok {
			detail.Answer = r.Answer
			detail.IsCorrect = r.IsCorrect
		}
		details = append(details, detail)
	}

	summary := summarize(blocks, results)
	return &summary, details, nil
}

// Summarize computes one student's progress over a lesson without loading it
// twice when the caller already needs the block list elsewhere.
func (s *ExerciseService) Summarize(studentID, lessonID uint) (*LessonSummary, error) {
	summary, _, err := s.GetLessonResults(studentID, lessonID)
	return summary, err
}

func summarize(blocks []model.ExerciseBlock, results []model.ExerciseResult) LessonSummary {
	var summary LessonSummary
	for _, b := range blocks {
		if b.BlockType.Gradable() {
			summary.Total++
		}
	}
	for _, r := range results {
		summary.Answered++
		if r.IsCorrect != nil && *r.IsCorrect {
			summary.Score++
		}
	}
	return summary
}

func lessonSummaryKey(lessonID uint) string {
	return fmt.Sprintf("%s%d", lessonSummaryKeyPrefix, lessonID)
}

func (s *ExerciseService) cachedLessonSummary(lessonID uint) ([]StudentLessonSummary, bool) {
	if s.Redis == nil {
		return nil, false
	}
	val, err := s.Redis.Get(context.Background(), lessonSummaryKey(lessonID)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("lesson summary cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var summaries []StudentLessonSummary
	if err := json.Unmarshal([]byte(val), &summaries); err != nil {
		return nil, false
	}
	return summaries, true
}

func (s *ExerciseService) storeLessonSummary(lessonID uint, summaries []StudentLessonSummary) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), lessonSummaryKey(lessonID), data, lessonSummaryTTL).Err(); err != nil {
		logger.Log.Warn("lesson summary cache write failed", zap.Error(err))
	}
}

func (s *ExerciseService) invalidateLessonSummary(lessonID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), lessonSummaryKey(lessonID)).Err(); err != nil {
		logger.Log.Warn("lesson summary cache invalidation failed", zap.Error(err))
	}
}
