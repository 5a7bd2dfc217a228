package controller

import (
	"encoding/json"
	"errors"

	"lingua_school_backend/internal/service"
	"lingua_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

type submitAnswerReq struct {
	LessonID uint            `json:"lessonId" binding:"required"`
	Answer   json.RawMessage `json:"answer"`
}

// @Summary Submit an answer for one exercise block
// @Tags exercises
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param blockId path int true "Block ID"
// @Param body body submitAnswerReq true "lesson id and submitted answer"
// @Success 200 {object} util.Response
// @Router /api/exercises/blocks/{blockId}/submit [post]
func (c *ExerciseController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	blockID := util.MustParseUint(ctx.Param("blockId"))
	if blockID == 0 {
		util.BadRequest(ctx, "invalid block id")
		return
	}

	var req submitAnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExerciseService.SubmitAnswer(user.UserID, blockID, req.LessonID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrBlockNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrLessonMismatch):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"isCorrect": result.IsCorrect,
		"updatedAt": result.UpdatedAt,
	})
}

// @Summary Student's own results for a lesson
// @Tags exercises
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Interactive lesson ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId}/results [get]
func (c *ExerciseController) GetLessonResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	summary, results, err := c.ExerciseService.GetLessonResults(user.UserID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"score":    summary.Score,
		"total":    summary.Total,
		"answered": summary.Answered,
		"results":  results,
	})
}

// @Summary Per-student results for a lesson
// @Tags exercises
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Interactive lesson ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/lessons/{lessonId}/results [get]
func (c *ExerciseController) GetLessonResultsForAllStudents(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	summaries, err := c.ExerciseService.GetLessonResultsForAllStudents(lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

// @Summary One student's answers for a lesson, block by block
// @Tags exercises
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Interactive lesson ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/lessons/{lessonId}/students/{studentId} [get]
func (c *ExerciseController) GetStudentLessonDetail(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	studentID := util.MustParseUint(ctx.Param("studentId"))
	if lessonID == 0 || studentID == 0 {
		util.BadRequest(ctx, "invalid lesson or student id")
		return
	}

	summary, blocks, err := c.ExerciseService.GetStudentLessonDetail(studentID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"score":  summary.Score,
		"total":  summary.Total,
		"blocks": blocks,
	})
}
