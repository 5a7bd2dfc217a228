package controller

import (
	"errors"

	"lingua_school_backend/internal/service"
	"lingua_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HomeworkController struct {
	HomeworkService *service.HomeworkService
}

func NewHomeworkController(homeworkService *service.HomeworkService) *HomeworkController {
	return &HomeworkController{HomeworkService: homeworkService}
}

type assignHomeworkReq struct {
	LessonID            uint   `json:"lessonId" binding:"required"`
	InteractiveLessonID uint   `json:"interactiveLessonId" binding:"required"`
	StudentIDs          []uint `json:"studentIds"`
}

// @Summary Assign an interactive lesson as homework
// @Description Defaults to the whole roster of the scheduled lesson when no
// @Description student ids are given. Existing assignments are not duplicated.
// @Tags homework
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body assignHomeworkReq true "lesson, interactive lesson and optional student ids"
// @Success 201 {object} util.Response
// @Router /api/teacher/homework/assign [post]
func (c *HomeworkController) Assign(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req assignHomeworkReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignments, err := c.HomeworkService.Assign(user.UserID, req.LessonID, req.InteractiveLessonID, req.StudentIDs)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound), errors.Is(err, util.ErrInteractiveLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNoStudents), errors.Is(err, util.ErrStudentNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, assignments)
}

// @Summary Hand in the student's own homework
// @Tags homework
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} util.Response
// @Router /api/homework/{assignmentId}/submit [post]
func (c *HomeworkController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))
	if assignmentID == 0 {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	assignment, err := c.HomeworkService.Submit(user.UserID, assignmentID)
	if err != nil {
		c.respondTransitionError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// @Summary Accept a submitted homework
// @Tags homework
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/homework/{assignmentId}/accept [post]
func (c *HomeworkController) Accept(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))
	if assignmentID == 0 {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	assignment, err := c.HomeworkService.Accept(assignmentID)
	if err != nil {
		c.respondTransitionError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// @Summary The student's homework list with progress
// @Tags homework
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/homework [get]
func (c *HomeworkController) ListMine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	assignments, err := c.HomeworkService.ListForStudent(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// @Summary Homework assignments of a scheduled lesson with progress
// @Tags homework
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Scheduled lesson ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/homework/lessons/{lessonId} [get]
func (c *HomeworkController) ListForLesson(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	assignments, err := c.HomeworkService.ListForLesson(lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

func (c *HomeworkController) respondTransitionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAssignmentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidTransition):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
