package controller

import (
	"errors"

	"lingua_school_backend/internal/service"
	"lingua_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// @Summary Blocks of an interactive lesson in display order
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Interactive lesson ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId}/blocks [get]
func (c *LessonController) ListBlocks(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	blocks, err := c.LessonService.ListBlocks(lessonID)
	if err != nil {
		c.respondBlockError(ctx, err)
		return
	}
	util.Success(ctx, blocks)
}

// @Summary Add a block to an interactive lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Interactive lesson ID"
// @Param body body service.BlockReq true "block type, content and position"
// @Success 201 {object} util.Response
// @Router /api/teacher/lessons/{lessonId}/blocks [post]
func (c *LessonController) CreateBlock(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	var req service.BlockReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	block, err := c.LessonService.CreateBlock(lessonID, req)
	if err != nil {
		c.respondBlockError(ctx, err)
		return
	}
	util.Created(ctx, block)
}

// @Summary Update a block's type, content or position
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Block ID"
// @Param body body service.BlockReq true "block type, content and position"
// @Success 200 {object} util.Response
// @Router /api/teacher/blocks/{id} [put]
func (c *LessonController) UpdateBlock(ctx *gin.Context) {
	blockID := util.MustParseUint(ctx.Param("id"))
	if blockID == 0 {
		util.BadRequest(ctx, "invalid block id")
		return
	}

	var req service.BlockReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	block, err := c.LessonService.UpdateBlock(blockID, req)
	if err != nil {
		c.respondBlockError(ctx, err)
		return
	}
	util.Success(ctx, block)
}

// @Summary Delete a block
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Block ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/blocks/{id} [delete]
func (c *LessonController) DeleteBlock(ctx *gin.Context) {
	blockID := util.MustParseUint(ctx.Param("id"))
	if blockID == 0 {
		util.BadRequest(ctx, "invalid block id")
		return
	}

	if err := c.LessonService.DeleteBlock(blockID); err != nil {
		c.respondBlockError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

type reorderBlocksReq struct {
	BlockIDs []uint `json:"blockIds" binding:"required"`
}

// @Summary Reorder the blocks of an interactive lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Interactive lesson ID"
// @Param body body reorderBlocksReq true "block ids in the new order"
// @Success 200 {object} util.Response
// @Router /api/teacher/lessons/{lessonId}/blocks/reorder [post]
func (c *LessonController) ReorderBlocks(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	var req reorderBlocksReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.LessonService.ReorderBlocks(lessonID, req.BlockIDs); err != nil {
		c.respondBlockError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"reordered": true})
}

func (c *LessonController) respondBlockError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrBlockNotFound), errors.Is(err, util.ErrInteractiveLessonNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrUnknownBlockType):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
