package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/service"
	"github.com/Pooyash1998/studyplanner/pkg/response"
)

// SemesterHandler 学期看板 HTTP 处理器
type SemesterHandler struct {
	semesterSvc service.SemesterService
}

// NewSemesterHandler 创建 SemesterHandler
func NewSemesterHandler(semesterSvc service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterSvc: semesterSvc}
}

// GetBoard 获取看板整体状态
// GET /api/v1/board
func (h *SemesterHandler) GetBoard(c *gin.Context) {
	board, err := h.semesterSvc.Board(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, board)
}

// ListSemesters 获取学期列表
// GET /api/v1/semesters
func (h *SemesterHandler) ListSemesters(c *gin.Context) {
	semesters, err := h.semesterSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": semesters})
}

// ResetSemesters 清空所有学期
// POST /api/v1/semesters/reset
func (h *SemesterHandler) ResetSemesters(c *gin.Context) {
	if err := h.semesterSvc.Reset(c.Request.Context()); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// MoveModule 拖放模块
// POST /api/v1/moves
func (h *SemesterHandler) MoveModule(c *gin.Context) {
	var req dto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.semesterSvc.Move(c.Request.Context(), &req)
	if err != nil {
		h.handleMoveError(c, err)
		return
	}

	response.OK(c, result)
}

// handleMoveError 统一处理拖放错误
// 规则拒绝返回 409，details 携带具体原因
func (h *SemesterHandler) handleMoveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrModuleNotFound):
		response.NotFound(c, 22001, "模块不存在")
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 22002, "学期不存在")
	case errors.Is(err, service.ErrInvalidLocation):
		response.BadRequest(c, 22003, "位置参数无效")
	case errors.Is(err, service.ErrStaleLocation):
		response.Conflict(c, 22004, "模块位置已变化，请刷新后重试", err.Error())
	case errors.Is(err, service.ErrFrozenModule):
		response.Conflict(c, 22005, "模块已冻结，无法移出当前学期", err.Error())
	case errors.Is(err, service.ErrSemesterTypeMismatch):
		response.Conflict(c, 22006, "模块不在该类型学期开设", err.Error())
	case errors.Is(err, service.ErrHardnessLimitExceeded):
		response.Conflict(c, 22007, "超出学期难度上限", err.Error())
	default:
		response.InternalError(c)
	}
}
