package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/service"
	"github.com/Pooyash1998/studyplanner/pkg/response"
)

// ModuleHandler 模块登记 HTTP 处理器
type ModuleHandler struct {
	moduleSvc service.ModuleService
}

// NewModuleHandler 创建 ModuleHandler
func NewModuleHandler(moduleSvc service.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleSvc: moduleSvc}
}

// ListModules 获取全部模块
// GET /api/v1/modules
func (h *ModuleHandler) ListModules(c *gin.Context) {
	modules, err := h.moduleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": modules})
}

// CreateModule 新建模块（进入未分配区）
// POST /api/v1/modules
func (h *ModuleHandler) CreateModule(c *gin.Context) {
	var req dto.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	module, err := h.moduleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleModuleError(c, err)
		return
	}

	response.Created(c, module)
}

// UpdateModule 更新模块
// PUT /api/v1/modules/:id
func (h *ModuleHandler) UpdateModule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "模块ID不能为空")
		return
	}

	var req dto.UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	module, err := h.moduleSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleModuleError(c, err)
		return
	}

	response.OK(c, module)
}

// DeleteModule 删除模块（同时从所在学期移除）
// DELETE /api/v1/modules/:id
func (h *ModuleHandler) DeleteModule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "模块ID不能为空")
		return
	}

	if err := h.moduleSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleModuleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ToggleFrozen 切换冻结状态
// PUT /api/v1/modules/:id/freeze
func (h *ModuleHandler) ToggleFrozen(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "模块ID不能为空")
		return
	}

	module, err := h.moduleSvc.ToggleFrozen(c.Request.Context(), id)
	if err != nil {
		h.handleModuleError(c, err)
		return
	}

	response.OK(c, module)
}

// handleModuleError 统一处理模块业务错误
func (h *ModuleHandler) handleModuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrModuleNotFound):
		response.NotFound(c, 21001, "模块不存在")
	case errors.Is(err, service.ErrInvalidModule):
		response.ErrorWithDetails(c, http.StatusBadRequest, 21002, "模块数据无效", err.Error())
	case errors.Is(err, service.ErrSemesterTypeMismatch):
		response.Conflict(c, 21003, "修改后的开课学期与模块所在学期不符", err.Error())
	default:
		response.InternalError(c)
	}
}
