package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/service"
	"github.com/Pooyash1998/studyplanner/pkg/response"
)

// PlanHandler 学习方案 HTTP 处理器
type PlanHandler struct {
	planSvc     service.PlanService
	generateSvc service.GenerateService
}

// NewPlanHandler 创建 PlanHandler
func NewPlanHandler(planSvc service.PlanService, generateSvc service.GenerateService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc, generateSvc: generateSvc}
}

// ListPlans 获取当前方案与备选方案
// GET /api/v1/plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, plans)
}

// SavePlan 保存当前排布为方案
// POST /api/v1/plans
func (h *PlanHandler) SavePlan(c *gin.Context) {
	var req dto.SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	plan, err := h.planSvc.Save(c.Request.Context(), &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.Created(c, plan)
}

// ApplyPlan 应用方案
// POST /api/v1/plans/:id/apply
func (h *PlanHandler) ApplyPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "方案ID不能为空")
		return
	}

	board, err := h.planSvc.Apply(c.Request.Context(), id)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, board)
}

// CheckPlan 检查方案在当前设置下的规则违反项
// GET /api/v1/plans/:id/check
func (h *PlanHandler) CheckPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "方案ID不能为空")
		return
	}

	result, err := h.planSvc.Check(c.Request.Context(), id)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, result)
}

// GeneratePlans 调用外部生成器生成方案
// POST /api/v1/plans/generate
func (h *PlanHandler) GeneratePlans(c *gin.Context) {
	result, err := h.generateSvc.Generate(c.Request.Context())
	if err != nil {
		h.handleGenerateError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *PlanHandler) handlePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		response.NotFound(c, 23001, "方案不存在")
	default:
		response.InternalError(c)
	}
}

// handleGenerateError 统一处理方案生成错误
// 外部服务失败返回 502，details 携带上游信息
func (h *PlanHandler) handleGenerateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingAPIKey):
		response.BadRequest(c, 24001, "请先在设置中填写 API Key")
	case errors.Is(err, service.ErrGenerationInFlight):
		response.Conflict(c, 24002, "方案正在生成中，请稍候", "")
	case errors.Is(err, service.ErrGenerationUpstream):
		response.BadGateway(c, 24003, "方案生成服务调用失败", err.Error())
	case errors.Is(err, service.ErrGenerationResponse):
		response.BadGateway(c, 24004, "无法解析生成结果", err.Error())
	default:
		response.InternalError(c)
	}
}
