package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/scheduler"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/service"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/pkg/response"
)

// ScheduleHandler 排课运行模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Generate 执行一次排课运行
// POST /api/v1/schedule-runs
func (h *ScheduleHandler) Generate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	run, err := h.scheduleSvc.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	response.Created(c, run)
}

// GetRun 查询一次排课运行
// GET /api/v1/schedule-runs/:id
func (h *ScheduleHandler) GetRun(c *gin.Context) {
	run, err := h.scheduleSvc.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}
	response.OK(c, run)
}

// ListRuns 分页查询排课运行记录
// GET /api/v1/schedule-runs?catalog_id=...
func (h *ScheduleHandler) ListRuns(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	runs, total, err := h.scheduleSvc.ListRuns(c.Request.Context(),
		c.Query("catalog_id"), page.GetPage(), page.GetPageSize())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, runs, total, page.GetPage(), page.GetPageSize())
}

// DeleteRun 删除一次排课运行记录
// DELETE /api/v1/schedule-runs/:id
func (h *ScheduleHandler) DeleteRun(c *gin.Context) {
	if err := h.scheduleSvc.DeleteRun(c.Request.Context(), c.Param("id")); err != nil {
		h.writeScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Validate 对外部提交的排课表执行四项校验（不落库）
// POST /api/v1/schedule-runs/validate
func (h *ScheduleHandler) Validate(c *gin.Context) {
	var req dto.ValidateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.scheduleSvc.ValidateExternal(c.Request.Context(), &req)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	response.OK(c, report)
}

// writeScheduleError 排课运行模块统一错误映射
func (h *ScheduleHandler) writeScheduleError(c *gin.Context, err error) {
	var infeasible *scheduler.InfeasibleConfigError
	switch {
	case errors.Is(err, service.ErrCatalogNotFound):
		response.NotFound(c, 12001, "课程目录不存在")
	case errors.Is(err, service.ErrRunNotFound):
		response.NotFound(c, 14001, "排课运行记录不存在")
	case errors.Is(err, service.ErrCatalogDayGap):
		response.UnprocessableEntity(c, 14002, "课程目录天数与排课参数不一致")
	case errors.Is(err, service.ErrPeriodOutRange):
		response.UnprocessableEntity(c, 14003, "课程节次超出每日节次上限")
	case errors.Is(err, scheduler.ErrDayCountMismatch):
		response.UnprocessableEntity(c, 14002, "课程目录天数与排课参数不一致")
	case errors.As(err, &infeasible):
		response.UnprocessableEntity(c, 13001, infeasible.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
