package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/scheduler"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/service"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/pkg/response"
)

// ParamsHandler 排课参数模块 HTTP 处理器
type ParamsHandler struct {
	paramsSvc service.ParamsService
}

// NewParamsHandler 创建 ParamsHandler
func NewParamsHandler(paramsSvc service.ParamsService) *ParamsHandler {
	return &ParamsHandler{paramsSvc: paramsSvc}
}

// Get 查询当前排课参数
// GET /api/v1/scheduler-params
func (h *ParamsHandler) Get(c *gin.Context) {
	params, err := h.paramsSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, params)
}

// Update 更新排课参数（仅管理员；不可行组合整体回绝）
// PUT /api/v1/scheduler-params
func (h *ParamsHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSchedulerParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	params, err := h.paramsSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		var infeasible *scheduler.InfeasibleConfigError
		if errors.As(err, &infeasible) {
			response.UnprocessableEntity(c, 13001, infeasible.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, params)
}
