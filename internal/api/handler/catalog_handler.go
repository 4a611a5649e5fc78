package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/service"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/pkg/response"
)

// CatalogHandler 课程目录模块 HTTP 处理器
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// Create 创建课程目录
// POST /api/v1/catalogs
func (h *CatalogHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	catalog, err := h.catalogSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}

	response.Created(c, catalog)
}

// Get 查询课程目录详情
// GET /api/v1/catalogs/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	catalog, err := h.catalogSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}
	response.OK(c, catalog)
}

// List 分页查询课程目录
// GET /api/v1/catalogs
func (h *CatalogHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, total, err := h.catalogSvc.List(c.Request.Context(), page.GetPage(), page.GetPageSize())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, items, total, page.GetPage(), page.GetPageSize())
}

// Update 更新课程目录
// PUT /api/v1/catalogs/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	catalog, err := h.catalogSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}

	response.OK(c, catalog)
}

// Delete 删除课程目录（软删除）
// DELETE /api/v1/catalogs/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.catalogSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeCatalogError(c, err)
		return
	}

	response.OK(c, nil)
}

// writeCatalogError 课程目录模块统一错误映射
func (h *CatalogHandler) writeCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogNotFound):
		response.NotFound(c, 12001, "课程目录不存在")
	case errors.Is(err, service.ErrCatalogNameTaken):
		response.Conflict(c, 12002, "同名课程目录已存在")
	case errors.Is(err, service.ErrDuplicateClass):
		response.BadRequest(c, 12003, err.Error())
	case errors.Is(err, service.ErrInvalidPeriods):
		response.BadRequest(c, 12004, err.Error())
	default:
		response.InternalError(c)
	}
}
