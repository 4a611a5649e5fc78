package handler

import "github.com/USAFADFCS/final-project-wing-king-and-ty/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Params   *ParamsHandler
	Schedule *ScheduleHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Catalog:  NewCatalogHandler(svc.Catalog),
		Params:   NewParamsHandler(svc.Params),
		Schedule: NewScheduleHandler(svc.Schedule),
		Export:   NewExportHandler(svc.Export),
	}
}
