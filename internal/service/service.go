package service

import (
	"go.uber.org/zap"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/config"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/repository"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/pkg/jwt"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	Catalog  CatalogService
	Params   ParamsService
	Schedule ScheduleService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Catalog:  NewCatalogService(repo, logger),
		Params:   NewParamsService(repo, logger),
		Schedule: NewScheduleService(repo, rdb, logger),
		Export:   NewExportService(repo, logger),
	}
}
