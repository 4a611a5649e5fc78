package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User           UserRepository
	Catalog        CatalogRepository
	SchedulerParam SchedulerParamsRepository
	ScheduleRun    ScheduleRunRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		Catalog:        NewCatalogRepo(db),
		SchedulerParam: NewSchedulerParamsRepo(db),
		ScheduleRun:    NewScheduleRunRepo(db),
	}
}
