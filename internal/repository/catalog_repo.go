package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/model"
)

// CatalogRepository 课程目录数据访问接口
type CatalogRepository interface {
	Create(ctx context.Context, catalog *model.Catalog) error
	GetByID(ctx context.Context, id string) (*model.Catalog, error)
	GetByName(ctx context.Context, name string) (*model.Catalog, error)
	List(ctx context.Context, page, pageSize int) ([]model.Catalog, int64, error)
	Update(ctx context.Context, catalog *model.Catalog) error
	ReplaceOfferings(ctx context.Context, catalogID string, offerings []model.ClassOffering) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type catalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepo 创建 CatalogRepository 实例
func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) Create(ctx context.Context, catalog *model.Catalog) error {
	return r.db.WithContext(ctx).Create(catalog).Error
}

func (r *catalogRepo) GetByID(ctx context.Context, id string) (*model.Catalog, error) {
	var catalog model.Catalog
	err := r.db.WithContext(ctx).
		Preload("Offerings", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_position ASC, position ASC")
		}).
		Where("catalog_id = ?", id).
		First(&catalog).Error
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (r *catalogRepo) GetByName(ctx context.Context, name string) (*model.Catalog, error) {
	var catalog model.Catalog
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&catalog).Error
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (r *catalogRepo) List(ctx context.Context, page, pageSize int) ([]model.Catalog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Catalog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var catalogs []model.Catalog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&catalogs).Error
	return catalogs, total, err
}

func (r *catalogRepo) Update(ctx context.Context, catalog *model.Catalog) error {
	return r.db.WithContext(ctx).Save(catalog).Error
}

// ReplaceOfferings 在事务内整体替换目录的课程条目
func (r *catalogRepo) ReplaceOfferings(ctx context.Context, catalogID string, offerings []model.ClassOffering) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalog_id = ?", catalogID).Delete(&model.ClassOffering{}).Error; err != nil {
			return err
		}
		if len(offerings) == 0 {
			return nil
		}
		for i := range offerings {
			offerings[i].CatalogID = catalogID
		}
		return tx.Create(&offerings).Error
	})
}

func (r *catalogRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Catalog{}).
		Where("catalog_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
