package dto

// ── 课程目录模块 ──

// OfferingRequest 单门课程条目
type OfferingRequest struct {
	ClassName string `json:"class_name" binding:"required,max=100"`
	Capacity  int    `json:"capacity"   binding:"required,min=1"`
	Periods   []int  `json:"periods"    binding:"required,min=1,dive,min=1"`
}

// CatalogDayRequest 单日课程列表（声明顺序即排课顺序）
type CatalogDayRequest struct {
	Day       string            `json:"day"       binding:"required,max=50"`
	Offerings []OfferingRequest `json:"offerings" binding:"required,min=1,dive"`
}

// CreateCatalogRequest 创建课程目录请求
type CreateCatalogRequest struct {
	Name        string              `json:"name"        binding:"required,max=100"`
	Description string              `json:"description" binding:"omitempty,max=500"`
	Days        []CatalogDayRequest `json:"days"        binding:"required,min=1,dive"`
}

// UpdateCatalogRequest 更新课程目录请求（Days 提供时整体替换）
type UpdateCatalogRequest struct {
	Name        *string             `json:"name"        binding:"omitempty,max=100"`
	Description *string             `json:"description" binding:"omitempty,max=500"`
	Days        []CatalogDayRequest `json:"days"        binding:"omitempty,min=1,dive"`
}

// OfferingResponse 课程条目响应
type OfferingResponse struct {
	ClassName string `json:"class_name"`
	Capacity  int    `json:"capacity"`
	Periods   []int  `json:"periods"`
}

// CatalogDayResponse 单日课程响应
type CatalogDayResponse struct {
	Day       string             `json:"day"`
	Offerings []OfferingResponse `json:"offerings"`
}

// CatalogResponse 课程目录详情响应
type CatalogResponse struct {
	CatalogID   string               `json:"catalog_id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Days        []CatalogDayResponse `json:"days"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at"`
}

// CatalogSummaryResponse 课程目录列表项响应（不含明细）
type CatalogSummaryResponse struct {
	CatalogID   string `json:"catalog_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}
