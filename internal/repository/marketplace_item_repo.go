package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"
)

// ItemListFilters 商品列表过滤条件（均为可选等值过滤）
type ItemListFilters struct {
	Category string
	ItemType string
}

// MarketplaceItemRepository 商品数据访问接口
type MarketplaceItemRepository interface {
	Create(ctx context.Context, item *model.MarketplaceItem) error
	GetByID(ctx context.Context, id int64) (*model.MarketplaceItem, error)
	// ListActive 仅返回在售商品，按创建时间倒序，附带卖家名
	ListActive(ctx context.Context, filters *ItemListFilters, offset, limit int) ([]model.ItemWithSeller, error)
}

// marketplaceItemRepo MarketplaceItemRepository 的 GORM 实现
type marketplaceItemRepo struct {
	db *gorm.DB
}

// NewMarketplaceItemRepo 创建 MarketplaceItemRepository 实例
func NewMarketplaceItemRepo(db *gorm.DB) MarketplaceItemRepository {
	return &marketplaceItemRepo{db: db}
}

func (r *marketplaceItemRepo) Create(ctx context.Context, item *model.MarketplaceItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *marketplaceItemRepo) GetByID(ctx context.Context, id int64) (*model.MarketplaceItem, error) {
	var item model.MarketplaceItem
	err := r.db.WithContext(ctx).
		Where("item_id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *marketplaceItemRepo) ListActive(ctx context.Context, filters *ItemListFilters, offset, limit int) ([]model.ItemWithSeller, error) {
	db := r.db.WithContext(ctx).
		Model(&model.MarketplaceItem{}).
		Select("marketplace_items.*, users.name AS seller_name").
		Joins("JOIN users ON users.user_id = marketplace_items.owner_id").
		Where("marketplace_items.is_active = ?", true)

	if filters != nil {
		if filters.Category != "" {
			db = db.Where("marketplace_items.category = ?", filters.Category)
		}
		if filters.ItemType != "" {
			db = db.Where("marketplace_items.item_type = ?", filters.ItemType)
		}
	}

	var items []model.ItemWithSeller
	err := db.
		Order("marketplace_items.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
