package model

import "time"

// ── 商品分类（封闭枚举）──

const (
	CategoryBuy  = "buy"
	CategorySell = "sell"
	CategoryRent = "rent"
	CategoryFree = "free"
)

// ValidCategory 检查分类是否属于封闭集合 {buy, sell, rent, free}
func ValidCategory(category string) bool {
	switch category {
	case CategoryBuy, CategorySell, CategoryRent, CategoryFree:
		return true
	}
	return false
}

// MarketplaceItem 商品表 — 对应 marketplace_items
type MarketplaceItem struct {
	ItemID       int64     `gorm:"primaryKey;autoIncrement"                  json:"item_id"`
	OwnerID      int64     `gorm:"not null;index"                            json:"owner_id"`
	Title        string    `gorm:"type:varchar(200);not null"                json:"title"`
	Description  string    `gorm:"type:text;not null"                        json:"description"`
	Category     string    `gorm:"type:varchar(20);not null"                 json:"category"`
	ItemType     string    `gorm:"type:varchar(50);not null"                 json:"item_type"`
	Price        float64   `gorm:"type:numeric(10,2);not null;default:0"     json:"price"`
	Condition    string    `gorm:"type:varchar(50);not null;default:'Good'"  json:"condition"`
	DormLocation string    `gorm:"type:varchar(100);not null"                json:"dorm_location"`
	IsActive     bool      `gorm:"not null;default:true"                     json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"        json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"        json:"updated_at"`

	// 关联
	Owner *User `gorm:"foreignKey:OwnerID;references:UserID" json:"owner,omitempty"`
}

// TableName 指定表名
func (MarketplaceItem) TableName() string { return "marketplace_items" }

// ItemWithSeller 列表查询结果：商品 + 卖家名（JOIN users）
type ItemWithSeller struct {
	MarketplaceItem
	SellerName string `json:"seller_name"`
}
