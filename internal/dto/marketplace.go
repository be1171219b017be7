package dto

import (
	"time"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"
)

// ── 商品模块 DTO ──

// ListItemsQuery 商品列表查询参数
type ListItemsQuery struct {
	Category string
	ItemType string
	Limit    int
	Offset   int
}

// ListItemsResponse 商品列表响应
type ListItemsResponse struct {
	Items []model.ItemWithSeller `json:"items"`
	Count int                    `json:"count"`
}

// CreateItemRequest 发布商品请求
// owner 取自认证身份，不接受客户端指定
type CreateItemRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	ItemType     string  `json:"item_type"`
	Price        float64 `json:"price"`
	Condition    string  `json:"condition"`
	DormLocation string  `json:"dorm_location"`
}

// CreateItemResponse 发布商品响应
type CreateItemResponse struct {
	Message string `json:"message"`
	ItemID  int64  `json:"item_id"`
}

// RentItemRequest 租借商品请求
type RentItemRequest struct {
	ItemID  int64     `json:"item_id"`
	DueDate time.Time `json:"due_date"`
}

// RentItemResponse 租借商品响应
type RentItemResponse struct {
	Message  string `json:"message"`
	RentalID int64  `json:"rental_id"`
}
