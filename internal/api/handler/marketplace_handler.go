package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/dto"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/service"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/response"
)

// 列表未指定 limit 时的默认条数
const defaultItemLimit = 50

// MarketplaceHandler 商品模块 HTTP 处理器
type MarketplaceHandler struct {
	marketSvc service.MarketplaceService
}

// NewMarketplaceHandler 创建 MarketplaceHandler
func NewMarketplaceHandler(marketSvc service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketSvc: marketSvc}
}

// Items 在售商品列表
// GET /api?endpoint=marketplace&action=items
func (h *MarketplaceHandler) Items(c *gin.Context) {
	query := &dto.ListItemsQuery{
		Category: c.Query("category"),
		ItemType: c.Query("type"),
		Limit:    intQuery(c, "limit", defaultItemLimit),
		Offset:   intQuery(c, "offset", 0),
	}

	result, err := h.marketSvc.ListItems(c.Request.Context(), query)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Create 发布商品（owner 取自认证身份）
// POST /api?endpoint=marketplace&action=create
func (h *MarketplaceHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	result, err := h.marketSvc.CreateItem(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrInvalidCategory),
			errors.Is(err, service.ErrInvalidPrice):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Rent 租借商品
// POST /api?endpoint=marketplace&action=rent
func (h *MarketplaceHandler) Rent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RentItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	result, err := h.marketSvc.RentItem(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrInvalidDueDate),
			errors.Is(err, service.ErrItemNotRentable),
			errors.Is(err, service.ErrOwnItemRental):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrItemNotFound):
			response.NotFound(c, "Item not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// intQuery 解析整数查询参数，缺失或非法时返回默认值
func intQuery(c *gin.Context, name string, def int) int {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
