package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/dto"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/repository"
)

var (
	ErrInvalidCategory = errors.New("category must be one of: buy, sell, rent, free")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrItemNotFound    = errors.New("item not found")
	ErrItemNotRentable = errors.New("item is not a rental listing")
	ErrOwnItemRental   = errors.New("cannot rent your own item")
	ErrInvalidDueDate  = errors.New("due date must be in the future")
)

const (
	maxItemLimit     = 100
	defaultCondition = "Good"
)

// MarketplaceService 商品业务接口
type MarketplaceService interface {
	ListItems(ctx context.Context, query *dto.ListItemsQuery) (*dto.ListItemsResponse, error)
	CreateItem(ctx context.Context, ownerID int64, req *dto.CreateItemRequest) (*dto.CreateItemResponse, error)
	RentItem(ctx context.Context, borrowerID int64, req *dto.RentItemRequest) (*dto.RentItemResponse, error)
}

type marketplaceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMarketplaceService 创建 MarketplaceService 实例
func NewMarketplaceService(repo *repository.Repository, logger *zap.Logger) MarketplaceService {
	return &marketplaceService{repo: repo, logger: logger}
}

func (s *marketplaceService) ListItems(ctx context.Context, query *dto.ListItemsQuery) (*dto.ListItemsResponse, error) {
	// limit 静默钳制到 [0, 100]，offset 非负
	limit := query.Limit
	if limit > maxItemLimit {
		limit = maxItemLimit
	}
	if limit < 0 {
		limit = 0
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	filters := &repository.ItemListFilters{
		Category: query.Category,
		ItemType: query.ItemType,
	}

	items, err := s.repo.Item.ListActive(ctx, filters, offset, limit)
	if err != nil {
		s.logger.Error("查询商品列表失败", zap.Error(err))
		return nil, err
	}

	return &dto.ListItemsResponse{Items: items, Count: len(items)}, nil
}

func (s *marketplaceService) CreateItem(ctx context.Context, ownerID int64, req *dto.CreateItemRequest) (*dto.CreateItemResponse, error) {
	if req.Title == "" || req.Description == "" || req.Category == "" ||
		req.ItemType == "" || req.DormLocation == "" {
		return nil, ErrMissingFields
	}
	if !model.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}

	condition := req.Condition
	if condition == "" {
		condition = defaultCondition
	}

	item := &model.MarketplaceItem{
		OwnerID:      ownerID, // 取自认证身份，不信任请求体
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		ItemType:     req.ItemType,
		Price:        req.Price,
		Condition:    condition,
		DormLocation: req.DormLocation,
		IsActive:     true,
	}

	if err := s.repo.Item.Create(ctx, item); err != nil {
		s.logger.Error("创建商品失败", zap.Error(err))
		return nil, err
	}

	return &dto.CreateItemResponse{
		Message: "Item created successfully",
		ItemID:  item.ItemID,
	}, nil
}

func (s *marketplaceService) RentItem(ctx context.Context, borrowerID int64, req *dto.RentItemRequest) (*dto.RentItemResponse, error) {
	if req.ItemID <= 0 {
		return nil, ErrMissingFields
	}
	if !req.DueDate.After(time.Now()) {
		return nil, ErrInvalidDueDate
	}

	item, err := s.repo.Item.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("查询商品失败", zap.Error(err))
		return nil, err
	}

	// 下架商品对外不可见，租借也一并拒绝
	if !item.IsActive {
		return nil, ErrItemNotFound
	}
	if item.Category != model.CategoryRent {
		return nil, ErrItemNotRentable
	}
	if item.OwnerID == borrowerID {
		return nil, ErrOwnItemRental
	}

	rental := &model.Rental{
		ItemID:        item.ItemID,
		BorrowerID:    borrowerID,
		RentalDueDate: req.DueDate,
	}

	if err := s.repo.Rental.Create(ctx, rental); err != nil {
		s.logger.Error("创建租借记录失败", zap.Error(err))
		return nil, err
	}

	return &dto.RentItemResponse{
		Message:  "Rental created successfully",
		RentalID: rental.RentalID,
	}, nil
}
