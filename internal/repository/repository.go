package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User    UserRepository
	Item    MarketplaceItemRepository
	Message DirectMessageRepository
	Rental  RentalRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:    NewUserRepo(db),
		Item:    NewMarketplaceItemRepo(db),
		Message: NewDirectMessageRepo(db),
		Rental:  NewRentalRepo(db),
	}
}
