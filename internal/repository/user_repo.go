package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByPersonalEmail(ctx context.Context, email string) (*model.User, error)
	// GetByEitherEmail 按个人邮箱或学校邮箱查找（注册预检查、重发验证邮件）
	GetByEitherEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmails(ctx context.Context, personalEmail, uniEmail string) (bool, error)
	// ConsumeVerificationToken 条件更新消费验证 Token，返回受影响行数。
	// 并发兑换同一 Token 时只有一次更新能命中，其余返回 0 行。
	ConsumeVerificationToken(ctx context.Context, token string, at time.Time) (int64, error)
	Update(ctx context.Context, user *model.User) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByPersonalEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("personal_email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEitherEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("personal_email = ? OR uni_email = ?", email, email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ExistsByEmails(ctx context.Context, personalEmail, uniEmail string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("personal_email = ? OR uni_email = ?", personalEmail, uniEmail).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) ConsumeVerificationToken(ctx context.Context, token string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("verification_token = ?", token).
		Updates(map[string]interface{}{
			"is_verified":        true,
			"verified_at":        at,
			"verification_token": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
