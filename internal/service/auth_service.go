package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	mathrand "math/rand/v2"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/config"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/dto"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/repository"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/jwt"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/mailer"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/redis"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrNotUniEmail   = errors.New("university email must contain .edu domain")
	ErrPasswordShort = errors.New("password must be at least 6 characters")
	ErrEmailTaken    = errors.New("user with this email already exists")
	// ErrInvalidCredentials 对"邮箱不存在"与"密码错误"返回同一错误，避免账号探测
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrInvalidVerifyToken = errors.New("invalid verification token")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrUserNotFound       = errors.New("user not found")
)

// avatarColors 头像配色（固定调色板，注册时随机取一）
var avatarColors = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8"}

const minPasswordLen = 6

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Verify(ctx context.Context, token string) error
	Resend(ctx context.Context, email string) (*dto.ResendResponse, error)
	// Logout 将会话 Token 的 jti 加入黑名单直至其自然过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	mail   *mailer.Mailer
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	mail *mailer.Mailer,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		mail:   mail,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 1. 输入校验（必须在任何存储访问之前短路）
	if req.Name == "" || req.PersonalEmail == "" || req.UniEmail == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(req.UniEmail); err != nil {
		return nil, ErrInvalidEmail
	}
	if !isUniEmail(req.UniEmail) {
		return nil, ErrNotUniEmail
	}
	if len(req.Password) < minPasswordLen {
		return nil, ErrPasswordShort
	}

	// 2. 邮箱占用预检查（仅为提前反馈；唯一约束才是竞争裁决者）
	taken, err := s.repo.User.ExistsByEmails(ctx, req.PersonalEmail, req.UniEmail)
	if err != nil {
		s.logger.Error("查询邮箱占用失败", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	// 3. 密码单向哈希，绝不落盘明文
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	token, err := newVerificationToken()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:              req.Name,
		PersonalEmail:     req.PersonalEmail,
		UniEmail:          req.UniEmail,
		PasswordHash:      string(hash),
		VerificationToken: &token,
		Role:              "student",
		AvatarColor:       avatarColors[mathrand.IntN(len(avatarColors))],
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// 并发注册同一邮箱：预检查通过但插入撞唯一约束
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	// 4. 发送验证邮件；发送失败不回滚注册，Token 随响应兜底返回
	verifyURL := fmt.Sprintf("%s/verify?token=%s", s.cfg.Server.BaseURL, token)
	if err := s.mail.SendVerification(user.UniEmail, user.Name, verifyURL); err != nil {
		s.logger.Warn("发送验证邮件失败",
			zap.Int64("user_id", user.UserID),
			zap.Error(err),
		)
	}

	return &dto.RegisterResponse{
		Message:           "User registered successfully",
		UserID:            user.UserID,
		VerificationToken: token,
		UniEmail:          user.UniEmail,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.repo.User.GetByPersonalEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 未验证邮箱的用户禁止登录
	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	token, err := s.jwtMgr.GenerateToken(user.UserID, user.PersonalEmail)
	if err != nil {
		s.logger.Error("签发会话 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    toUserResponse(user),
	}, nil
}

func (s *authService) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidVerifyToken
	}

	// 条件更新一步完成消费：Token 随更新被清空，
	// 并发或重复兑换同一 Token 只有第一次能命中行
	rows, err := s.repo.User.ConsumeVerificationToken(ctx, token, time.Now())
	if err != nil {
		s.logger.Error("消费验证 Token 失败", zap.Error(err))
		return err
	}
	if rows == 0 {
		return ErrInvalidVerifyToken
	}

	return nil
}

func (s *authService) Resend(ctx context.Context, email string) (*dto.ResendResponse, error) {
	if email == "" {
		return nil, ErrMissingFields
	}

	user, err := s.repo.User.GetByEitherEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if user.IsVerified {
		return nil, ErrAlreadyVerified
	}

	// 重新签发会覆盖旧 Token，旧 Token 随即失效
	token, err := newVerificationToken()
	if err != nil {
		return nil, err
	}
	user.VerificationToken = &token
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新验证 Token 失败", zap.Int64("user_id", user.UserID), zap.Error(err))
		return nil, err
	}

	verifyURL := fmt.Sprintf("%s/verify?token=%s", s.cfg.Server.BaseURL, token)
	if err := s.mail.SendVerification(user.UniEmail, user.Name, verifyURL); err != nil {
		s.logger.Warn("发送验证邮件失败",
			zap.Int64("user_id", user.UserID),
			zap.Error(err),
		)
	}

	return &dto.ResendResponse{
		Message:           "Verification email sent",
		VerificationToken: token,
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	// Redis 不可用时黑名单功能降级，登出仍然返回成功
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if err := s.rdb.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

// isUniEmail 判断邮箱域名是否带有学术域标记（.edu 约定）
func isUniEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(strings.ToLower(email[at+1:]), ".edu")
}

// newVerificationToken 生成 32 位十六进制的一次性验证 Token
func newVerificationToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:      user.UserID,
		Name:        user.Name,
		Email:       user.PersonalEmail,
		UniEmail:    user.UniEmail,
		Role:        user.Role,
		AvatarColor: user.AvatarColor,
	}
}
