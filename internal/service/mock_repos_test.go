package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	// 模拟数据库唯一约束
	for _, u := range m.users {
		if u.PersonalEmail == user.PersonalEmail || u.UniEmail == user.UniEmail {
			return gorm.ErrDuplicatedKey
		}
	}
	user.UserID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByPersonalEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.PersonalEmail == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEitherEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.PersonalEmail == email || u.UniEmail == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByEmails(_ context.Context, personalEmail, uniEmail string) (bool, error) {
	for _, u := range m.users {
		if u.PersonalEmail == personalEmail || u.UniEmail == uniEmail {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) ConsumeVerificationToken(_ context.Context, token string, at time.Time) (int64, error) {
	// 与条件 UPDATE 同语义：命中才更新，Token 消费后即被清空
	for _, u := range m.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			t := at
			u.IsVerified = true
			u.VerifiedAt = &t
			u.VerificationToken = nil
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

// ── Mock MarketplaceItemRepository ──

type mockItemRepo struct {
	items  map[int64]*model.MarketplaceItem
	nextID int64
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[int64]*model.MarketplaceItem), nextID: 1}
}

func (m *mockItemRepo) Create(_ context.Context, item *model.MarketplaceItem) error {
	item.ItemID = m.nextID
	m.nextID++
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	m.items[item.ItemID] = item
	return nil
}

func (m *mockItemRepo) GetByID(_ context.Context, id int64) (*model.MarketplaceItem, error) {
	if item, ok := m.items[id]; ok {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockItemRepo) ListActive(_ context.Context, filters *repository.ItemListFilters, offset, limit int) ([]model.ItemWithSeller, error) {
	var all []model.ItemWithSeller
	for _, item := range m.items {
		if !item.IsActive {
			continue
		}
		if filters != nil {
			if filters.Category != "" && item.Category != filters.Category {
				continue
			}
			if filters.ItemType != "" && item.ItemType != filters.ItemType {
				continue
			}
		}
		all = append(all, model.ItemWithSeller{MarketplaceItem: *item, SellerName: "seller"})
	}
	// 创建时间倒序
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset > len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// ── Mock DirectMessageRepository ──

type mockMessageRepo struct {
	messages []*model.DirectMessage
	nextID   int64
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{nextID: 1}
}

func (m *mockMessageRepo) Create(_ context.Context, msg *model.DirectMessage) error {
	msg.MessageID = m.nextID
	m.nextID++
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockMessageRepo) ListConversation(_ context.Context, userID, otherUserID int64, limit int) ([]model.DirectMessage, error) {
	var result []model.DirectMessage
	for _, msg := range m.messages {
		if (msg.SenderID == userID && msg.ReceiverID == otherUserID) ||
			(msg.SenderID == otherUserID && msg.ReceiverID == userID) {
			result = append(result, *msg)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockMessageRepo) MarkRead(_ context.Context, receiverID, senderID int64, readAt time.Time) error {
	for _, msg := range m.messages {
		if msg.ReceiverID == receiverID && msg.SenderID == senderID && !msg.IsRead {
			msg.IsRead = true
			t := readAt
			msg.ReadAt = &t
		}
	}
	return nil
}

func (m *mockMessageRepo) CountUnread(_ context.Context, receiverID int64) (int64, error) {
	var count int64
	for _, msg := range m.messages {
		if msg.ReceiverID == receiverID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

// ── Mock RentalRepository ──

type mockRentalRepo struct {
	rentals map[int64]*model.Rental
	nextID  int64

	// 视图 JOIN 需要的辅助数据，由测试按需填充
	emailByUser map[int64]string
	titleByItem map[int64]string
}

func newMockRentalRepo() *mockRentalRepo {
	return &mockRentalRepo{
		rentals:     make(map[int64]*model.Rental),
		nextID:      1,
		emailByUser: make(map[int64]string),
		titleByItem: make(map[int64]string),
	}
}

func (m *mockRentalRepo) Create(_ context.Context, rental *model.Rental) error {
	rental.RentalID = m.nextID
	m.nextID++
	m.rentals[rental.RentalID] = rental
	return nil
}

func (m *mockRentalRepo) ListUpcomingReminders(_ context.Context) ([]model.UpcomingReminder, error) {
	// 与 upcoming_reminders_view 同语义：未确认发送且 24 小时内到期
	cutoff := time.Now().Add(24 * time.Hour)
	var result []model.UpcomingReminder
	for _, r := range m.rentals {
		if r.ReminderSent || r.RentalDueDate.After(cutoff) {
			continue
		}
		result = append(result, model.UpcomingReminder{
			RentalID:            r.RentalID,
			RentalDueDate:       r.RentalDueDate,
			ReminderAttemptedAt: r.ReminderAttemptedAt,
			BorrowerID:          r.BorrowerID,
			UniEmail:            m.emailByUser[r.BorrowerID],
			ItemID:              r.ItemID,
			Title:               m.titleByItem[r.ItemID],
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RentalDueDate.Before(result[j].RentalDueDate)
	})
	return result, nil
}

func (m *mockRentalRepo) MarkAttempted(_ context.Context, rentalID int64, at time.Time) error {
	r, ok := m.rentals[rentalID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t := at
	r.ReminderAttemptedAt = &t
	return nil
}

func (m *mockRentalRepo) MarkSent(_ context.Context, rentalID int64) error {
	r, ok := m.rentals[rentalID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.ReminderSent = true
	return nil
}

// newTestRepository 组装全套 mock Repository
func newTestRepository() (*repository.Repository, *mockUserRepo, *mockItemRepo, *mockMessageRepo, *mockRentalRepo) {
	userRepo := newMockUserRepo()
	itemRepo := newMockItemRepo()
	msgRepo := newMockMessageRepo()
	rentalRepo := newMockRentalRepo()
	repo := &repository.Repository{
		User:    userRepo,
		Item:    itemRepo,
		Message: msgRepo,
		Rental:  rentalRepo,
	}
	return repo, userRepo, itemRepo, msgRepo, rentalRepo
}
