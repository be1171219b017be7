package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/dto"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"
)

func seedMessageUsers(t *testing.T, userRepo *mockUserRepo) {
	t.Helper()
	for i := 1; i <= 3; i++ {
		user := &model.User{
			Name:          "User",
			PersonalEmail: string(rune('a'+i)) + "@x.com",
			UniEmail:      string(rune('a'+i)) + "@uni.edu",
			IsVerified:    true,
		}
		if err := userRepo.Create(context.Background(), user); err != nil {
			t.Fatalf("种子用户失败: %v", err)
		}
	}
}

func TestGetConversation(t *testing.T) {
	ctx := context.Background()
	repo, userRepo, _, msgRepo, _ := newTestRepository()
	seedMessageUsers(t, userRepo)
	svc := NewMessageService(repo, zap.NewNop())

	base := time.Now().Add(-time.Hour)
	seed := []*model.DirectMessage{
		{SenderID: 2, ReceiverID: 1, MessageContent: "hi", CreatedAt: base},
		{SenderID: 1, ReceiverID: 2, MessageContent: "hello", CreatedAt: base.Add(time.Minute)},
		{SenderID: 2, ReceiverID: 1, MessageContent: "still for sale?", CreatedAt: base.Add(2 * time.Minute)},
		{SenderID: 3, ReceiverID: 1, MessageContent: "unrelated", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, msg := range seed {
		if err := msgRepo.Create(ctx, msg); err != nil {
			t.Fatalf("种子消息失败: %v", err)
		}
	}

	result, err := svc.GetConversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}

	// 只含双方消息，按时间正序
	if len(result.Messages) != 3 {
		t.Fatalf("len = %d, want 3", len(result.Messages))
	}
	if result.Messages[0].MessageContent != "hi" || result.Messages[2].MessageContent != "still for sale?" {
		t.Errorf("排序错误: %s .. %s", result.Messages[0].MessageContent, result.Messages[2].MessageContent)
	}

	// 读取会话的副作用：对方发来的消息被标记已读
	for _, msg := range msgRepo.messages {
		if msg.SenderID == 2 && msg.ReceiverID == 1 {
			if !msg.IsRead || msg.ReadAt == nil {
				t.Errorf("消息 %d 应已标记已读", msg.MessageID)
			}
		}
		if msg.SenderID == 1 && msg.ReceiverID == 2 && msg.IsRead {
			t.Errorf("自己发出的消息 %d 不应被标记", msg.MessageID)
		}
		if msg.SenderID == 3 && msg.IsRead {
			t.Errorf("会话外消息 %d 不应被标记", msg.MessageID)
		}
	}
}

func TestGetConversationEmpty(t *testing.T) {
	repo, userRepo, _, _, _ := newTestRepository()
	seedMessageUsers(t, userRepo)
	svc := NewMessageService(repo, zap.NewNop())

	result, err := svc.GetConversation(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	if result.Messages == nil {
		t.Error("空会话应返回空切片而非 nil")
	}
	if len(result.Messages) != 0 {
		t.Errorf("len = %d, want 0", len(result.Messages))
	}
}

func TestGetConversationInvalidIDs(t *testing.T) {
	repo, _, _, _, _ := newTestRepository()
	svc := NewMessageService(repo, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name        string
		userID      int64
		otherUserID int64
	}{
		{"对方 ID 为零", 1, 0},
		{"对方 ID 为负", 1, -5},
		{"与自己对话", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.GetConversation(ctx, tt.userID, tt.otherUserID); !errors.Is(err, ErrInvalidUserID) {
				t.Errorf("error = %v, want ErrInvalidUserID", err)
			}
		})
	}
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("成功发送", func(t *testing.T) {
		repo, userRepo, _, msgRepo, _ := newTestRepository()
		seedMessageUsers(t, userRepo)
		svc := NewMessageService(repo, zap.NewNop())

		result, err := svc.SendMessage(ctx, 1, &dto.SendMessageRequest{ReceiverID: 2, Message: "hey"})
		if err != nil {
			t.Fatalf("SendMessage() error = %v", err)
		}
		if result.MessageID == 0 {
			t.Error("message_id 未分配")
		}
		if len(msgRepo.messages) != 1 || msgRepo.messages[0].IsRead {
			t.Errorf("落盘消息错误: %+v", msgRepo.messages)
		}
	})

	t.Run("附带商品引用", func(t *testing.T) {
		repo, userRepo, itemRepo, msgRepo, _ := newTestRepository()
		seedMessageUsers(t, userRepo)
		svc := NewMessageService(repo, zap.NewNop())
		item := &model.MarketplaceItem{OwnerID: 2, Title: "Bike", Category: "sell", IsActive: true}
		if err := itemRepo.Create(ctx, item); err != nil {
			t.Fatalf("种子商品失败: %v", err)
		}

		if _, err := svc.SendMessage(ctx, 1, &dto.SendMessageRequest{ReceiverID: 2, Message: "about the bike", ItemID: &item.ItemID}); err != nil {
			t.Fatalf("SendMessage() error = %v", err)
		}
		if msgRepo.messages[0].ItemID == nil || *msgRepo.messages[0].ItemID != item.ItemID {
			t.Error("商品引用未落盘")
		}
	})

	t.Run("商品引用不存在", func(t *testing.T) {
		repo, userRepo, _, _, _ := newTestRepository()
		seedMessageUsers(t, userRepo)
		svc := NewMessageService(repo, zap.NewNop())
		bogus := int64(99)

		if _, err := svc.SendMessage(ctx, 1, &dto.SendMessageRequest{ReceiverID: 2, Message: "?", ItemID: &bogus}); !errors.Is(err, ErrItemNotFound) {
			t.Errorf("error = %v, want ErrItemNotFound", err)
		}
	})

	t.Run("收件人不存在", func(t *testing.T) {
		repo, userRepo, _, _, _ := newTestRepository()
		seedMessageUsers(t, userRepo)
		svc := NewMessageService(repo, zap.NewNop())

		if _, err := svc.SendMessage(ctx, 1, &dto.SendMessageRequest{ReceiverID: 99, Message: "hi"}); !errors.Is(err, ErrReceiverAbsent) {
			t.Errorf("error = %v, want ErrReceiverAbsent", err)
		}
	})

	t.Run("空消息", func(t *testing.T) {
		repo, userRepo, _, _, _ := newTestRepository()
		seedMessageUsers(t, userRepo)
		svc := NewMessageService(repo, zap.NewNop())

		if _, err := svc.SendMessage(ctx, 1, &dto.SendMessageRequest{ReceiverID: 2, Message: ""}); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("error = %v, want ErrEmptyMessage", err)
		}
	})

	t.Run("发给自己", func(t *testing.T) {
		repo, userRepo, _, _, _ := newTestRepository()
		seedMessageUsers(t, userRepo)
		svc := NewMessageService(repo, zap.NewNop())

		if _, err := svc.SendMessage(ctx, 1, &dto.SendMessageRequest{ReceiverID: 1, Message: "hi"}); !errors.Is(err, ErrSelfMessage) {
			t.Errorf("error = %v, want ErrSelfMessage", err)
		}
	})
}

func TestUnreadCount(t *testing.T) {
	ctx := context.Background()
	repo, userRepo, _, msgRepo, _ := newTestRepository()
	seedMessageUsers(t, userRepo)
	svc := NewMessageService(repo, zap.NewNop())

	seed := []*model.DirectMessage{
		{SenderID: 2, ReceiverID: 1, MessageContent: "a"},
		{SenderID: 3, ReceiverID: 1, MessageContent: "b"},
		{SenderID: 1, ReceiverID: 2, MessageContent: "c"},
	}
	for _, msg := range seed {
		if err := msgRepo.Create(ctx, msg); err != nil {
			t.Fatalf("种子消息失败: %v", err)
		}
	}

	result, err := svc.UnreadCount(ctx, 1)
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if result.Unread != 2 {
		t.Errorf("unread = %d, want 2", result.Unread)
	}

	// 读取会话后未读数下降
	if _, err := svc.GetConversation(ctx, 1, 2); err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	result, err = svc.UnreadCount(ctx, 1)
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if result.Unread != 1 {
		t.Errorf("unread = %d, want 1", result.Unread)
	}
}
