package services

import (
	"context"
	"errors"
	"testing"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven/mocks"
)

func TestChatService_Lifecycle(t *testing.T) {
	chats := mocks.NewMockChatStore()
	projects := mocks.NewMockProjectStore()
	svc := NewChatService(chats, projects, nil)
	ctx := context.Background()

	_ = projects.Save(ctx, &domain.Project{ID: "proj-1", UserID: "user-1", Name: "Interviews"})

	chat, err := svc.Create(ctx, "proj-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chat.Title == "" {
		t.Error("empty title should get a default")
	}

	if err := svc.Rename(ctx, chat.ID, "Budget questions"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.Get(ctx, chat.ID)
	if got.Title != "Budget questions" {
		t.Errorf("title = %q", got.Title)
	}

	if err := svc.Rename(ctx, chat.ID, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty title rename: got %v", err)
	}

	if err := svc.Delete(ctx, chat.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(ctx, chat.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("chat should be gone, got %v", err)
	}
}

func TestChatService_Create_UnknownProject(t *testing.T) {
	svc := NewChatService(mocks.NewMockChatStore(), mocks.NewMockProjectStore(), nil)
	if _, err := svc.Create(context.Background(), "missing", "Chat"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChatService_Messages(t *testing.T) {
	chats := mocks.NewMockChatStore()
	projects := mocks.NewMockProjectStore()
	svc := NewChatService(chats, projects, nil)
	ctx := context.Background()

	_ = projects.Save(ctx, &domain.Project{ID: "proj-1", UserID: "user-1", Name: "Interviews"})
	chat, _ := svc.Create(ctx, "proj-1", "Chat")
	_ = chats.AppendMessage(ctx, &domain.Message{ID: "m1", ChatID: chat.ID, Role: domain.RoleUser, Content: "q"})
	_ = chats.AppendMessage(ctx, &domain.Message{ID: "m2", ChatID: chat.ID, Role: domain.RoleAssistant, Content: "a"})

	msgs, err := svc.Messages(ctx, chat.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != "m1" || msgs[1].ID != "m2" {
		t.Errorf("messages out of order: %v", msgs)
	}

	if _, err := svc.Messages(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
