package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven/mocks"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driving"
)

type askFixture struct {
	*composerFixture
	projects *mocks.MockProjectStore
	chats    *mocks.MockChatStore
	settings *mocks.MockSettingsStore
	selector *Selector
	svc      driving.AskService
}

func newAskFixture(t *testing.T) *askFixture {
	t.Helper()
	cf := newComposerFixture()
	f := &askFixture{
		composerFixture: cf,
		projects:        mocks.NewMockProjectStore(),
		chats:           mocks.NewMockChatStore(),
		settings:        mocks.NewMockSettingsStore(),
	}
	f.selector = NewSelector(f.llm, nil)
	f.svc = NewAskService(f.projects, f.chats, f.settings, f.selector, f.composer, nil)

	ctx := context.Background()
	_ = f.projects.Save(ctx, &domain.Project{ID: "proj-1", UserID: "user-1", Name: "Interviews"})
	_ = f.chats.SaveChat(ctx, &domain.Chat{ID: "chat-1", ProjectID: "proj-1", Title: "Chat"})
	return f
}

func TestAskService_Ask_Lookup(t *testing.T) {
	f := newAskFixture(t)
	f.seedDocument(t, "proj-1", "doc-a", "Alice", domain.IndexStatusCompleted,
		[]string{"budgets were discussed at length"}, []float64{0.9})

	f.llm.Respond("predefined categories", "lookup")
	f.llm.Respond("budgets were discussed", "They were tight, passage doc-a-p0.")

	resp, err := f.svc.Ask(context.Background(), askRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Strategy != domain.StrategyLookup {
		t.Errorf("strategy = %s, want lookup", resp.Strategy)
	}
	if len(resp.Citations) != 1 || resp.Citations[0] != "doc-a-p0" {
		t.Errorf("citations = %v, want [doc-a-p0]", resp.Citations)
	}

	// Both conversation turns are persisted in order.
	msgs, _ := f.chats.ListMessages(context.Background(), "chat-1")
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[0].Content != askRequest().Query {
		t.Errorf("first message should be the user turn, got %+v", msgs[0])
	}
	if msgs[1].Role != domain.RoleAssistant || msgs[1].Strategy != domain.StrategyLookup {
		t.Errorf("second message should be the assistant turn with strategy, got %+v", msgs[1])
	}
	if resp.Message == nil || resp.Message.ID != msgs[1].ID {
		t.Errorf("response should carry the persisted assistant message")
	}
}

func TestAskService_Ask_NoContext(t *testing.T) {
	f := newAskFixture(t)
	f.llm.Respond("predefined categories", "lookup")

	resp, err := f.svc.Ask(context.Background(), askRequest())
	if err != nil {
		t.Fatalf("an empty scope must not fail the ask: %v", err)
	}
	if resp.Answer != domain.NoContextAnswer {
		t.Errorf("answer = %q, want the no-context answer", resp.Answer)
	}

	// The no-context turn is still recorded.
	msgs, _ := f.chats.ListMessages(context.Background(), "chat-1")
	if len(msgs) != 2 {
		t.Errorf("expected 2 messages, got %d", len(msgs))
	}
}

func TestAskService_Ask_HistoryWindowExcludesCurrentQuestion(t *testing.T) {
	f := newAskFixture(t)
	f.seedDocument(t, "proj-1", "doc-a", "Alice", domain.IndexStatusCompleted,
		[]string{"budgets were discussed"}, []float64{0.9})

	ctx := context.Background()
	for i := 0; i < 12; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		_ = f.chats.AppendMessage(ctx, &domain.Message{
			ID:        domain.NewID(),
			ChatID:    "chat-1",
			Role:      role,
			Content:   "turn " + string(rune('a'+i)),
			CreatedAt: time.Now(),
		})
	}

	f.llm.Respond("predefined categories", "lookup")
	f.llm.SetDefault("Answer.")

	if _, err := f.svc.Ask(ctx, askRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompts := f.llm.Prompts()
	if len(prompts) < 2 {
		t.Fatalf("expected classification and synthesis prompts, got %d", len(prompts))
	}
	classification := prompts[0]
	// The question appears once as the question line, never in the
	// transcript: the window is captured before the user turn is appended.
	if n := strings.Count(classification, askRequest().Query); n != 1 {
		t.Errorf("question appears %d times in classification prompt, want 1", n)
	}
	// Only the last ten turns make the window: "turn a" and "turn b" fall out.
	if strings.Contains(classification, "turn a") || strings.Contains(classification, "turn b") {
		t.Errorf("history window should drop the oldest turns")
	}
	if !strings.Contains(classification, "turn l") {
		t.Errorf("history window should keep the most recent turns")
	}
}

func TestAskService_Ask_ChatMustBelongToProject(t *testing.T) {
	f := newAskFixture(t)
	_ = f.chats.SaveChat(context.Background(), &domain.Chat{ID: "chat-other", ProjectID: "proj-other"})

	req := askRequest()
	req.ChatID = "chat-other"
	_, err := f.svc.Ask(context.Background(), req)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-project chat, got %v", err)
	}
}

func TestAskService_Ask_ValidatesInput(t *testing.T) {
	f := newAskFixture(t)

	req := askRequest()
	req.Query = ""
	_, err := f.svc.Ask(context.Background(), req)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAskService_Ask_UsesStoredUserSettings(t *testing.T) {
	f := newAskFixture(t)
	f.seedDocument(t, "proj-1", "doc-a", "Alice", domain.IndexStatusCompleted,
		[]string{"budgets were discussed"}, []float64{0.9})

	stored := domain.DefaultUserSettings("user-1")
	stored.Generation.Model = "gpt-4o"
	stored.Generation.AnswerLength = domain.AnswerLengthLong
	_ = f.settings.Save(context.Background(), stored)

	f.llm.Respond("predefined categories", "lookup")
	f.llm.SetDefault("Answer.")

	if _, err := f.svc.Ask(context.Background(), askRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The synthesis call carries the owner's stored preferences.
	got := f.llm.LastSettings()
	if got.Model != "gpt-4o" {
		t.Errorf("model = %s, want gpt-4o", got.Model)
	}
	if got.AnswerLength != domain.AnswerLengthLong {
		t.Errorf("answer length = %s, want long", got.AnswerLength)
	}
}

func TestAskService_Ask_ClassificationFailureLeavesNoAssistantTurn(t *testing.T) {
	f := newAskFixture(t)
	f.seedDocument(t, "proj-1", "doc-a", "Alice", domain.IndexStatusCompleted,
		[]string{"content"}, []float64{0.9})
	f.llm.SetFailAlways(errors.New("model down"))

	_, err := f.svc.Ask(context.Background(), askRequest())
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Phase != domain.PhaseClassification {
		t.Errorf("phase = %s, want %s", genErr.Phase, domain.PhaseClassification)
	}

	msgs, _ := f.chats.ListMessages(context.Background(), "chat-1")
	if len(msgs) != 1 || msgs[0].Role != domain.RoleUser {
		t.Errorf("only the user turn should be persisted on failure, got %d messages", len(msgs))
	}
}
