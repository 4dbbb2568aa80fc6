package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven/mocks"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driving"
)

// askFeatureState carries one scenario's world: the in-memory adapters,
// the wired ask service and the last response.
type askFeatureState struct {
	documents *mocks.MockDocumentStore
	passages  *mocks.MockPassageStore
	projects  *mocks.MockProjectStore
	chats     *mocks.MockChatStore
	settings  *mocks.MockSettingsStore
	embedder  *mocks.MockEmbeddingService
	index     *mocks.MockVectorIndex
	llm       *mocks.MockLLMService
	cache     *mocks.MockSummaryCache
	svc       driving.AskService

	projectID string
	chatID    string
	response  *domain.AskResponse
}

func (s *askFeatureState) reset() {
	s.documents = mocks.NewMockDocumentStore()
	s.passages = mocks.NewMockPassageStore()
	s.projects = mocks.NewMockProjectStore()
	s.chats = mocks.NewMockChatStore()
	s.settings = mocks.NewMockSettingsStore()
	s.embedder = mocks.NewMockEmbeddingService()
	s.index = mocks.NewMockVectorIndex()
	s.llm = mocks.NewMockLLMService()
	s.cache = mocks.NewMockSummaryCache()

	retriever := NewRetriever(s.documents, s.passages, s.embedder, s.index, nil)
	composer := NewComposer(retriever, s.llm, s.cache, nil)
	selector := NewSelector(s.llm, nil)
	s.svc = NewAskService(s.projects, s.chats, s.settings, selector, composer, nil)
	s.response = nil
}

func (s *askFeatureState) aProjectWithAChat(name string) error {
	ctx := context.Background()
	s.projectID = domain.NewID()
	s.chatID = domain.NewID()
	if err := s.projects.Save(ctx, &domain.Project{ID: s.projectID, UserID: "user-1", Name: name}); err != nil {
		return err
	}
	return s.chats.SaveChat(ctx, &domain.Chat{ID: s.chatID, ProjectID: s.projectID, Title: "Chat"})
}

func (s *askFeatureState) seedDocument(docID, interviewee, content string, status domain.IndexStatus) error {
	ctx := context.Background()
	if err := s.documents.Save(ctx, &domain.Document{
		ID:          docID,
		ProjectID:   s.projectID,
		Name:        docID + ".txt",
		Interviewee: interviewee,
		IndexStatus: status,
	}); err != nil {
		return err
	}
	passageID := docID + "-p0"
	if err := s.passages.SaveBatch(ctx, []*domain.Passage{{
		ID:          passageID,
		DocumentID:  docID,
		ProjectID:   s.projectID,
		Interviewee: interviewee,
		Content:     content,
	}}); err != nil {
		return err
	}
	s.index.SetScore(passageID, 0.9)
	return s.index.Upsert(ctx, []driven.PassageVector{{
		PassageID:   passageID,
		DocumentID:  docID,
		ProjectID:   s.projectID,
		Interviewee: interviewee,
	}})
}

func (s *askFeatureState) anIndexedDocument(docID, interviewee, content string) error {
	return s.seedDocument(docID, interviewee, content, domain.IndexStatusCompleted)
}

func (s *askFeatureState) aFailedDocument(docID, interviewee string) error {
	return s.seedDocument(docID, interviewee, "broken content", domain.IndexStatusFailed)
}

func (s *askFeatureState) modelClassifiesAs(strategy string) error {
	s.llm.Respond("predefined categories", strategy)
	return nil
}

func (s *askFeatureState) modelAnswersAbout(content string) error {
	// The synthesis prompt carries the passage text; respond citing the
	// single passage seeded for documents containing that text.
	ctx := context.Background()
	docs, err := s.documents.ListByProject(ctx, s.projectID)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		passages, _ := s.passages.ListByDocument(ctx, doc.ID)
		for _, p := range passages {
			if strings.Contains(p.Content, content) {
				s.llm.Respond(p.Content, fmt.Sprintf("Here is the answer, passage %s.", p.ID))
				return nil
			}
		}
	}
	return fmt.Errorf("no seeded passage contains %q", content)
}

func (s *askFeatureState) modelSummarizesEachInterviewee() error {
	ctx := context.Background()
	s.llm.Respond("Comparison:", "They take opposing positions.")
	docs, err := s.documents.ListByProject(ctx, s.projectID)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		passages, _ := s.passages.ListByDocument(ctx, doc.ID)
		for _, p := range passages {
			s.llm.Respond(p.Content, fmt.Sprintf("%s's view, passage %s.", doc.Interviewee, p.ID))
		}
	}
	return nil
}

func (s *askFeatureState) iAsk(question string) error {
	resp, err := s.svc.Ask(context.Background(), domain.AskRequest{
		ProjectID: s.projectID,
		ChatID:    s.chatID,
		Query:     question,
	})
	if err != nil {
		return err
	}
	s.response = resp
	return nil
}

func (s *askFeatureState) answerStrategyIs(strategy string) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if string(s.response.Strategy) != strategy {
		return fmt.Errorf("strategy is %s, expected %s", s.response.Strategy, strategy)
	}
	return nil
}

func (s *askFeatureState) answerCitesPassageOf(docID string) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	for _, id := range s.response.Citations {
		if strings.HasPrefix(id, docID) {
			return nil
		}
	}
	return fmt.Errorf("citations %v contain no passage of %s", s.response.Citations, docID)
}

func (s *askFeatureState) noPassageOfIsCited(docID string) error {
	for _, id := range s.response.Citations {
		if strings.HasPrefix(id, docID) {
			return fmt.Errorf("citations %v unexpectedly reference %s", s.response.Citations, docID)
		}
	}
	return nil
}

func (s *askFeatureState) answerStatesNoContext() error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if s.response.Answer != domain.NoContextAnswer {
		return fmt.Errorf("answer %q is not the no-context answer", s.response.Answer)
	}
	return nil
}

func (s *askFeatureState) chatHoldsMessages(n int) error {
	msgs, err := s.chats.ListMessages(context.Background(), s.chatID)
	if err != nil {
		return err
	}
	if len(msgs) != n {
		return fmt.Errorf("chat holds %d messages, expected %d", len(msgs), n)
	}
	return nil
}

func InitializeAskScenario(sc *godog.ScenarioContext) {
	state := &askFeatureState{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	sc.Step(`^a project "([^"]*)" with a chat$`, state.aProjectWithAChat)
	sc.Step(`^an indexed document "([^"]*)" by interviewee "([^"]*)" containing "([^"]*)"$`, state.anIndexedDocument)
	sc.Step(`^a failed document "([^"]*)" by interviewee "([^"]*)"$`, state.aFailedDocument)
	sc.Step(`^the model classifies the question as "([^"]*)"$`, state.modelClassifiesAs)
	sc.Step(`^the model answers questions about "([^"]*)" citing its sources$`, state.modelAnswersAbout)
	sc.Step(`^the model summarizes each interviewee citing their passages$`, state.modelSummarizesEachInterviewee)
	sc.Step(`^I ask "([^"]*)"$`, state.iAsk)
	sc.Step(`^the answer strategy is "([^"]*)"$`, state.answerStrategyIs)
	sc.Step(`^the answer cites a passage of "([^"]*)"$`, state.answerCitesPassageOf)
	sc.Step(`^no passage of "([^"]*)" is cited$`, state.noPassageOfIsCited)
	sc.Step(`^the answer states that no relevant context was found$`, state.answerStatesNoContext)
	sc.Step(`^the chat holds (\d+) messages$`, state.chatHoldsMessages)
}

func TestAskFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeAskScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("ask feature suite failed")
	}
}
