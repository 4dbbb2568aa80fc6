package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// llmRule maps a prompt substring to a canned response.
type llmRule struct {
	substring string
	response  string
}

// MockLLMService is a mock implementation of LLMService for testing.
// Responses are scripted: rules match on prompt substrings in registration
// order, with a configurable default for everything else.
type MockLLMService struct {
	mu         sync.Mutex
	rules      []llmRule
	defaultOut string
	failNext   error
	failAlways error
	prompts    []string
	settings   []domain.GenerationSettings
}

// NewMockLLMService creates a new MockLLMService
func NewMockLLMService() *MockLLMService {
	return &MockLLMService{defaultOut: "mock answer"}
}

func (m *MockLLMService) Generate(ctx context.Context, prompt string, settings domain.GenerationSettings) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.settings = append(m.settings, settings)

	if m.failAlways != nil {
		return "", m.failAlways
	}
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return "", err
	}

	for _, r := range m.rules {
		if strings.Contains(prompt, r.substring) {
			return r.response, nil
		}
	}
	return m.defaultOut, nil
}

func (m *MockLLMService) Model() string {
	return "mock-llm-model"
}

func (m *MockLLMService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockLLMService) Close() error {
	return nil
}

// Helper methods for testing

// Respond registers a canned response for prompts containing substring.
// Earlier registrations win.
func (m *MockLLMService) Respond(substring, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, llmRule{substring: substring, response: response})
}

func (m *MockLLMService) SetDefault(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultOut = response
}

func (m *MockLLMService) SetFailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

func (m *MockLLMService) SetFailAlways(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAlways = err
}

// Prompts returns a copy of all prompts seen so far.
func (m *MockLLMService) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// LastSettings returns the settings of the most recent call.
func (m *MockLLMService) LastSettings() domain.GenerationSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.settings) == 0 {
		return domain.GenerationSettings{}
	}
	return m.settings[len(m.settings)-1]
}
