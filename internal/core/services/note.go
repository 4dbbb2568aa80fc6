package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driving"
)

// Ensure noteService implements NoteService
var _ driving.NoteService = (*noteService)(nil)

type noteService struct {
	notes    driven.NoteStore
	projects driven.ProjectStore
	logger   *slog.Logger
}

// NewNoteService creates a NoteService.
func NewNoteService(notes driven.NoteStore, projects driven.ProjectStore, logger *slog.Logger) driving.NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &noteService{notes: notes, projects: projects, logger: logger}
}

func (s *noteService) Create(ctx context.Context, projectID, name, content string) (*domain.Note, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: note name is required", domain.ErrInvalidInput)
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	now := time.Now()
	note := &domain.Note{
		ID:        domain.NewID(),
		ProjectID: projectID,
		Name:      name,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Get(ctx context.Context, id string) (*domain.Note, error) {
	return s.notes.Get(ctx, id)
}

func (s *noteService) List(ctx context.Context, projectID string) ([]*domain.Note, error) {
	return s.notes.ListByProject(ctx, projectID)
}

func (s *noteService) Update(ctx context.Context, id, name, content string) (*domain.Note, error) {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		note.Name = name
	}
	note.Content = content
	note.UpdatedAt = time.Now()
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	return s.notes.Delete(ctx, id)
}
