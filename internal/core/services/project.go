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

// Ensure projectService implements ProjectService
var _ driving.ProjectService = (*projectService)(nil)

type projectService struct {
	projects driven.ProjectStore
	index    driven.VectorIndex
	logger   *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(projects driven.ProjectStore, index driven.VectorIndex, logger *slog.Logger) driving.ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &projectService{projects: projects, index: index, logger: logger}
}

func (s *projectService) Create(ctx context.Context, userID, name, description string) (*domain.Project, error) {
	now := time.Now()
	project := &domain.Project{
		ID:          domain.NewID(),
		UserID:      userID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info("project created", "project_id", project.ID, "user_id", userID)
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.Get(ctx, id)
}

func (s *projectService) List(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

func (s *projectService) Update(ctx context.Context, id, name, description string) (*domain.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		project.Name = name
	}
	project.Description = description
	project.UpdatedAt = time.Now()
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and everything it owns. The vector index is
// cleared first: if that fails nothing is deleted, so no orphaned
// embeddings can survive a partial delete.
func (s *projectService) Delete(ctx context.Context, id string) error {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.index.DeleteByProject(ctx, project.ID); err != nil {
		return fmt.Errorf("clearing vector index: %w", err)
	}

	// Relational cascade removes documents, passages, chats, messages
	// and notes.
	if err := s.projects.Delete(ctx, project.ID); err != nil {
		return err
	}

	s.logger.Info("project deleted", "project_id", project.ID)
	return nil
}
