package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/store"
	"github.com/rmorgan-dev/folio/models"
)

// Projects implements ProjectService over the seeded in-memory store.
type Projects struct {
	projects *store.ProjectStore
	logger   *logger.Logger
}

func NewProjectService(projects *store.ProjectStore, log *logger.Logger) *Projects {
	return &Projects{projects: projects, logger: log}
}

func (p *Projects) List(ctx context.Context) []models.Project {
	return p.projects.List()
}

func (p *Projects) Get(ctx context.Context, id int) (models.Project, error) {
	return p.projects.Get(id)
}

func (p *Projects) Create(ctx context.Context, project models.Project) (models.Project, error) {
	if strings.TrimSpace(project.Title) == "" || strings.TrimSpace(project.Description) == "" || len(project.Tech) == 0 {
		return models.Project{}, fmt.Errorf("%w: title, description and tech are required", ErrInvalidDataProvided)
	}

	created := p.projects.Create(project)
	logger.FromContext(ctx).Info().Int("project_id", created.ID).Msg("project created")
	return created, nil
}

func (p *Projects) Update(ctx context.Context, id int, patch models.ProjectPatch) (models.Project, error) {
	return p.projects.Update(id, patch)
}

func (p *Projects) Delete(ctx context.Context, id int) error {
	if err := p.projects.Delete(id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Int("project_id", id).Msg("project deleted")
	return nil
}
