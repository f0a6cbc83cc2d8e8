package store

import (
	"sort"
	"sync"
	"time"

	"github.com/rmorgan-dev/folio/models"
)

// ProjectStore holds the portfolio projects in process memory. The store is
// seeded at construction and every mutation is lost on restart; that is the
// documented contract of the projects API, which exists to serve a mostly
// static portfolio page.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[int]models.Project
	nextID   int
}

// NewProjectStore returns a store pre-populated with the portfolio seed data.
func NewProjectStore() *ProjectStore {
	s := &ProjectStore{
		projects: make(map[int]models.Project),
		nextID:   1,
	}
	for _, p := range seedProjects() {
		s.projects[p.ID] = p
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

// List returns all projects ordered by id ascending.
func (s *ProjectStore) List() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the project with the given id or [ErrProjectNotFound].
func (s *ProjectStore) Get(id int) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, ErrProjectNotFound
	}
	return p, nil
}

// Create stores a new project, assigning the next sequential id and both
// timestamps, and returns the stored record.
func (s *ProjectStore) Create(project models.Project) models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	project.ID = s.nextID
	project.CreatedAt = now
	project.UpdatedAt = now
	s.nextID++

	s.projects[project.ID] = project
	return project
}

// Update merges the non-nil patch fields into the stored project, re-stamps
// UpdatedAt, and returns the result. Returns [ErrProjectNotFound] when id is
// unknown.
func (s *ProjectStore) Update(id int, patch models.ProjectPatch) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, ErrProjectNotFound
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Tech != nil {
		p.Tech = *patch.Tech
	}
	if patch.LiveURL != nil {
		p.LiveURL = *patch.LiveURL
	}
	if patch.GithubURL != nil {
		p.GithubURL = *patch.GithubURL
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	p.UpdatedAt = time.Now()

	s.projects[id] = p
	return p, nil
}

// Delete removes the project with the given id.
// Returns [ErrProjectNotFound] when id is unknown.
func (s *ProjectStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

func seedProjects() []models.Project {
	return []models.Project{
		{
			ID:          1,
			Title:       "HIKE: AI-powered Trade & Draft Chatbot",
			Description: "Conversational agent delivering personalized draft and trade guidance for fantasy sports, with time-series projections of player performance and sentiment analysis over sports news.",
			Tech:        []string{"Python", "LangChain", "Statsmodels", "Streamlit", "FAISS"},
			Image:       "🤖",
			CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Title:       "Brain Cancer Detection",
			Description: "Hybrid CNN classifier for four classes of brain tumors from MRI images, with a web application for real-time upload, prediction, and result visualization.",
			Tech:        []string{"Python", "OpenCV", "TensorFlow", "Flask", "React"},
			Image:       "🧠",
			CreatedAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          3,
			Title:       "NBA2k25: Draft Analyzer",
			Description: "Full-stack mock draft board streaming live player updates, built on historical draft patterns, player biometrics, and sentiment analysis.",
			Tech:        []string{"Python", "Flask", "React", "Pandas", "BeautifulSoup"},
			Image:       "🏀",
			CreatedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          4,
			Title:       "Aggie Access",
			Description: "Course recommendation and degree tracking tool with a TF-IDF similarity pipeline, personalized suggestions, and real-time unit tracking.",
			Tech:        []string{"Python", "Scikit-learn", "Flask", "FastAPI", "React", "Next.js", "Supabase"},
			Image:       "🎓",
			CreatedAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          5,
			Title:       "Product Space",
			Description: "Website for the 2025-26 product space school year.",
			Tech:        []string{"React", "TypeScript", "Styled Components", "Node.js"},
			LiveURL:     "davisproductspace.org",
			Image:       "🚀",
			CreatedAt:   time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          6,
			Title:       "BaddiCoach: AI Badminton Trainer",
			Description: "Live training coach and player-development dashboard using pose detection to correct shot form, paired with a chatbot giving real-time coaching feedback.",
			Tech:        []string{"Python", "Yolov8", "Gemini", "Figma", "Jira"},
			Image:       "🏸",
			CreatedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC),
		},
	}
}
