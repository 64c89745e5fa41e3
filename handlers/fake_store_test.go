package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/driftboard/driftboard-backend/models"
	"github.com/driftboard/driftboard-backend/repository"
)

// fakeStore is an in-memory repository.Store for handler tests.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	projects map[uuid.UUID]models.Project
	roles    map[uuid.UUID]map[string]string
	links    map[string]models.ShareLink
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]models.User),
		projects: make(map[uuid.UUID]models.Project),
		roles:    make(map[uuid.UUID]map[string]string),
		links:    make(map[string]models.ShareLink),
	}
}

func (f *fakeStore) UpsertUser(ctx context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.users[user.ID]; ok {
		existing.Email = user.Email
		f.users[user.ID] = existing
		return nil
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeStore) UpdateProfile(ctx context.Context, id, username, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for otherID, other := range f.users {
		if otherID != id && other.Username == username {
			return repository.ErrConflict
		}
	}
	user.Username = username
	user.DisplayName = displayName
	f.users[id] = user
	return nil
}

func (f *fakeStore) CreateProject(ctx context.Context, p models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.projects[p.ID] = p
	f.roles[p.ID] = map[string]string{p.OwnerID: models.RoleOwner}
	return nil
}

func (f *fakeStore) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var projects []models.Project
	for id, roles := range f.roles {
		if _, ok := roles[userID]; ok {
			projects = append(projects, f.projects[id])
		}
	}
	return projects, nil
}

func (f *fakeStore) UpdateProject(ctx context.Context, id uuid.UUID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	f.projects[id] = p
	return nil
}

func (f *fakeStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.projects, id)
	delete(f.roles, id)
	return nil
}

func (f *fakeStore) Role(ctx context.Context, projectID uuid.UUID, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[projectID][userID]
	if !ok {
		return "", repository.ErrNotFound
	}
	return role, nil
}

func (f *fakeStore) AddCollaborator(ctx context.Context, c models.Collaborator) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	roles, ok := f.roles[c.ProjectID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, exists := roles[c.UserID]; exists {
		return nil
	}
	roles[c.UserID] = c.Role
	return nil
}

func (f *fakeStore) ListCollaborators(ctx context.Context, projectID uuid.UUID) ([]models.Collaborator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var collaborators []models.Collaborator
	for userID, role := range f.roles[projectID] {
		collaborators = append(collaborators, models.Collaborator{
			ProjectID: projectID,
			UserID:    userID,
			Username:  f.users[userID].Username,
			Role:      role,
		})
	}
	return collaborators, nil
}

func (f *fakeStore) UpdateCollaboratorRole(ctx context.Context, projectID uuid.UUID, userID, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	roles, ok := f.roles[projectID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, exists := roles[userID]; !exists {
		return repository.ErrNotFound
	}
	roles[userID] = role
	return nil
}

func (f *fakeStore) RemoveCollaborator(ctx context.Context, projectID uuid.UUID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	roles, ok := f.roles[projectID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, exists := roles[userID]; !exists {
		return repository.ErrNotFound
	}
	delete(roles, userID)
	return nil
}

func (f *fakeStore) CreateShareLink(ctx context.Context, link models.ShareLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	link.CreatedAt = time.Now()
	f.links[link.Token] = link
	return nil
}

func (f *fakeStore) GetShareLink(ctx context.Context, token string) (*models.ShareLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	link, ok := f.links[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &link, nil
}

// fakeStrokeStore is an in-memory repository.StrokeStore.
type fakeStrokeStore struct {
	mu      sync.Mutex
	strokes []models.Stroke
}

func (f *fakeStrokeStore) Append(ctx context.Context, strokes []models.Stroke) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strokes = append(f.strokes, strokes...)
	return nil
}

func (f *fakeStrokeStore) List(ctx context.Context, projectID string) ([]models.Stroke, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Stroke
	for _, s := range f.strokes {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}
