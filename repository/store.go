package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/driftboard/driftboard-backend/models"
)

var (
	// ErrNotFound means the addressed row does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict means a uniqueness constraint rejected the write.
	ErrConflict = errors.New("repository: conflict")
)

// Store is the relational access surface the handlers depend on. The
// production implementation runs SQL against PostgreSQL; tests inject an
// in-memory fake.
type Store interface {
	UpsertUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, id, username, displayName string) error

	CreateProject(ctx context.Context, p models.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, name string) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	Role(ctx context.Context, projectID uuid.UUID, userID string) (string, error)
	AddCollaborator(ctx context.Context, c models.Collaborator) error
	ListCollaborators(ctx context.Context, projectID uuid.UUID) ([]models.Collaborator, error)
	UpdateCollaboratorRole(ctx context.Context, projectID uuid.UUID, userID, role string) error
	RemoveCollaborator(ctx context.Context, projectID uuid.UUID, userID string) error

	CreateShareLink(ctx context.Context, link models.ShareLink) error
	GetShareLink(ctx context.Context, token string) (*models.ShareLink, error)
}
