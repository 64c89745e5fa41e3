package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/driftboard/driftboard-backend/models"
)

// SQLStore implements Store over a PostgreSQL database.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// uniqueViolation is the PostgreSQL error code for broken unique constraints.
const uniqueViolation = "23505"

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

func (s *SQLStore) UpsertUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, display_name, created_at)
         VALUES ($1, $2, $3, $4, NOW())
         ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email`,
		user.ID, user.Username, user.Email, user.DisplayName)
	return translateErr(err)
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, display_name, created_at FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.DisplayName, &user.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, display_name, created_at FROM users WHERE username = $1`, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.DisplayName, &user.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *SQLStore) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, translateErr(err)
	}
	return !exists, nil
}

func (s *SQLStore) UpdateProfile(ctx context.Context, id, username, displayName string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = $2, display_name = $3 WHERE id = $1`,
		id, username, displayName)
	if err != nil {
		return translateErr(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) CreateProject(ctx context.Context, p models.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO projects (id, owner_id, name, created_at, updated_at)
         VALUES ($1, $2, $3, NOW(), NOW())`,
		p.ID, p.OwnerID, p.Name)
	if err != nil {
		return translateErr(err)
	}

	// The owner is a collaborator row too, so membership checks stay one query.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO collaborators (project_id, user_id, role, added_at)
         VALUES ($1, $2, $3, NOW())`,
		p.ID, p.OwnerID, models.RoleOwner)
	if err != nil {
		return translateErr(err)
	}

	return tx.Commit()
}

func (s *SQLStore) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var p models.Project
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, created_at, updated_at FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (s *SQLStore) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.owner_id, p.name, p.created_at, p.updated_at
         FROM projects p
         JOIN collaborators c ON c.project_id = p.id
         WHERE c.user_id = $1
         ORDER BY p.updated_at DESC`, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *SQLStore) UpdateProject(ctx context.Context, id uuid.UUID, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = $2, updated_at = NOW() WHERE id = $1`, id, name)
	if err != nil {
		return translateErr(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Role returns the caller's role on a project, or ErrNotFound when the
// caller is not a member.
func (s *SQLStore) Role(ctx context.Context, projectID uuid.UUID, userID string) (string, error) {
	var role string
	err := s.db.QueryRowContext(ctx,
		`SELECT role FROM collaborators WHERE project_id = $1 AND user_id = $2`,
		projectID, userID).Scan(&role)
	if err != nil {
		return "", translateErr(err)
	}
	return role, nil
}

func (s *SQLStore) AddCollaborator(ctx context.Context, c models.Collaborator) error {
	// Idempotent: redeeming a share link twice must not fail.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collaborators (project_id, user_id, role, added_at)
         VALUES ($1, $2, $3, NOW())
         ON CONFLICT (project_id, user_id) DO NOTHING`,
		c.ProjectID, c.UserID, c.Role)
	return translateErr(err)
}

func (s *SQLStore) ListCollaborators(ctx context.Context, projectID uuid.UUID) ([]models.Collaborator, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.project_id, c.user_id, u.username, c.role, c.added_at
         FROM collaborators c
         JOIN users u ON u.id = c.user_id
         WHERE c.project_id = $1
         ORDER BY c.added_at`, projectID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var collaborators []models.Collaborator
	for rows.Next() {
		var c models.Collaborator
		if err := rows.Scan(&c.ProjectID, &c.UserID, &c.Username, &c.Role, &c.AddedAt); err != nil {
			return nil, err
		}
		collaborators = append(collaborators, c)
	}
	return collaborators, rows.Err()
}

func (s *SQLStore) UpdateCollaboratorRole(ctx context.Context, projectID uuid.UUID, userID, role string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE collaborators SET role = $3 WHERE project_id = $1 AND user_id = $2`,
		projectID, userID, role)
	if err != nil {
		return translateErr(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) RemoveCollaborator(ctx context.Context, projectID uuid.UUID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM collaborators WHERE project_id = $1 AND user_id = $2`,
		projectID, userID)
	if err != nil {
		return translateErr(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) CreateShareLink(ctx context.Context, link models.ShareLink) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO share_links (token, project_id, role, passcode_hash, created_at, expires_at)
         VALUES ($1, $2, $3, NULLIF($4, ''), NOW(), $5)`,
		link.Token, link.ProjectID, link.Role, link.PasscodeHash, link.ExpiresAt)
	return translateErr(err)
}

func (s *SQLStore) GetShareLink(ctx context.Context, token string) (*models.ShareLink, error) {
	var link models.ShareLink
	var passcodeHash sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT token, project_id, role, passcode_hash, created_at, expires_at
         FROM share_links WHERE token = $1`, token).
		Scan(&link.Token, &link.ProjectID, &link.Role, &passcodeHash, &link.CreatedAt, &link.ExpiresAt)
	if err != nil {
		return nil, translateErr(err)
	}
	link.PasscodeHash = passcodeHash.String
	return &link, nil
}
