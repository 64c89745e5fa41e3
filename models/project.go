package models

import (
    "time"

    "github.com/google/uuid"
)

const (
    RoleOwner  = "owner"
    RoleEditor = "editor"
    RoleViewer = "viewer"
)

// ValidRole reports whether role is one a collaborator can be assigned.
// Ownership is set at project creation and never granted through the
// collaborator endpoints.
func ValidRole(role string) bool {
    return role == RoleEditor || role == RoleViewer
}

// CanEdit reports whether role may mutate a project's contents.
func CanEdit(role string) bool {
    return role == RoleOwner || role == RoleEditor
}

type Project struct {
    ID        uuid.UUID `json:"id"`
    OwnerID   string    `json:"owner_id"`
    Name      string    `json:"name"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

type Collaborator struct {
    ProjectID uuid.UUID `json:"project_id"`
    UserID    string    `json:"user_id"`
    Username  string    `json:"username"`
    Role      string    `json:"role"`
    AddedAt   time.Time `json:"added_at"`
}

// ShareLink is a redeemable invite to a project. PasscodeHash is empty
// when the link is open, otherwise a bcrypt hash of the passcode.
type ShareLink struct {
    Token        string    `json:"token"`
    ProjectID    uuid.UUID `json:"project_id"`
    Role         string    `json:"role"`
    PasscodeHash string    `json:"-"`
    CreatedAt    time.Time `json:"created_at"`
    ExpiresAt    time.Time `json:"expires_at"`
}
