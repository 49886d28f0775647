// Package domain holds the primitive types shared across modules. Parsing at
// trust boundaries guarantees that a typed value is always valid.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "veriadmin/pkg/domain-errors"
)

// SelectionID identifies one in-progress location selection session.
type SelectionID uuid.UUID

// UserID identifies an authenticated actor (JWT subject).
type UserID uuid.UUID

// OrganizationID is the backend's opaque organization identifier.
type OrganizationID string

func NewSelectionID() SelectionID {
	return SelectionID(uuid.New())
}

func (id SelectionID) String() string {
	return uuid.UUID(id).String()
}

func (id SelectionID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id UserID) String() string {
	return uuid.UUID(id).String()
}

func (id UserID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id OrganizationID) String() string {
	return string(id)
}

// ParseSelectionID parses a non-nil UUID.
func ParseSelectionID(s string) (SelectionID, error) {
	u, err := parseUUID(s, "selection id")
	return SelectionID(u), err
}

// ParseUserID parses a non-nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

// ParseOrganizationID accepts the backend's hex object ids and UUIDs: 1-64
// characters of [A-Za-z0-9-].
func ParseOrganizationID(s string) (OrganizationID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "organization id is required")
	}
	if len(s) > 64 {
		return "", dErrors.New(dErrors.CodeBadRequest, "organization id is too long")
	}
	for _, r := range s {
		if !(r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return "", dErrors.New(dErrors.CodeBadRequest, "organization id has invalid characters")
		}
	}
	return OrganizationID(s), nil
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, what+" is required")
	}
	// uuid.Parse accepts urn/braced forms; only the canonical 36-char form is allowed.
	if len(s) != 36 {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+what)
	}
	return u, nil
}
