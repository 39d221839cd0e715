package application

import (
	"context"
	"fmt"

	"github.com/example/escala/internal/persistence"
)

// HasPermission reports whether the active user's role grants permission.
// It fails closed when there is no active user or the role has no entry.
func (s *Store) HasPermission(permission Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.currentUserLocked()
	if !ok {
		return false
	}
	set, ok := s.permissions[user.Role]
	if !ok {
		return false
	}
	return set.has(permission)
}

// CurrentPermissions lists the permissions granted to the active user.
func (s *Store) CurrentPermissions() []Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.currentUserLocked()
	if !ok {
		return nil
	}
	return s.permissions[user.Role].list()
}

// RolePermissions returns a copy of the role to permission mapping.
func (s *Store) RolePermissions() RolePermissions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fromPermissionIndex(s.permissions)
}

// UpdateRolePermissions replaces the permissions granted to role. The
// administrator always holds every permission; attempts to change it return
// ErrImmutableRole and leave the mapping untouched.
func (s *Store) UpdateRolePermissions(ctx context.Context, role Role, permissions []Permission) (err error) {
	if s == nil {
		return fmt.Errorf("Store is nil")
	}

	logger := s.loggerWith(ctx, "UpdateRolePermissions", "role", role)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update role permissions", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "role permissions updated", "permission_count", len(permissions))
	}()

	if role == RoleAdministrator {
		return ErrImmutableRole
	}

	vErr := &ValidationError{}
	if !role.Valid() {
		vErr.add("role", "role is invalid")
	}
	for _, p := range permissions {
		if !p.Valid() {
			vErr.add("permissions", "unknown permission: "+string(p))
			break
		}
	}
	if vErr.HasErrors() {
		return vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.permissions[role] = newPermissionSet(permissions)
	s.persistLocked(ctx, persistence.KeyRolePermissions, fromPermissionIndex(s.permissions))
	return nil
}

// SetCurrentUser makes the user with userID the active user. No credential is
// checked: any stored user may be selected.
func (s *Store) SetCurrentUser(ctx context.Context, userID int64) (user User, err error) {
	if s == nil {
		return User{}, fmt.Errorf("Store is nil")
	}

	logger := s.loggerWith(ctx, "SetCurrentUser", "user_id", userID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to set current user", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "current user changed", "role", user.Role)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.userIndexLocked(userID)
	if !ok {
		return User{}, ErrNotFound
	}
	s.activeUserID = userID
	s.saveActiveUserLocked(ctx)
	return s.users[idx], nil
}
