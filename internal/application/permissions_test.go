package application

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestStore_HasPermission_FollowsActiveUserRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, DemoSeed(referenceDay))

	if !store.HasPermission(PermManagePermissions) {
		t.Fatalf("expected administrator to hold every permission")
	}

	if _, err := store.SetCurrentUser(ctx, 4); err != nil {
		t.Fatalf("SetCurrentUser returned error: %v", err)
	}
	if store.HasPermission(PermManageSchedules) {
		t.Fatalf("expected servant role to lack manage_schedules")
	}
	if !store.HasPermission(PermViewSchedules) {
		t.Fatalf("expected servant role to hold view_schedules")
	}
}

func TestStore_HasPermission_FailsClosed(t *testing.T) {
	t.Parallel()

	t.Run("no users", func(t *testing.T) {
		t.Parallel()
		store, _ := newTestStore(t, Seed{})
		if store.HasPermission(PermViewDashboard) {
			t.Fatalf("expected no permission without an active user")
		}
		if perms := store.CurrentPermissions(); len(perms) != 0 {
			t.Fatalf("expected no permissions, got %v", perms)
		}
	})

	t.Run("role without entry", func(t *testing.T) {
		t.Parallel()
		seed := Seed{
			Users:           []User{{ID: 1, Name: "Leader", Role: RoleLeader}},
			RolePermissions: RolePermissions{RolePastor: {PermViewDashboard}},
		}
		store, _ := newTestStore(t, seed)
		if store.HasPermission(PermViewDashboard) {
			t.Fatalf("expected role without mapping to hold nothing")
		}
	})
}

func TestStore_UpdateRolePermissions(t *testing.T) {
	t.Parallel()

	granted := []Permission{PermViewReports, PermManageEvents}

	for _, role := range []Role{RolePastor, RoleLeader, RoleServant} {
		role := role
		t.Run(string(role), func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			store, _ := newTestStore(t, DemoSeed(referenceDay))
			if err := store.UpdateRolePermissions(ctx, role, granted); err != nil {
				t.Fatalf("UpdateRolePermissions returned error: %v", err)
			}

			users := map[Role]int64{RolePastor: 2, RoleLeader: 3, RoleServant: 4}
			if _, err := store.SetCurrentUser(ctx, users[role]); err != nil {
				t.Fatalf("SetCurrentUser returned error: %v", err)
			}

			for _, p := range AllPermissions() {
				want := p == PermViewReports || p == PermManageEvents
				if got := store.HasPermission(p); got != want {
					t.Fatalf("permission %s: expected %v, got %v", p, want, got)
				}
			}
		})
	}
}

func TestStore_UpdateRolePermissions_AdministratorIsImmutable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, backend := newTestStore(t, DemoSeed(referenceDay))
	before := store.RolePermissions()

	err := store.UpdateRolePermissions(ctx, RoleAdministrator, []Permission{PermViewDashboard})
	if !errors.Is(err, ErrImmutableRole) {
		t.Fatalf("expected ErrImmutableRole, got %v", err)
	}

	if !reflect.DeepEqual(store.RolePermissions(), before) {
		t.Fatalf("expected mapping to be unchanged")
	}
	for _, p := range AllPermissions() {
		if !store.HasPermission(p) {
			t.Fatalf("expected administrator to keep %s", p)
		}
	}
	if _, err := backend.Get(ctx, "role-permissions"); err == nil {
		t.Fatalf("expected no write for a rejected update")
	}
}

func TestStore_UpdateRolePermissions_RejectsUnknownValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, DemoSeed(referenceDay))

	var vErr *ValidationError
	if err := store.UpdateRolePermissions(ctx, Role("guest"), nil); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown role, got %v", err)
	}
	if _, ok := vErr.FieldErrors["role"]; !ok {
		t.Fatalf("expected role field error, got %v", vErr.FieldErrors)
	}

	if err := store.UpdateRolePermissions(ctx, RoleLeader, []Permission{"fly"}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown permission, got %v", err)
	}
}

func TestStore_StoredAdministratorMappingIsRepinned(t *testing.T) {
	t.Parallel()

	seed := DemoSeed(referenceDay)
	seed.RolePermissions = RolePermissions{RoleAdministrator: {PermViewDashboard}, "ghost": {PermViewAdmin}}
	store, _ := newTestStore(t, seed)

	mapping := store.RolePermissions()
	if !reflect.DeepEqual(mapping[RoleAdministrator], AllPermissions()) {
		t.Fatalf("expected administrator to hold every permission, got %v", mapping[RoleAdministrator])
	}
	if _, ok := mapping["ghost"]; ok {
		t.Fatalf("expected unknown role to be dropped")
	}
}

func TestStore_SetCurrentUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, backend := newTestStore(t, DemoSeed(referenceDay))

	user, err := store.SetCurrentUser(ctx, 2)
	if err != nil {
		t.Fatalf("SetCurrentUser returned error: %v", err)
	}
	if user.Role != RolePastor {
		t.Fatalf("expected pastor, got %s", user.Role)
	}
	raw, err := backend.Get(ctx, "active-user-id")
	if err != nil || string(raw) != "2" {
		t.Fatalf("expected active-user-id to be persisted as 2, got %q (%v)", raw, err)
	}

	if _, err := store.SetCurrentUser(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if current, _ := store.CurrentUser(); current.ID != 2 {
		t.Fatalf("expected active user to stay 2, got %d", current.ID)
	}
}
