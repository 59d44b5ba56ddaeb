package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

type roleLink struct{ userID, roleID int64 }

type stubRoleStore struct {
	roles  map[int64]*domain.Role
	links  map[roleLink]struct{}
	nextID int64
	err    error
}

func newStubRoleStore() *stubRoleStore {
	return &stubRoleStore{roles: make(map[int64]*domain.Role), links: make(map[roleLink]struct{}), nextID: 1}
}

func (s *stubRoleStore) GetRoles(_ context.Context) ([]domain.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubRoleStore) GetUserRoles(_ context.Context, userID int64) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	var names []string
	for link := range s.links {
		if link.userID == userID {
			if r, ok := s.roles[link.roleID]; ok {
				names = append(names, r.Name)
			}
		}
	}
	return names, nil
}

func (s *stubRoleStore) FindRoleByID(_ context.Context, roleID int64) (*domain.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	r, ok := s.roles[roleID]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *r
	return &clone, nil
}

func (s *stubRoleStore) AddUserToRole(_ context.Context, userID, roleID int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.roles[roleID]; !ok {
		return false, nil
	}
	s.links[roleLink{userID, roleID}] = struct{}{}
	return true, nil
}

func (s *stubRoleStore) CreateRole(_ context.Context, name, description string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, r := range s.roles {
		if r.Name == name {
			return false, domain.ErrRoleExists
		}
	}
	s.roles[s.nextID] = &domain.Role{ID: s.nextID, Name: name, Description: description, DateCreated: time.Now().UTC()}
	s.nextID++
	return true, nil
}

func (s *stubRoleStore) UpdateRole(_ context.Context, roleID int64, name, description string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	r, ok := s.roles[roleID]
	if !ok {
		return false, nil
	}
	for id, other := range s.roles {
		if id != roleID && other.Name == name {
			return false, domain.ErrRoleExists
		}
	}
	r.Name, r.Description = name, description
	return true, nil
}

func (s *stubRoleStore) DeleteRole(_ context.Context, roleID int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.roles[roleID]; !ok {
		return false, nil
	}
	delete(s.roles, roleID)
	for link := range s.links {
		if link.roleID == roleID {
			delete(s.links, link)
		}
	}
	return true, nil
}

func (s *stubRoleStore) roleIDByName(name string) int64 {
	for id, r := range s.roles {
		if r.Name == name {
			return id
		}
	}
	return 0
}

func newTestRoleManager(store *stubRoleStore) *RoleManager {
	return NewRoleManager(store, zerolog.Nop())
}

func TestRoleManager_CreateRole_Conflict(t *testing.T) {
	m := newTestRoleManager(newStubRoleStore())

	if res := m.CreateRole(context.Background(), "Manager", "Handles approvals"); !res.IsSuccess || !res.Data {
		t.Fatalf("create failed: %+v", res)
	}
	res := m.CreateRole(context.Background(), "Manager", "Different description")
	if res.IsSuccess {
		t.Fatalf("expected conflict on duplicate name")
	}
	if res.Error != "Role already exists." {
		t.Fatalf("unexpected conflict message: %q", res.Error)
	}
}

func TestRoleManager_AddToRole_Idempotent(t *testing.T) {
	store := newStubRoleStore()
	m := newTestRoleManager(store)
	m.CreateRole(context.Background(), "EMPLOYEE", "Default role")
	roleID := store.roleIDByName("EMPLOYEE")

	if res := m.AddToRole(context.Background(), 1, roleID); !res.IsSuccess || !res.Data {
		t.Fatalf("first assignment failed: %+v", res)
	}
	if res := m.AddToRole(context.Background(), 1, roleID); !res.IsSuccess || !res.Data {
		t.Fatalf("repeated assignment must succeed: %+v", res)
	}
	if len(store.links) != 1 {
		t.Fatalf("expected exactly one link, got %d", len(store.links))
	}
}

func TestRoleManager_AddToRole_UnknownRole(t *testing.T) {
	m := newTestRoleManager(newStubRoleStore())

	res := m.AddToRole(context.Background(), 1, 999)
	if res.IsSuccess || res.Error != "Failed to add user to the role." {
		t.Fatalf("expected link failure, got %+v", res)
	}
}

func TestRoleManager_DeleteRole_NotIdempotent(t *testing.T) {
	store := newStubRoleStore()
	m := newTestRoleManager(store)
	m.CreateRole(context.Background(), "TEMP", "short lived")
	roleID := store.roleIDByName("TEMP")

	if res := m.DeleteRole(context.Background(), roleID); !res.IsSuccess {
		t.Fatalf("first delete failed: %q", res.Error)
	}
	res := m.DeleteRole(context.Background(), roleID)
	if res.IsSuccess {
		t.Fatalf("second delete must fail")
	}
	if res.Error != "Role not found." {
		t.Fatalf("unexpected message: %q", res.Error)
	}
}

func TestRoleManager_DeleteRole_DetachesLinkedUsers(t *testing.T) {
	store := newStubRoleStore()
	m := newTestRoleManager(store)
	m.CreateRole(context.Background(), "MANAGER", "approvals")
	m.CreateRole(context.Background(), "EMPLOYEE", "default")
	managerID := store.roleIDByName("MANAGER")
	employeeID := store.roleIDByName("EMPLOYEE")
	m.AddToRole(context.Background(), 1, managerID)
	m.AddToRole(context.Background(), 1, employeeID)

	if res := m.DeleteRole(context.Background(), managerID); !res.IsSuccess {
		t.Fatalf("delete failed: %q", res.Error)
	}

	roles := m.GetRoles(context.Background(), 1)
	if !roles.IsSuccess {
		t.Fatalf("expected remaining roles, got %q", roles.Error)
	}
	for _, name := range roles.Data {
		if name == "MANAGER" {
			t.Fatalf("deleted role still linked to user")
		}
	}
}

func TestRoleManager_GetRoles_EmptyIsFailure(t *testing.T) {
	m := newTestRoleManager(newStubRoleStore())

	res := m.GetRoles(context.Background(), 7)
	if res.IsSuccess {
		t.Fatalf("expected failure for user with no roles")
	}
	if res.Error != "No roles found for the given user." {
		t.Fatalf("unexpected message: %q", res.Error)
	}
}

func TestRoleManager_GetAllRoles_EmptyIsFailure(t *testing.T) {
	m := newTestRoleManager(newStubRoleStore())

	res := m.GetAllRoles(context.Background())
	if res.IsSuccess || res.Error != "No Roles" {
		t.Fatalf("expected No Roles failure, got %+v", res)
	}
}

func TestRoleManager_UpdateRole_DuplicateNameConflict(t *testing.T) {
	store := newStubRoleStore()
	m := newTestRoleManager(store)
	m.CreateRole(context.Background(), "MANAGER", "approvals")
	m.CreateRole(context.Background(), "EMPLOYEE", "default")
	employeeID := store.roleIDByName("EMPLOYEE")

	res := m.UpdateRole(context.Background(), employeeID, "MANAGER", "renamed over an existing role")
	if res.IsSuccess {
		t.Fatalf("expected conflict on duplicate name")
	}
	// The conflict is the caller's doing, so it must read as the same
	// client-class failure create reports, not an unexpected one.
	if res.Error != "Role already exists." {
		t.Fatalf("unexpected conflict message: %q", res.Error)
	}
}

func TestRoleManager_UpdateRole_UnknownID(t *testing.T) {
	m := newTestRoleManager(newStubRoleStore())

	res := m.UpdateRole(context.Background(), 123, "X", "updated")
	if res.IsSuccess || res.Error != "Non existing role." {
		t.Fatalf("expected Non existing role., got %+v", res)
	}
}
