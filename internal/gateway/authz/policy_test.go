package authz

import (
	"testing"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

func TestHasAnyRole_Match(t *testing.T) {
	roles := []string{domain.RoleEmployee, domain.RoleManager}
	if !HasAnyRole(roles, domain.RoleManager, domain.RoleHRAdmin) {
		t.Fatalf("expected manager to satisfy the check")
	}
}

func TestHasAnyRole_NoMatch(t *testing.T) {
	roles := []string{domain.RoleEmployee}
	if HasAnyRole(roles, domain.RoleManager, domain.RoleHRAdmin) {
		t.Fatalf("employee must not satisfy a manager/admin check")
	}
}

func TestHasAnyRole_EmptyRequiredDenies(t *testing.T) {
	if HasAnyRole([]string{domain.RoleHRAdmin}) {
		t.Fatalf("empty required set must deny")
	}
}

func TestHasAnyRole_EmptyCallerRoles(t *testing.T) {
	if HasAnyRole(nil, domain.RoleEmployee) {
		t.Fatalf("caller without roles must be denied")
	}
}

func TestCanAccessRecord_OwnRecord(t *testing.T) {
	if !CanAccessRecord(7, []string{domain.RoleEmployee}, 7, domain.RoleHRAdmin) {
		t.Fatalf("caller must always access its own record")
	}
}

func TestCanAccessRecord_OtherRecordDenied(t *testing.T) {
	if CanAccessRecord(1, []string{domain.RoleEmployee}, 2, domain.RoleHRAdmin) {
		t.Fatalf("non-elevated caller must not access another record")
	}
}

func TestCanAccessRecord_ElevatedBypass(t *testing.T) {
	if !CanAccessRecord(1, []string{domain.RoleHRAdmin}, 2, domain.RoleHRAdmin) {
		t.Fatalf("elevated role must bypass the self check")
	}
}

func TestCanAccessRecord_ElevatedListMatters(t *testing.T) {
	// Manager is only elevated on routes that say so.
	if CanAccessRecord(1, []string{domain.RoleManager}, 2, domain.RoleHRAdmin) {
		t.Fatalf("manager is not elevated for an admin-only route")
	}
	if !CanAccessRecord(1, []string{domain.RoleManager}, 2, domain.RoleManager, domain.RoleHRAdmin) {
		t.Fatalf("manager must be elevated when the route allows it")
	}
}
