package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

// fakeHasher is a deterministic stand-in for bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Verify(hash, plain string) bool    { return hash == "hashed:"+plain }

type stubUserStore struct {
	users  map[int64]*domain.User
	nextID int64
	err    error // when set, every call fails with it
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (s *stubUserStore) CreateUser(_ context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	created := cloneUser(user)
	created.ID = s.nextID
	created.PasswordHash = passwordHash
	created.DateCreated = time.Now().UTC()
	s.nextID++
	s.users[created.ID] = cloneUser(created)
	return created, nil
}

func (s *stubUserStore) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *stubUserStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserStore) GetUsers(_ context.Context) ([]domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserStore) UpdateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	existing, ok := s.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	existing.Email = user.Email
	existing.PhoneNumber = user.PhoneNumber
	return cloneUser(existing), nil
}

func (s *stubUserStore) DeleteUser(_ context.Context, id int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func (s *stubUserStore) ResetPassword(_ context.Context, id int64, passwordHash string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	u.PasswordHash = passwordHash
	return true, nil
}

func newTestUserManager(store *stubUserStore) *UserManager {
	return NewUserManager(store, fakeHasher{}, zerolog.Nop())
}

func TestUserManager_Create_HashesPassword(t *testing.T) {
	store := newStubUserStore()
	m := newTestUserManager(store)

	res := m.Create(context.Background(), &domain.User{UserName: "janefox", Email: "jane.fox@example.com"}, "Password123")
	if !res.IsSuccess {
		t.Fatalf("create failed: %s", res.Error)
	}
	if res.Data.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	stored := store.users[res.Data.ID]
	if stored.PasswordHash == "Password123" {
		t.Fatalf("password stored in plaintext")
	}
	if stored.PasswordHash != "hashed:Password123" {
		t.Fatalf("unexpected hash: %q", stored.PasswordHash)
	}
}

func TestUserManager_Create_EmailConflictIsCaseInsensitive(t *testing.T) {
	store := newStubUserStore()
	m := newTestUserManager(store)

	if res := m.Create(context.Background(), &domain.User{UserName: "a", Email: "Jane@Example.com"}, "pw"); !res.IsSuccess {
		t.Fatalf("first create failed: %s", res.Error)
	}
	res := m.Create(context.Background(), &domain.User{UserName: "b", Email: "jane@example.COM"}, "pw")
	if res.IsSuccess {
		t.Fatalf("expected conflict")
	}
	if res.Error != "Email already exists." {
		t.Fatalf("unexpected conflict message: %q", res.Error)
	}
}

func TestUserManager_Create_RepositoryErrorIsGeneric(t *testing.T) {
	store := newStubUserStore()
	store.err = domain.NewRepositoryError("insert user", errors.New("connection refused to 10.0.0.4:27017"))
	m := newTestUserManager(store)

	res := m.Create(context.Background(), &domain.User{UserName: "a", Email: "a@example.com"}, "pw")
	if res.IsSuccess {
		t.Fatalf("expected failure")
	}
	if strings.Contains(res.Error, "27017") || strings.Contains(res.Error, "connection") {
		t.Fatalf("store detail leaked to caller: %q", res.Error)
	}
}

func TestUserManager_ValidateUser(t *testing.T) {
	store := newStubUserStore()
	m := newTestUserManager(store)
	created := m.Create(context.Background(), &domain.User{UserName: "jane", Email: "jane@example.com"}, "s3cret")
	if !created.IsSuccess {
		t.Fatalf("create failed: %s", created.Error)
	}

	ok := m.ValidateUser(context.Background(), "jane@example.com", "s3cret")
	if !ok.IsSuccess {
		t.Fatalf("expected valid credentials, got %q", ok.Error)
	}
	if ok.Data.ID != created.Data.ID {
		t.Fatalf("validated wrong user: %d", ok.Data.ID)
	}

	if res := m.ValidateUser(context.Background(), "jane@example.com", "wrong"); res.IsSuccess || res.Error != "Wrong credentials" {
		t.Fatalf("expected Wrong credentials, got %+v", res)
	}
	if res := m.ValidateUser(context.Background(), "ghost@example.com", "s3cret"); res.IsSuccess || res.Error != "User not found" {
		t.Fatalf("expected User not found, got %+v", res)
	}
}

func TestUserManager_ResetPassword_UnknownID(t *testing.T) {
	m := newTestUserManager(newStubUserStore())

	res := m.ResetPassword(context.Background(), 9999, "NewPassword1")
	if res.IsSuccess {
		t.Fatalf("expected failure for unknown id")
	}
	if !strings.Contains(res.Error, "not found") {
		t.Fatalf("expected not-found class error, got %q", res.Error)
	}
}

func TestUserManager_ResetPassword_RehashesAndPersists(t *testing.T) {
	store := newStubUserStore()
	m := newTestUserManager(store)
	created := m.Create(context.Background(), &domain.User{UserName: "jane", Email: "jane@example.com"}, "old")
	if !created.IsSuccess {
		t.Fatalf("create failed: %s", created.Error)
	}

	if res := m.ResetPassword(context.Background(), created.Data.ID, "newpass"); !res.IsSuccess || !res.Data {
		t.Fatalf("reset failed: %+v", res)
	}
	if res := m.ValidateUser(context.Background(), "jane@example.com", "newpass"); !res.IsSuccess {
		t.Fatalf("new password rejected: %q", res.Error)
	}
	if res := m.ValidateUser(context.Background(), "jane@example.com", "old"); res.IsSuccess {
		t.Fatalf("old password still accepted")
	}
}

func TestUserManager_Delete_AffectedCountIsTheSignal(t *testing.T) {
	store := newStubUserStore()
	m := newTestUserManager(store)
	created := m.Create(context.Background(), &domain.User{UserName: "jane", Email: "jane@example.com"}, "pw")

	if res := m.Delete(context.Background(), created.Data.ID); !res.IsSuccess {
		t.Fatalf("delete failed: %q", res.Error)
	}
	if res := m.Delete(context.Background(), created.Data.ID); res.IsSuccess {
		t.Fatalf("second delete must fail")
	}
}

func TestUserManager_Update_UnknownID(t *testing.T) {
	m := newTestUserManager(newStubUserStore())

	res := m.Update(context.Background(), &domain.User{ID: 42, Email: "x@example.com"})
	if res.IsSuccess || res.Error != "User is not found." {
		t.Fatalf("expected User is not found., got %+v", res)
	}
}

func TestUserManager_EmailExists(t *testing.T) {
	store := newStubUserStore()
	m := newTestUserManager(store)
	m.Create(context.Background(), &domain.User{UserName: "jane", Email: "jane@example.com"}, "pw")

	if res := m.EmailExists(context.Background(), "jane@example.com"); !res.IsSuccess || !res.Data {
		t.Fatalf("expected Success(true), got %+v", res)
	}
	// Absence is an answer, not an error.
	if res := m.EmailExists(context.Background(), "ghost@example.com"); !res.IsSuccess || res.Data {
		t.Fatalf("expected Success(false), got %+v", res)
	}
}
