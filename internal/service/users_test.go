package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/glum-catalog/backend/internal/auth"
	"github.com/glum-catalog/backend/internal/model"
)

type fakeUserStore struct {
	byUsername map[string]*model.User
	byID       map[int64]*model.User
	nextID     int64
	updated    *model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byUsername: make(map[string]*model.User),
		byID:       make(map[int64]*model.User),
		nextID:     1,
	}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	stored := *u
	stored.ID = f.nextID
	f.nextID++
	f.byUsername[stored.Username] = &stored
	f.byID[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if u, ok := f.byUsername[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeUserStore) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	for _, u := range f.byID {
		if u.PhoneNumber == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeUserStore) ListUsers(ctx context.Context, offset, limit int) ([]model.User, error) {
	return nil, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, u *model.User) (*model.User, error) {
	copied := *u
	f.updated = &copied
	f.byID[u.ID] = &copied
	f.byUsername[u.Username] = &copied
	return u, nil
}

func (f *fakeUserStore) MarkEmailVerified(ctx context.Context, email string) error {
	for _, u := range f.byID {
		if u.Email == email {
			u.EmailVerified = true
			return nil
		}
	}
	return model.ErrNotFound
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) EnqueueVerification(email, firstName string) {
	f.sent = append(f.sent, email)
}

func newUserRequest() model.CreateUserRequest {
	return model.CreateUserRequest{
		Username:    "b@x.com",
		Email:       "b@x.com",
		PhoneNumber: "3001234567",
		FirstName:   "Bea",
		LastName:    "Lopez",
		Password:    "secret123",
		Role:        "APP_USER",
	}
}

func TestCreateUserHashesPasswordAndNotifies(t *testing.T) {
	store := newFakeUserStore()
	notifier := &fakeNotifier{}
	svc := NewUserService(store, auth.NewPasswordHasher(), notifier)

	user, err := svc.Create(context.Background(), newUserRequest())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Fatalf("password was not hashed: %q", user.PasswordHash)
	}
	if !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Fatalf("expected bcrypt digest, got %q", user.PasswordHash)
	}
	if user.Status != model.StatusActive {
		t.Fatalf("expected active status, got %d", user.Status)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "b@x.com" {
		t.Fatalf("expected verification mail for b@x.com, got %v", notifier.sent)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, auth.NewPasswordHasher(), &fakeNotifier{})

	if _, err := svc.Create(context.Background(), newUserRequest()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.Create(context.Background(), newUserRequest())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateUserRejectsBadInput(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), auth.NewPasswordHasher(), &fakeNotifier{})

	req := newUserRequest()
	req.Password = "short"
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}

	req = newUserRequest()
	req.Role = "SUPER_ADMIN"
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestUpdateUserAppliesOnlyProvidedFields(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, auth.NewPasswordHasher(), &fakeNotifier{})

	created, err := svc.Create(context.Background(), newUserRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newFirst := "Beatriz"
	updated, err := svc.Update(context.Background(), created.ID, model.UserPatch{FirstName: &newFirst})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.FirstName != "Beatriz" {
		t.Fatalf("first name not applied: %q", updated.FirstName)
	}
	if updated.LastName != "Lopez" {
		t.Fatalf("last name should be untouched, got %q", updated.LastName)
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Fatalf("password digest should be untouched")
	}
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	store := newFakeUserStore()
	hasher := auth.NewPasswordHasher()
	svc := NewUserService(store, hasher, &fakeNotifier{})

	created, err := svc.Create(context.Background(), newUserRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPassword := "different-secret"
	updated, err := svc.Update(context.Background(), created.ID, model.UserPatch{Password: &newPassword})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.PasswordHash == created.PasswordHash {
		t.Fatalf("password digest should have changed")
	}
	if !hasher.Verify("different-secret", updated.PasswordHash) {
		t.Fatalf("new password does not verify against stored digest")
	}
}

func TestVerifyEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, auth.NewPasswordHasher(), &fakeNotifier{})

	created, err := svc.Create(context.Background(), newUserRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.VerifyEmail(context.Background(), created.Email); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := svc.VerifyEmail(context.Background(), "unknown@x.com"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEnsureAdminIdempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, auth.NewPasswordHasher(), &fakeNotifier{})

	if err := svc.EnsureAdmin(context.Background(), "admin@x.com", "admin-secret"); err != nil {
		t.Fatalf("first ensure failed: %v", err)
	}
	admin, err := store.GetUserByUsername(context.Background(), "admin@x.com")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Role != model.RoleSystemUser {
		t.Fatalf("expected SYSTEM_USER role, got %q", admin.Role)
	}

	if err := svc.EnsureAdmin(context.Background(), "admin@x.com", "admin-secret"); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
}
