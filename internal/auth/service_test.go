package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"eventbook/internal/shared/apierror"
	"eventbook/internal/shared/config"
	"eventbook/internal/users"
)

type fakeUserRepository struct {
	byID    map[uuid.UUID]*users.User
	byPhone map[string]*users.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[uuid.UUID]*users.User),
		byPhone: make(map[string]*users.User),
	}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *users.User) error {
	stored := *user
	f.byID[user.ID] = &stored
	f.byPhone[user.Phone] = &stored
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) GetUserByPhone(_ context.Context, phone string) (*users.User, error) {
	user, ok := f.byPhone[phone]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) PhoneExists(_ context.Context, phone string) (bool, error) {
	_, ok := f.byPhone[phone]
	return ok, nil
}

func (f *fakeUserRepository) UpdateUserPassword(_ context.Context, id uuid.UUID, hashedPassword string) error {
	user, ok := f.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeUserRepository) GetUsersByRole(_ context.Context, role users.Role) ([]users.User, error) {
	var result []users.User
	for _, user := range f.byID {
		if user.Role == role {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (f *fakeUserRepository) SearchUsers(_ context.Context, term string) ([]users.User, error) {
	var result []users.User
	lowered := strings.ToLower(term)
	for _, user := range f.byID {
		if strings.Contains(strings.ToLower(user.Name), lowered) ||
			strings.Contains(strings.ToLower(user.Email), lowered) ||
			strings.Contains(user.Phone, term) {
			result = append(result, *user)
		}
	}
	return result, nil
}

func newAuthTestService() (Service, *fakeUserRepository) {
	repo := newFakeUserRepository()
	tokens := NewTokenService(config.JWTConfig{
		Secret:    "auth-test-secret",
		ExpiresIn: time.Hour,
	})
	return NewService(repo, tokens), repo
}

func wantStatus(t *testing.T, err error, status int, fragment string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %d %q, got nil", status, fragment)
	}
	apiErr := apierror.From(err)
	if apiErr.StatusCode != status {
		t.Fatalf("status = %d, want %d (err: %v)", apiErr.StatusCode, status, err)
	}
	if fragment != "" && !strings.Contains(apiErr.Message, fragment) {
		t.Fatalf("message = %q, want it to contain %q", apiErr.Message, fragment)
	}
}

func validSignUp() *SignUpRequest {
	return &SignUpRequest{
		Name:     "Asha Rao",
		Phone:    "9000000002",
		Email:    "asha@example.com",
		Password: "password1",
	}
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, _ := newAuthTestService()

	user, err := svc.SignUp(context.Background(), validSignUp())
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if user.Role != users.RoleUser {
		t.Errorf("Role = %s, want %s", user.Role, users.RoleUser)
	}
	if user.Password != "" {
		t.Error("SignUp() echoed the password hash")
	}

	resp, err := svc.SignIn(context.Background(), &SignInRequest{
		Phone:    "9000000002",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if resp.Token == "" {
		t.Error("SignIn() returned an empty token")
	}
	if resp.User.Password != "" {
		t.Error("SignIn() echoed the password hash")
	}
	if !svc.Tokens().Validate(resp.Token) {
		t.Error("issued token does not validate")
	}
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := newAuthTestService()

	tests := []struct {
		name    string
		mutate  func(*SignUpRequest)
		message string
	}{
		{"missing name", func(r *SignUpRequest) { r.Name = " " }, "Name is required"},
		{"missing email", func(r *SignUpRequest) { r.Email = "" }, "Email is required"},
		{"bad email", func(r *SignUpRequest) { r.Email = "not-an-email" }, "Invalid email format"},
		{"missing password", func(r *SignUpRequest) { r.Password = "" }, "Password is required"},
		{"short password", func(r *SignUpRequest) { r.Password = "abc" }, "Password must be at least 6 characters long"},
		{"missing phone", func(r *SignUpRequest) { r.Phone = "" }, "Phone is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignUp()
			tt.mutate(req)
			_, err := svc.SignUp(context.Background(), req)
			wantStatus(t, err, 400, tt.message)
		})
	}
}

func TestSignUpDuplicatePhone(t *testing.T) {
	svc, _ := newAuthTestService()

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	_, err := svc.SignUp(context.Background(), validSignUp())
	wantStatus(t, err, 409, "User already exists: 9000000002")
}

func TestSignInInvalidCredentials(t *testing.T) {
	svc, _ := newAuthTestService()

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	// Unknown phone and wrong password are indistinguishable to the caller.
	_, err := svc.SignIn(context.Background(), &SignInRequest{Phone: "0000000000", Password: "password1"})
	wantStatus(t, err, 401, "Invalid credentials")

	_, err = svc.SignIn(context.Background(), &SignInRequest{Phone: "9000000002", Password: "wrong"})
	wantStatus(t, err, 401, "Invalid credentials")
}

func TestGetUserFromToken(t *testing.T) {
	svc, _ := newAuthTestService()

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	resp, err := svc.SignIn(context.Background(), &SignInRequest{
		Phone:    "9000000002",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	user, err := svc.GetUser(context.Background(), "Bearer "+resp.Token)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.Phone != "9000000002" {
		t.Errorf("Phone = %q, want 9000000002", user.Phone)
	}

	_, err = svc.GetUser(context.Background(), "")
	wantStatus(t, err, 401, "Authorization header is missing")

	_, err = svc.GetUser(context.Background(), "Bearer nonsense")
	wantStatus(t, err, 401, "Invalid or expired token")
}

func TestUpdateUserPassword(t *testing.T) {
	svc, _ := newAuthTestService()

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	resp, err := svc.SignIn(context.Background(), &SignInRequest{
		Phone:    "9000000002",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	header := "Bearer " + resp.Token

	err = svc.UpdateUserPassword(context.Background(), header, &UpdatePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword",
	})
	wantStatus(t, err, 401, "Current password is incorrect")

	err = svc.UpdateUserPassword(context.Background(), header, &UpdatePasswordRequest{
		CurrentPassword: "password1",
		NewPassword:     "short",
	})
	wantStatus(t, err, 400, "New password must be at least 6 characters long")

	if err := svc.UpdateUserPassword(context.Background(), header, &UpdatePasswordRequest{
		CurrentPassword: "password1",
		NewPassword:     "newpassword",
	}); err != nil {
		t.Fatalf("UpdateUserPassword() error = %v", err)
	}

	if _, err := svc.SignIn(context.Background(), &SignInRequest{
		Phone:    "9000000002",
		Password: "newpassword",
	}); err != nil {
		t.Fatalf("SignIn() with new password error = %v", err)
	}
	_, err = svc.SignIn(context.Background(), &SignInRequest{
		Phone:    "9000000002",
		Password: "password1",
	})
	wantStatus(t, err, 401, "Invalid credentials")
}

func TestGetAllUsersListsCustomersOnly(t *testing.T) {
	svc, _ := newAuthTestService()

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	admin := validSignUp()
	admin.Phone = "9000000001"
	admin.Email = "admin@eventbook.dev"
	admin.Role = "ADMIN"
	if _, err := svc.SignUp(context.Background(), admin); err != nil {
		t.Fatalf("SignUp(admin) error = %v", err)
	}

	list, err := svc.GetAllUsers(context.Background(), "")
	if err != nil {
		t.Fatalf("GetAllUsers() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1 (admins excluded)", len(list))
	}
	if list[0].Password != "" {
		t.Error("GetAllUsers() echoed a password hash")
	}

	// Search spans every role.
	list, err = svc.GetAllUsers(context.Background(), "eventbook.dev")
	if err != nil {
		t.Fatalf("GetAllUsers(search) error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(search) = %d, want 1", len(list))
	}
}
