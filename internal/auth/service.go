package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"eventbook/internal/shared/apierror"
	"eventbook/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidToken = errors.New("invalid token")
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

type Service interface {
	SignUp(ctx context.Context, req *SignUpRequest) (*users.User, error)
	SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error)
	GetUser(ctx context.Context, authHeader string) (*users.User, error)
	UpdateUserPassword(ctx context.Context, authHeader string, req *UpdatePasswordRequest) error
	GetAllUsers(ctx context.Context, searchTerm string) ([]users.User, error)

	Tokens() *TokenService
}

type service struct {
	repo   Repository
	tokens *TokenService
}

func NewService(repo Repository, tokens *TokenService) Service {
	return &service{
		repo:   repo,
		tokens: tokens,
	}
}

// Tokens exposes the token service so other components (middleware, the
// booking engine) share a single validation path.
func (s *service) Tokens() *TokenService {
	return s.tokens
}

// BearerToken strips an optional "Bearer " prefix; the raw token is accepted
// as-is otherwise.
func BearerToken(authHeader string) string {
	header := strings.TrimSpace(authHeader)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return header
}

func (s *service) SignUp(ctx context.Context, req *SignUpRequest) (*users.User, error) {
	if err := validateSignUp(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.PhoneExists(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierror.Conflict("User already exists: " + req.Phone)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := strings.ToUpper(req.Role)
	if !users.IsValidRole(role) {
		role = string(users.RoleUser)
	}

	user := &users.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     users.Role(role),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

func validateSignUp(req *SignUpRequest) error {
	if req == nil {
		return apierror.BadRequest("User data cannot be null")
	}
	if strings.TrimSpace(req.Name) == "" {
		return apierror.BadRequest("Name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return apierror.BadRequest("Email is required")
	}
	if !emailPattern.MatchString(req.Email) {
		return apierror.BadRequest("Invalid email format")
	}
	if req.Password == "" {
		return apierror.BadRequest("Password is required")
	}
	if len(req.Password) < 6 {
		return apierror.BadRequest("Password must be at least 6 characters long")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return apierror.BadRequest("Phone is required")
	}
	return nil
}

func (s *service) SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error) {
	user, err := s.repo.GetUserByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apierror.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apierror.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID.String(), user.Phone, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &SignInResponse{
		User:  user.Sanitize(),
		Token: token,
	}, nil
}

// resolveUserID runs the credential ladder shared by every token-gated
// operation: header present, token valid, user id extractable.
func (s *service) resolveUserID(authHeader string) (uuid.UUID, error) {
	if strings.TrimSpace(authHeader) == "" {
		return uuid.Nil, apierror.Unauthorized("Authorization header is missing")
	}

	token := BearerToken(authHeader)
	if !s.tokens.Validate(token) {
		return uuid.Nil, apierror.Unauthorized("Invalid or expired token")
	}

	userID := s.tokens.ExtractUserID(token)
	if userID == "" {
		return uuid.Nil, apierror.Unauthorized("Unable to extract user ID from token")
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, apierror.Unauthorized("Unable to extract user ID from token")
	}
	return id, nil
}

func (s *service) GetUser(ctx context.Context, authHeader string) (*users.User, error) {
	id, err := s.resolveUserID(authHeader)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apierror.NotFound("User not found")
		}
		return nil, err
	}

	return user.Sanitize(), nil
}

func (s *service) UpdateUserPassword(ctx context.Context, authHeader string, req *UpdatePasswordRequest) error {
	id, err := s.resolveUserID(authHeader)
	if err != nil {
		return err
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apierror.NotFound("User not found")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return apierror.Unauthorized("Current password is incorrect")
	}

	if len(req.NewPassword) < 6 {
		return apierror.BadRequest("New password must be at least 6 characters long")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdateUserPassword(ctx, id, string(hashedPassword))
}

func (s *service) GetAllUsers(ctx context.Context, searchTerm string) ([]users.User, error) {
	var (
		result []users.User
		err    error
	)

	if term := strings.TrimSpace(searchTerm); term != "" {
		result, err = s.repo.SearchUsers(ctx, term)
	} else {
		result, err = s.repo.GetUsersByRole(ctx, users.RoleUser)
	}
	if err != nil {
		return nil, err
	}

	for i := range result {
		result[i].Sanitize()
	}
	return result, nil
}
