package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/tutoring-service/internal/auth"
	"github.com/spec-kit/tutoring-service/internal/config"
	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; !ok {
		return repository.ErrNotFound
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) delete(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byEmail, email)
}

type fakeTeacherRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.Teacher
	nextID int64
}

func newFakeTeacherRepo() *fakeTeacherRepo {
	return &fakeTeacherRepo{byID: make(map[int64]*domain.Teacher), nextID: 1}
}

func (r *fakeTeacherRepo) Create(_ context.Context, teacher *domain.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	teacher.ID = r.nextID
	r.nextID++
	r.byID[teacher.ID] = teacher
	return nil
}

func (r *fakeTeacherRepo) Update(_ context.Context, teacher *domain.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[teacher.ID]; !ok {
		return repository.ErrNotFound
	}
	r.byID[teacher.ID] = teacher
	return nil
}

func (r *fakeTeacherRepo) GetByID(_ context.Context, id int64) (*domain.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (r *fakeTeacherRepo) GetByUserID(_ context.Context, userID int64) (*domain.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byID {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTeacherRepo) List(_ context.Context) ([]*domain.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Teacher, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	return out, nil
}

func newTestAuthService(t *testing.T, users repository.UserRepository) *AuthService {
	t.Helper()
	cfg := config.Config{}
	cfg.Auth = config.AuthConfig{
		JWTSecret:             "unit-test-signing-secret-with-plenty-of-bytes",
		AccessTokenTTLMillis:  900000,
		RefreshTokenTTLMillis: 2592000000,
		BcryptCost:            4,
	}
	return NewAuthService(cfg, AuthDependencies{
		UserRepo:    users,
		TeacherRepo: newFakeTeacherRepo(),
		Blacklist:   auth.NewBlacklist(),
	}, zap.NewNop())
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password string, status domain.UserStatus, roles ...string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &domain.User{
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		Status:       status,
		Roles:        roles,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLoginNormalizesEmailAndIssuesPair(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)

	pair, err := svc.Login(context.Background(), "USER@Example.com ", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.User.Email != "user@example.com" {
		t.Errorf("email = %q, want normalized", pair.User.Email)
	}

	access, err := svc.Codec().Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("decode access: %v", err)
	}
	if access.Kind != auth.TokenKindAccess {
		t.Errorf("access kind = %q", access.Kind)
	}
	if access.Subject != "user@example.com" {
		t.Errorf("access subject = %q", access.Subject)
	}

	refresh, err := svc.Codec().Decode(pair.RefreshToken)
	if err != nil {
		t.Fatalf("decode refresh: %v", err)
	}
	if refresh.Kind != auth.TokenKindRefresh {
		t.Errorf("refresh kind = %q", refresh.Kind)
	}
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "secret")
	_, errWrongPw := svc.Login(context.Background(), "user@example.com", "wrong")

	if !errors.Is(errUnknown, auth.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", errUnknown)
	}
	if !errors.Is(errWrongPw, auth.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("error messages differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestLoginAccountStatus(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "blocked@example.com", "secret", domain.UserStatusBlocked, domain.RoleTeacher)
	seedUser(t, users, "inactive@example.com", "secret", domain.UserStatusInactive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)

	if _, err := svc.Login(context.Background(), "blocked@example.com", "secret"); !errors.Is(err, auth.ErrAccountBlocked) {
		t.Errorf("blocked err = %v", err)
	}
	if _, err := svc.Login(context.Background(), "inactive@example.com", "secret"); !errors.Is(err, auth.ErrAccountDisabled) {
		t.Errorf("inactive err = %v", err)
	}
}

func TestRefreshRotationInvalidatesOldToken(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)

	pair, err := svc.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, auth.ErrTokenRevoked) {
		t.Errorf("replayed refresh err = %v, want ErrTokenRevoked", err)
	}

	if _, err := svc.Refresh(context.Background(), rotated.RefreshToken); err != nil {
		t.Errorf("rotated refresh token rejected: %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)

	pair, err := svc.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("refresh with access token err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshRequiresLiveIdentity(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)

	pair, err := svc.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	users.delete("user@example.com")

	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("refresh for deleted identity err = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutRevokesAndIsIdempotent(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)

	pair, err := svc.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.Logout(pair.AccessToken, pair.RefreshToken)

	if _, err := svc.Validate(context.Background(), pair.AccessToken, auth.TokenKindAccess); !errors.Is(err, auth.ErrTokenRevoked) {
		t.Errorf("validate after logout err = %v, want ErrTokenRevoked", err)
	}
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, auth.ErrTokenRevoked) {
		t.Errorf("refresh after logout err = %v, want ErrTokenRevoked", err)
	}

	// Second logout with the same tokens, and with garbage, is harmless.
	svc.Logout(pair.AccessToken, pair.RefreshToken)
	svc.Logout("complete garbage", "")
	svc.Logout("", "")
}

func TestValidateEnforcesKind(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)

	pair, err := svc.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Validate(context.Background(), pair.RefreshToken, auth.TokenKindAccess); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("refresh-as-access err = %v, want ErrInvalidToken", err)
	}

	user, err := svc.Validate(context.Background(), pair.AccessToken, auth.TokenKindAccess)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Errorf("validated subject = %q", user.Email)
	}
}

func TestRegisterCreatesActiveTeacher(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(t, users)

	pair, err := svc.Register(context.Background(), " New@Example.COM", "secret", "New Teacher")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pair.User.Email != "new@example.com" {
		t.Errorf("email = %q, want normalized", pair.User.Email)
	}
	if pair.User.Status != domain.UserStatusActive {
		t.Errorf("status = %q", pair.User.Status)
	}
	if !pair.User.HasRole(domain.RoleTeacher) {
		t.Errorf("roles = %v, want TEACHER", pair.User.Roles)
	}

	if _, err := svc.Register(context.Background(), "new@example.com", "other", "Dup"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate register err = %v, want ErrEmailTaken", err)
	}
}
