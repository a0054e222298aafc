package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tutoring-service/internal/api/http"
	"github.com/spec-kit/tutoring-service/internal/api/http/handlers"
	"github.com/spec-kit/tutoring-service/internal/auth"
	"github.com/spec-kit/tutoring-service/internal/config"
	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/observability"
	"github.com/spec-kit/tutoring-service/internal/repository"
	"github.com/spec-kit/tutoring-service/internal/service"
)

type memUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type memTeacherRepo struct{}

func (memTeacherRepo) Create(_ context.Context, _ *domain.Teacher) error { return nil }
func (memTeacherRepo) Update(_ context.Context, _ *domain.Teacher) error { return nil }
func (memTeacherRepo) GetByID(_ context.Context, _ int64) (*domain.Teacher, error) {
	return nil, repository.ErrNotFound
}
func (memTeacherRepo) GetByUserID(_ context.Context, _ int64) (*domain.Teacher, error) {
	return nil, repository.ErrNotFound
}
func (memTeacherRepo) List(_ context.Context) ([]*domain.Teacher, error) { return nil, nil }

// newLoginApp stands up the login route behind the real middleware stack so
// error responses take the same shape they do in production.
func newLoginApp(t *testing.T, users repository.UserRepository) *fiber.App {
	t.Helper()
	cfg := config.Config{}
	cfg.Auth = config.AuthConfig{
		JWTSecret:             "unit-test-signing-secret-with-plenty-of-bytes",
		AccessTokenTTLMillis:  900000,
		RefreshTokenTTLMillis: 2592000000,
		BcryptCost:            4,
	}
	svc := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:    users,
		TeacherRepo: memTeacherRepo{},
		Blacklist:   auth.NewBlacklist(),
	}, zap.NewNop())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Post("/auth/login", handlers.NewAuthHandler(svc).Login)
	return app
}

func seedLoginUser(t *testing.T, users *memUserRepo, email, password string, status domain.UserStatus) {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := users.Create(context.Background(), &domain.User{
		Email:        email,
		PasswordHash: hash,
		Status:       status,
		Roles:        []string{domain.RoleTeacher},
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func postLogin(t *testing.T, app *fiber.App, email, password string) (int, []byte) {
	t.Helper()
	payload, err := json.Marshal(fiber.Map{"email": email, "password": password})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeErrorBody(t *testing.T, raw []byte) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
	return body
}

func TestLoginRejectionStatusCodes(t *testing.T) {
	users := newMemUserRepo()
	seedLoginUser(t, users, "active@example.com", "secret", domain.UserStatusActive)
	seedLoginUser(t, users, "inactive@example.com", "secret", domain.UserStatusInactive)
	seedLoginUser(t, users, "blocked@example.com", "secret", domain.UserStatusBlocked)
	app := newLoginApp(t, users)

	cases := []struct {
		name       string
		email      string
		password   string
		wantStatus int
		wantCode   string
	}{
		{"wrong password", "active@example.com", "wrong", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"disabled account", "inactive@example.com", "secret", http.StatusForbidden, "FORBIDDEN"},
		{"blocked account", "blocked@example.com", "secret", http.StatusLocked, "LOCKED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := postLogin(t, app, tc.email, tc.password)
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
			body := decodeErrorBody(t, raw)
			if body.Error.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", body.Error.Code, tc.wantCode)
			}
			if body.Error.Message != "authentication failed" {
				t.Errorf("message = %q; all login rejections must read the same", body.Error.Message)
			}
		})
	}
}

func TestLoginUnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	users := newMemUserRepo()
	seedLoginUser(t, users, "active@example.com", "secret", domain.UserStatusActive)
	app := newLoginApp(t, users)

	unknownStatus, unknownBody := postLogin(t, app, "nobody@example.com", "secret")
	wrongStatus, wrongBody := postLogin(t, app, "active@example.com", "wrong")

	if unknownStatus != http.StatusUnauthorized || wrongStatus != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", unknownStatus, wrongStatus)
	}
	if !bytes.Equal(unknownBody, wrongBody) {
		t.Errorf("bodies differ:\n%s\n%s", unknownBody, wrongBody)
	}
}
