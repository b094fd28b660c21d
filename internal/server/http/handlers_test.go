package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/psidorov/interviewhub/internal/common"
	"github.com/psidorov/interviewhub/internal/dbx"
	"github.com/psidorov/interviewhub/internal/logging"
	"github.com/psidorov/interviewhub/internal/server/config"
	"github.com/psidorov/interviewhub/internal/server/models"
	"github.com/psidorov/interviewhub/internal/server/ratelimit"
	usersrepo "github.com/psidorov/interviewhub/internal/server/repositories/users"
	"github.com/psidorov/interviewhub/internal/server/services"
)

// ---- fakes ----

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail: map[string]*models.User{},
		byID:    map[string]*models.User{},
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if u.ID == "" {
		u.ID = fmt.Sprintf("id-%d", len(f.byID)+1)
	}
	u.IsActive = true
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) RecordLogin(ctx context.Context, id string, at time.Time) error {
	if u, ok := f.byID[id]; ok {
		u.LastLogin = &at
		u.UpdatedAt = at
		u.LoginCount++
	}
	return nil
}

type fakeRepoManager struct {
	users *fakeUsersRepo
}

func (f *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return f.users }
func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

// ---- helpers ----

func newTestHandler(t *testing.T) (http.Handler, *fakeUsersRepo) {
	t.Helper()

	repo := newFakeUsersRepo()
	cfg := &config.Config{
		SecretKey:     "test-secret",
		TokenValidity: time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}
	as := services.NewAuthService(nil, &fakeRepoManager{users: repo}, cfg)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(testWriter{t}, nil)))
	srv := NewServer(":0", logger, as, ratelimit.New())
	return srv.Handler(), repo
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func signupBody() map[string]string {
	return map[string]string{
		"name":     "Ann Lee",
		"email":    "ann@x.com",
		"password": "Abcdef1!",
		"role":     "candidate",
	}
}

func checkSecurityHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	require.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"))
}

// ---- tests ----

func TestSignupSigninProfile_Scenario(t *testing.T) {
	h, _ := newTestHandler(t)

	// Signup.
	rec := doJSON(t, h, http.MethodPost, "/api/signup", signupBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	checkSecurityHeaders(t, rec)
	require.JSONEq(t, `{"message":"User created successfully"}`, rec.Body.String())

	// Same identity again, different case: still a duplicate.
	dup := signupBody()
	dup["email"] = "Ann@X.com"
	rec = doJSON(t, h, http.MethodPost, "/api/signup", dup, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"message":"Email already registered. Please sign in."}`, rec.Body.String())

	// Signin.
	rec = doJSON(t, h, http.MethodPost, "/api/signin", map[string]string{
		"email": "ann@x.com", "password": "Abcdef1!",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	checkSecurityHeaders(t, rec)

	var signin struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signin))
	require.NotEmpty(t, signin.Token)
	require.Equal(t, "candidate", signin.Role)
	require.Equal(t, "ann@x.com", signin.Email)
	require.Equal(t, "Ann Lee", signin.Name)

	// Profile with the issued token.
	rec = doJSON(t, h, http.MethodGet, "/api/auth/profile", nil, map[string]string{
		"Authorization": "Bearer " + signin.Token,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	checkSecurityHeaders(t, rec)

	var profile struct {
		UserID         string `json:"user_id"`
		Name           string `json:"name"`
		Email          string `json:"email"`
		Role           string `json:"role"`
		InterviewCount int64  `json:"interview_count"`
		CreatedAt      string `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.NotEmpty(t, profile.UserID)
	require.Equal(t, int64(0), profile.InterviewCount)
	require.Equal(t, "ann@x.com", profile.Email)
	_, err := time.Parse(time.RFC3339, profile.CreatedAt)
	require.NoError(t, err, "created_at must be RFC3339")

	// The password hash must never appear in any response.
	require.NotContains(t, rec.Body.String(), "password")
}

func TestSignup_ValidationFailure(t *testing.T) {
	h, _ := newTestHandler(t)

	body := signupBody()
	body["password"] = "weak"
	body["role"] = "manager"

	rec := doJSON(t, h, http.MethodPost, "/api/signup", body, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errs))
	require.NotEmpty(t, errs["password"])
	require.NotEmpty(t, errs["role"])
}

func TestSignup_MalformedBody(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/signup", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	checkSecurityHeaders(t, rec)
}

func TestSignup_StorageFailure(t *testing.T) {
	h, repo := newTestHandler(t)
	repo.createErr = fmt.Errorf("connection refused")

	rec := doJSON(t, h, http.MethodPost, "/api/signup", signupBody(), nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Error creating user", body["message"])
	require.NotEmpty(t, body["error"])
}

func TestSignin_GenericUnauthorizedBody(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/signup", signupBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	unknown := doJSON(t, h, http.MethodPost, "/api/signin", map[string]string{
		"email": "ghost@x.com", "password": "Abcdef1!",
	}, nil)
	wrong := doJSON(t, h, http.MethodPost, "/api/signin", map[string]string{
		"email": "ann@x.com", "password": "WrongPass1!",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, unknown.Body.String(), wrong.Body.String(),
		"unknown account and wrong password must be indistinguishable")
}

func TestProfile_TokenFailures(t *testing.T) {
	h, repo := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/auth/profile", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Token is missing!"}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/api/auth/profile", nil, map[string]string{
		"Authorization": "Bearer garbage",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Token is invalid!"}`, rec.Body.String())

	// Valid token for an account that has since disappeared.
	rec = doJSON(t, h, http.MethodPost, "/api/signup", signupBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/api/signin", map[string]string{
		"email": "ann@x.com", "password": "Abcdef1!",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var signin struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signin))

	repo.byEmail = map[string]*models.User{}
	repo.byID = map[string]*models.User{}

	rec = doJSON(t, h, http.MethodGet, "/api/auth/profile", nil, map[string]string{
		"Authorization": "Bearer " + signin.Token,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Token is invalid!"}`, rec.Body.String())
}

func TestSignup_RateLimitedBeforeValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	// Invalid payload: the first five attempts reach validation and fail
	// with 400, the sixth is rejected by the limiter without being read.
	bad := map[string]string{"name": "A"}

	for i := 0; i < 5; i++ {
		rec := doJSON(t, h, http.MethodPost, "/api/signup", bad, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, "request %d", i+1)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/signup", bad, nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	checkSecurityHeaders(t, rec)
}

func TestUnknownRoute_CarriesSecurityHeaders(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/nope", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	checkSecurityHeaders(t, rec)
}
