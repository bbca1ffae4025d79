package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fittracker/user-service/internal/api/handler"
	"github.com/fittracker/user-service/internal/core/domain"
	"github.com/fittracker/user-service/internal/core/service"
)

// ---------------------------------------------------------------------------
// In-memory repository for full-stack tests
// ---------------------------------------------------------------------------

type memoryUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byID: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memoryUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email && u.ID != user.ID {
			return nil, &domain.DuplicateEmailError{Email: user.Email}
		}
	}
	clone := *user
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("user-%04d", r.nextID)
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memoryUserRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// newTestServer wires real routes, error handling, and service logic over
// the in-memory repository. The prometheus middleware is left out: its
// collectors register globally and would collide across test runs.
func newTestServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	svc := service.NewUserService(newMemoryUserRepo(), nil, zerolog.Nop())
	registerUserRoutes(e, handler.NewUserHandler(svc))
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// TestUserLifecycle walks the create → lookup → conflict → delete → 404
// sequence through the full HTTP stack.
func TestUserLifecycle(t *testing.T) {
	e := newTestServer()

	// Create Jane.
	rec := doJSON(e, http.MethodPost, "/v1/users",
		`{"firstName":"Jane","lastName":"Doe","birthdate":"1999-06-15","email":"jane@x.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("create: invalid json: %v", err)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("create: expected assigned id, got %+v", created)
	}

	// Email filter returns exactly one {id, email} entry.
	rec = doJSON(e, http.MethodGet, "/v1/users/email?email=jane%40x.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("email filter: expected 200, got %d", rec.Code)
	}
	var entries []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("email filter: invalid json: %v", err)
	}
	if len(entries) != 1 || entries[0]["id"] != id || entries[0]["email"] != "jane@x.com" {
		t.Fatalf("email filter: unexpected entries %+v", entries)
	}
	if len(entries[0]) != 2 {
		t.Fatalf("email view must carry exactly id and email: %+v", entries[0])
	}

	// Second create with the same email conflicts, with the exact body.
	rec = doJSON(e, http.MethodPost, "/v1/users",
		`{"firstName":"John","lastName":"Smith","birthdate":"1985-01-01","email":"jane@x.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate create: expected 409, got %d", rec.Code)
	}
	if rec.Body.String() != "Email jane@x.com is already in use." {
		t.Fatalf("duplicate create: unexpected body %q", rec.Body.String())
	}

	// Delete Jane.
	rec = doJSON(e, http.MethodDelete, "/v1/users/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}

	// Jane is gone.
	rec = doJSON(e, http.MethodGet, "/v1/users/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
	want := fmt.Sprintf("User with ID=%s was not found", id)
	if rec.Body.String() != want {
		t.Fatalf("get after delete: unexpected body %q, want %q", rec.Body.String(), want)
	}
}

func TestRouter_UpdateKeepsUntouchedFields(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/v1/users",
		`{"firstName":"Jane","lastName":"Doe","birthdate":"1999-06-15","email":"jane@x.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}
	var created map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	id := created["id"].(string)

	rec = doJSON(e, http.MethodPut, "/v1/users/"+id, `{"email":"jane.doe@x.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var updated map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("update: invalid json: %v", err)
	}
	if updated["email"] != "jane.doe@x.com" {
		t.Fatalf("update: email not applied: %+v", updated)
	}
	if updated["firstName"] != "Jane" || updated["lastName"] != "Doe" || updated["birthdate"] != "1999-06-15" {
		t.Fatalf("update: untouched fields changed: %+v", updated)
	}
}

func TestRouter_UpdateConflictOnForeignEmail(t *testing.T) {
	e := newTestServer()

	doJSON(e, http.MethodPost, "/v1/users",
		`{"firstName":"Jane","lastName":"Doe","birthdate":"1999-06-15","email":"jane@x.com"}`)
	rec := doJSON(e, http.MethodPost, "/v1/users",
		`{"firstName":"John","lastName":"Smith","birthdate":"1985-01-01","email":"john@x.com"}`)
	var created map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	johnID := created["id"].(string)

	rec = doJSON(e, http.MethodPut, "/v1/users/"+johnID, `{"email":"jane@x.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if rec.Body.String() != "Email jane@x.com is already in use." {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	// Re-submitting one's own email is not a conflict.
	rec = doJSON(e, http.MethodPut, "/v1/users/"+johnID, `{"email":"john@x.com","firstName":"Johnny"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("own email re-submit: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestRouter_OlderThanFiltersStrictly(t *testing.T) {
	e := newTestServer()

	seed := []string{
		`{"firstName":"A","lastName":"A","birthdate":"1979-12-31","email":"older@x.com"}`,
		`{"firstName":"B","lastName":"B","birthdate":"1980-01-01","email":"exact@x.com"}`,
		`{"firstName":"C","lastName":"C","birthdate":"1980-01-02","email":"younger@x.com"}`,
	}
	for _, body := range seed {
		if rec := doJSON(e, http.MethodPost, "/v1/users", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed: expected 201, got %d", rec.Code)
		}
	}

	rec := doJSON(e, http.MethodGet, "/v1/users/older/1980-01-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 1 || users[0]["email"] != "older@x.com" {
		t.Fatalf("expected only the strictly older user, got %+v", users)
	}

	rec = doJSON(e, http.MethodGet, "/v1/users/older/01-01-1980", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: expected 400, got %d", rec.Code)
	}
}

func TestRouter_CreateWithPresetIDRejected(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/v1/users",
		`{"id":"user-0099","firstName":"Jane","lastName":"Doe","birthdate":"1999-06-15","email":"jane@x.com"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "database id") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	// The store stayed empty.
	rec = doJSON(e, http.MethodGet, "/v1/users", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("store changed on rejected create: %s", rec.Body.String())
	}
}

func TestRouter_SimpleListView(t *testing.T) {
	e := newTestServer()

	doJSON(e, http.MethodPost, "/v1/users",
		`{"firstName":"Jane","lastName":"Doe","birthdate":"1999-06-15","email":"jane@x.com"}`)

	rec := doJSON(e, http.MethodGet, "/v1/users/simple", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 1 || len(users[0]) != 3 {
		t.Fatalf("simple view must carry exactly id and names: %+v", users)
	}
}
