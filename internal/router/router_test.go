package router

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/progressclasses/classes-backend/internal/config"
	"github.com/progressclasses/classes-backend/internal/handler"
	"github.com/progressclasses/classes-backend/internal/middleware"
	"github.com/progressclasses/classes-backend/internal/service"
	"github.com/progressclasses/classes-backend/internal/storetest"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(t *testing.T, loginLimit int) *gin.Engine {
	t.Helper()
	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "logo.txt"), []byte("logo"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		GinMode:       gin.TestMode,
		JWTSecret:     "router-secret",
		AdminTokenTTL: 2 * time.Hour,
		BcryptCost:    bcrypt.MinCost,
		StaticDir:     staticDir,
	}
	log := zerolog.New(io.Discard)

	db := storetest.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	db.SetPasswordHash(string(hash))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	authService := service.NewAuthService(cfg, db.Credential(), log)
	handlers := &Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Course:  handler.NewCourseHandler(service.NewCourseService(db.Courses(), log)),
		Faculty: handler.NewFacultyHandler(service.NewFacultyService(db.Faculty(), db.Assignments(), log)),
		Enquiry: handler.NewEnquiryHandler(service.NewEnquiryService(db.Enquiries(), log)),
	}
	limiters := Limiters{
		Login:   middleware.NewRateLimiter(rdb, "login", loginLimit, time.Hour, log),
		Enquiry: middleware.NewRateLimiter(rdb, "enquiry", 100, time.Minute, log),
	}
	return SetupRouter(authService, handlers, limiters, cfg, log)
}

func serve(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func extractToken(t *testing.T, body string) string {
	t.Helper()
	const key = `"token":"`
	i := strings.Index(body, key)
	if i < 0 {
		t.Fatalf("no token in %s", body)
	}
	rest := body[i+len(key):]
	return rest[:strings.IndexByte(rest, '"')]
}

func TestBannerAndHealth(t *testing.T) {
	r := testRouter(t, 10)

	w := serve(r, http.MethodGet, "/", "", "")
	if w.Code != http.StatusOK || w.Body.String() != Banner {
		t.Fatalf("GET / = %d %q", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("GET /health = %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID")
	}
}

func TestStaticFilesAreCacheable(t *testing.T) {
	r := testRouter(t, 10)

	w := serve(r, http.MethodGet, "/public/logo.txt", "", "")
	if w.Code != http.StatusOK || w.Body.String() != "logo" {
		t.Fatalf("GET /public/logo.txt = %d %q", w.Code, w.Body.String())
	}
	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=86400") {
		t.Fatalf("Cache-Control = %q", cc)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := testRouter(t, 10)

	protected := []struct{ method, path string }{
		{http.MethodPatch, "/admin/password"},
		{http.MethodGet, "/admin/course"},
		{http.MethodPost, "/admin/course"},
		{http.MethodPatch, "/admin/course/X"},
		{http.MethodDelete, "/admin/course/X"},
		{http.MethodGet, "/admin/faculty"},
		{http.MethodPost, "/admin/faculty"},
		{http.MethodPatch, "/admin/faculty/1"},
		{http.MethodDelete, "/admin/faculty/1"},
		{http.MethodPost, "/admin/faculty_course"},
		{http.MethodDelete, "/admin/faculty/1/courses/X"},
		{http.MethodGet, "/admin/enquiry"},
		{http.MethodPatch, "/admin/enquiry/1"},
		{http.MethodDelete, "/admin/enquiry/1"},
	}
	for _, p := range protected {
		w := serve(r, p.method, p.path, "{}", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token = %d, want 401", p.method, p.path, w.Code)
		}
	}

	for _, path := range []string{"/course", "/faculty", "/enquiry"} {
		if w := serve(r, http.MethodGet, path, "", ""); w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
	}
}

func TestLoginThenAdminAccess(t *testing.T) {
	r := testRouter(t, 10)

	w := serve(r, http.MethodPost, "/admin/login", `{"password":"letmein"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d %s", w.Code, w.Body.String())
	}
	token := extractToken(t, w.Body.String())

	w = serve(r, http.MethodPost, "/admin/course", `{"id":"BIO","name":"Biology","level":"beginner"}`, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create course = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodGet, "/admin/course", "", token)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"course_id":"BIO"`) {
		t.Fatalf("admin course list = %d %s", w.Code, w.Body.String())
	}
	if cc := w.Header().Get("Cache-Control"); cc != middleware.NoStore {
		t.Fatalf("admin Cache-Control = %q", cc)
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	r := testRouter(t, 2)

	for i := 0; i < 2; i++ {
		if w := serve(r, http.MethodPost, "/admin/login", `{"password":"wrong"}`, ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d = %d, want 401", i+1, w.Code)
		}
	}
	w := serve(r, http.MethodPost, "/admin/login", `{"password":"letmein"}`, "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third attempt = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
}
