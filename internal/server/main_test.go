package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"murmur/internal/auth"
	"murmur/internal/config"
	"murmur/internal/models"
	"murmur/internal/repository"
	"murmur/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Message{},
		&models.MessageLike{},
		&models.MessageDislike{},
		&models.Post{},
		&models.PostReaction{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret", JWTAlgorithm: "HS256"}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reactionRepo := repository.NewMessageReactionRepository(db)
	postRepo := repository.NewPostRepository(db)

	s := &Server{
		config:    cfg,
		db:        db,
		issuer:    auth.NewIssuer(cfg.JWTSecret, cfg.JWTAlgorithm),
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
	s.messageService = service.NewMessageService(messageRepo, userRepo, reactionRepo)
	s.feedback = service.NewFeedbackService(messageRepo, reactionRepo)
	s.postService = service.NewPostService(postRepo, db)

	app := fiber.New()
	s.SetupRoutes(app)

	return app, s, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	_ = resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 {
		// list endpoints return arrays; those tests decode raw themselves
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func newGetRequest(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func decodeArray(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("decode array: %v (%s)", err, raw)
	}
	return items
}

// signupAndSignin registers a user and returns its id and bearer token.
func signupAndSignin(t *testing.T, app *fiber.App, username string) (uint, string) {
	t.Helper()

	creds := map[string]string{"username": username, "password": "password123"}

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/signup", "", creds)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d", username, resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodPost, "/auth/signin", "", creds)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signin %s: expected 200, got %d", username, resp.StatusCode)
	}

	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("signin %s: missing access_token", username)
	}
	id, _ := body["id"].(float64)
	return uint(id), token
}
