package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"keygate.backend/internal/domain/entities"
	"keygate.backend/internal/infrastructure/repositories"
	"keygate.backend/internal/interfaces/http/handlers"
	"keygate.backend/internal/interfaces/http/middleware"
	"keygate.backend/internal/usecases"
	"keygate.backend/pkg/crypto"
)

// ownerAs stands in for the identity collaborator: it injects the given
// owner into the request context the way AuthMiddleware would.
func ownerAs(ownerID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.OwnerIDKey, ownerID)
		c.Next()
	}
}

func newHandlerTestRouter(t *testing.T, ownerID uuid.UUID) (*gin.Engine, *usecases.ApiKeyUsecase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE api_keys (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		key_hash TEXT NOT NULL UNIQUE,
		key_masked TEXT NOT NULL,
		revoked BOOLEAN NOT NULL DEFAULT FALSE,
		revoked_at DATETIME,
		last_used_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`).Error)

	uc := usecases.NewApiKeyUsecase(repositories.NewApiKeyRepository(db), nil, 3)
	h := handlers.NewApiKeyHandler(uc)

	r := gin.New()
	keys := r.Group("/api/v1/keys", ownerAs(ownerID))
	keys.POST("", h.CreateKey)
	keys.GET("", h.ListKeys)
	keys.DELETE("", h.RevokeKey)
	return r, uc
}

type keyItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Masked    string    `json:"masked"`
	CreatedAt time.Time `json:"createdAt"`
	Revoked   bool      `json:"revoked"`
}

func listKeys(t *testing.T, r *gin.Engine) []keyItem {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/keys", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []keyItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Items
}

func TestApiKeyHandler_CreateListRevokeScenario(t *testing.T) {
	ownerID := uuid.New()
	r, uc := newHandlerTestRouter(t, ownerID)

	// Create
	req := httptest.NewRequest(http.MethodPost, "/api/v1/keys", strings.NewReader(`{"name":"production"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.True(t, strings.HasPrefix(created.Key, crypto.KeyPrefix))

	// List shows the masked form, never the plaintext
	items := listKeys(t, r)
	require.Len(t, items, 1)
	require.Equal(t, created.ID, items[0].ID)
	require.Equal(t, "production", items[0].Name)
	require.Equal(t, crypto.MaskKey(created.Key), items[0].Masked)
	require.False(t, items[0].Revoked)
	require.NotContains(t, items[0].Masked, created.Key[len(crypto.KeyPrefix):len(created.Key)-4])

	// Revoke
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/keys?keyId="+created.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())

	// The record survives revocation; it is flagged, not deleted.
	items = listKeys(t, r)
	require.Len(t, items, 1)
	require.True(t, items[0].Revoked)

	// The plaintext no longer authenticates.
	_, err := uc.VerifyKey(req.Context(), created.Key)
	require.Error(t, err)
}

func TestApiKeyHandler_CreateValidation(t *testing.T) {
	r, _ := newHandlerTestRouter(t, uuid.New())

	for _, body := range []string{`{}`, `{"name":""}`, `{"name":"   "}`, `not-json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/keys", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code, "body=%s", body)
	}
}

func TestApiKeyHandler_RevokeUnknownOrForeign(t *testing.T) {
	ownerID := uuid.New()
	r, uc := newHandlerTestRouter(t, ownerID)

	// A key created by someone else.
	foreignOwner := uuid.New()
	foreign, err := uc.CreateKey(context.Background(), foreignOwner, &entities.CreateApiKeyInput{Name: "foreign"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/keys?keyId="+foreign.ID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	foreignBody := w.Body.String()

	// Unknown id: same status, same body. No existence oracle.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/keys?keyId="+uuid.NewString(), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, foreignBody, w.Body.String())

	// Malformed id is a plain validation failure.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/keys?keyId=nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// The foreign key is untouched.
	views, err := uc.ListKeys(context.Background(), foreignOwner)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.False(t, views[0].Revoked)
}
