package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"candidature-api/internal/client"
	"candidature-api/internal/metrics"
	"candidature-api/internal/service"
	"candidature-api/internal/session"
)

const testSecret = "test-secret"

// setupTestDB creates an in-memory sqlite database with the service schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	statements := []string{
		`CREATE TABLE candidatures (
			id TEXT PRIMARY KEY, created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			title_fr TEXT, title_ar TEXT, description_fr TEXT, description_ar TEXT,
			event_location_fr TEXT, event_location_ar TEXT, region_fr TEXT, region_ar TEXT,
			start_date DATETIME, end_date DATETIME, event_dates TEXT, prizes TEXT, fields TEXT,
			image_url TEXT, image_attachment_id TEXT,
			validated BOOLEAN NOT NULL DEFAULT 0, published BOOLEAN NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL
		)`,
		`CREATE TABLE candidature_templates (
			id TEXT PRIMARY KEY, created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			title_fr TEXT, title_ar TEXT, description_fr TEXT, description_ar TEXT
		)`,
		`CREATE TABLE template_fields (
			id TEXT PRIMARY KEY, created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			template_id TEXT, display_order INTEGER NOT NULL DEFAULT 0, type TEXT NOT NULL,
			label_fr TEXT, label_ar TEXT, name TEXT NOT NULL, required BOOLEAN NOT NULL DEFAULT 0,
			placeholder_fr TEXT, placeholder_ar TEXT, options TEXT, layout TEXT
		)`,
		`CREATE TABLE submissions (
			id TEXT PRIMARY KEY, created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			candidature_id TEXT NOT NULL, submitted_by TEXT, lang TEXT NOT NULL DEFAULT 'fr', answers TEXT
		)`,
		`CREATE TABLE attachments (
			id TEXT PRIMARY KEY, created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			entity_type TEXT NOT NULL, entity_id TEXT, status TEXT NOT NULL DEFAULT 'TEMP',
			file_name TEXT NOT NULL, file_key TEXT NOT NULL, file_size INTEGER NOT NULL,
			content_type TEXT NOT NULL, uploaded_by TEXT, expires_at DATETIME
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

// setupTestRouter creates a router backed by sqlite, the memory draft store and the local hub
func setupTestRouter(t *testing.T, basePath string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	return Setup(Config{
		DB:          setupTestDB(t),
		Logger:      zap.NewNop(),
		Metrics:     m,
		JWTSecret:   testSecret,
		BasePath:    basePath,
		CORSOrigins: []string{"*"},
		Storage:     client.NewMockS3Client(),
		Attachments: service.AttachmentLimits{MaxFileSize: 1 << 20, TempTTL: time.Hour, PresignExpiry: 5 * time.Minute},
	})
}

func bearer(t *testing.T, role session.Role, region string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"role":    string(role),
		"region":  region,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func do(t *testing.T, r *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	return envelope.Data
}

func TestMetricsEndpoint_RootPath(t *testing.T) {
	router := setupTestRouter(t, "/api")

	w := do(t, router, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	body := w.Body.String()
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "# TYPE")
	assert.Contains(t, body, "go_goroutines")
}

func TestMetricsEndpoint_WithBasePath(t *testing.T) {
	router := setupTestRouter(t, "/api")

	for _, path := range []string{"/metrics", "/api/metrics"} {
		t.Run(path, func(t *testing.T) {
			w := do(t, router, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		})
	}
}

func TestMetricsEndpoint_PrometheusFormat(t *testing.T) {
	router := setupTestRouter(t, "")

	w := do(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	hasHelpLine, hasTypeLine, hasMetricLine := false, false, false
	for _, line := range strings.Split(w.Body.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "# HELP"):
			hasHelpLine = true
		case strings.HasPrefix(line, "# TYPE"):
			hasTypeLine = true
		case line != "" && !strings.HasPrefix(line, "#") && strings.Contains(line, " "):
			hasMetricLine = true
		}
	}
	assert.True(t, hasHelpLine)
	assert.True(t, hasTypeLine)
	assert.True(t, hasMetricLine)
}

func TestHealthEndpoints(t *testing.T) {
	router := setupTestRouter(t, "/api")

	for _, path := range []string{"/health", "/ready", "/api/health", "/api/ready"} {
		t.Run(path, func(t *testing.T) {
			w := do(t, router, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRoutes_Authorization(t *testing.T) {
	router := setupTestRouter(t, "/api")
	admin := bearer(t, session.RoleAdmin, "")
	mentor := bearer(t, session.RoleMentor, "")
	holder := bearer(t, session.RoleProjectHolder, "")
	coordinator := bearer(t, session.RoleRegionalCoordinator, "Sfax")
	id := uuid.New().String()

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"list without token", http.MethodGet, "/api/candidatures", "", http.StatusUnauthorized},
		{"list as project holder", http.MethodGet, "/api/candidatures", holder, http.StatusForbidden},
		{"list as mentor", http.MethodGet, "/api/candidatures", mentor, http.StatusForbidden},
		{"list as coordinator", http.MethodGet, "/api/candidatures", coordinator, http.StatusOK},
		{"list as admin", http.MethodGet, "/api/candidatures", admin, http.StatusOK},
		{"create as coordinator", http.MethodPost, "/api/candidatures/add", coordinator, http.StatusForbidden},
		{"drafts as coordinator", http.MethodGet, "/api/drafts/palette", coordinator, http.StatusForbidden},
		{"palette as admin", http.MethodGet, "/api/drafts/palette", admin, http.StatusOK},
		{"templates as admin", http.MethodGet, "/api/candidatures/templates", admin, http.StatusOK},
		{"submissions as mentor", http.MethodGet, "/api/submissions/candidature/" + id, mentor, http.StatusNotFound},
		{"export as mentor", http.MethodGet, "/api/submissions/candidature/" + id + "/export", mentor, http.StatusForbidden},
		{"render anonymous", http.MethodGet, "/api/candidatures/" + id + "/render", "", http.StatusNotFound},
		{"session without token", http.MethodGet, "/api/session", "", http.StatusUnauthorized},
		{"session as holder", http.MethodGet, "/api/session", holder, http.StatusOK},
		{"bad uuid", http.MethodGet, "/api/candidatures/not-a-uuid", admin, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, tt.method, tt.path, tt.auth, nil)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

// A candidature goes from an empty draft to a published form that accepts submissions
func TestCandidatureLifecycle(t *testing.T) {
	router := setupTestRouter(t, "/api")
	admin := bearer(t, session.RoleAdmin, "")

	w := do(t, router, http.MethodPost, "/api/drafts", admin, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	draftID := decodeData(t, w)["id"].(string)
	base := "/api/drafts/" + draftID

	w = do(t, router, http.MethodPut, base+"/metadata", admin, map[string]interface{}{
		"title":  map[string]string{"fr": "Appel à candidatures", "ar": "دعوة للترشح"},
		"region": map[string]string{"fr": "Sfax", "ar": "صفاقس"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, router, http.MethodPost, base+"/fields", admin, map[string]interface{}{
		"component": map[string]interface{}{"type": "text"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	fields := decodeData(t, w)["fields"].([]interface{})
	require.Len(t, fields, 1)
	fieldID := fields[0].(map[string]interface{})["id"].(string)

	w = do(t, router, http.MethodPatch, base+"/fields/missing", admin, map[string]interface{}{"required": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "FIELD_NOT_FOUND")

	w = do(t, router, http.MethodPost, base+"/save", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decodeData(t, w)
	candidatureID := saved["_id"].(string)
	assert.Equal(t, false, saved["validated"])
	assert.Equal(t, false, saved["published"])

	// not visible until validated and published
	w = do(t, router, http.MethodGet, "/api/candidatures/"+candidatureID+"/render", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPatch, "/api/candidatures/"+candidatureID+"/publication", admin, map[string]bool{"published": true})
	assert.Equal(t, http.StatusConflict, w.Code, "publication requires validation")

	w = do(t, router, http.MethodPatch, "/api/candidatures/"+candidatureID+"/validation", admin, map[string]bool{"validated": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, router, http.MethodPatch, "/api/candidatures/"+candidatureID+"/publication", admin, map[string]bool{"published": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, router, http.MethodGet, "/api/candidatures/"+candidatureID+"/render?lang=ar", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	form := decodeData(t, w)
	assert.Equal(t, "دعوة للترشح", form["title"])
	assert.Equal(t, "rtl", form["dir"])

	w = do(t, router, http.MethodPost, "/api/submissions/submit/"+candidatureID, "", map[string]interface{}{
		"lang":    "ar",
		"answers": []map[string]interface{}{{"field": fieldID, "value": "Amina"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, router, http.MethodPost, "/api/submissions/submit/"+candidatureID, "", map[string]interface{}{
		"answers": []map[string]interface{}{{"field": "unknown", "value": "x"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodGet, "/api/submissions/candidature/"+candidatureID, admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), decodeData(t, w)["total"])

	w = do(t, router, http.MethodGet, "/api/submissions/candidature/"+candidatureID+"/export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Amina")

	// regional scope
	other := bearer(t, session.RoleRegionalCoordinator, "Tunis")
	w = do(t, router, http.MethodGet, "/api/submissions/candidature/"+candidatureID, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	local := bearer(t, session.RoleRegionalCoordinator, "Sfax")
	w = do(t, router, http.MethodGet, "/api/submissions/candidature/"+candidatureID, local, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, router, http.MethodGet, "/api/candidatures/"+candidatureID, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, router, http.MethodGet, "/api/candidatures/"+candidatureID, local, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
