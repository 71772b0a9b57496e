package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nmalls-recorrencia/config"
	"nmalls-recorrencia/metrics"
	"nmalls-recorrencia/utils"
)

const testSecret = "routes-secret"

func setup(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), config.GormConfig())
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	static := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(static, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>painel</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "app.js"), []byte("console.log(1)"), 0o644))

	cfg := &config.Config{
		JWTSecret:      testSecret,
		JWTExpiryHours: 1,
		StaticDir:      static,
		CORSOrigins:    []string{"*"},
		CacheTTL:       time.Minute,
	}

	token, err := utils.GenerateToken(testSecret, 1, utils.Claims{UserID: "u1", Email: "a@b.c", Role: "admin"})
	require.NoError(t, err)

	return SetupRouter(cfg, db, nil, metrics.New()), token
}

func request(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIRequiresToken(t *testing.T) {
	r, token := setup(t)

	paths := []string{"/api/clientes", "/api/produtos", "/api/recorrencias", "/api/dashboard", "/api/auth/verificar"}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			w := request(r, http.MethodGet, p, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Token não fornecido"}`, w.Body.String())

			w = request(r, http.MethodGet, p, "garbage", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			w = request(r, http.MethodGet, p, token, nil)
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}
}

func TestLoginIsPublic(t *testing.T) {
	r, _ := setup(t)

	w := request(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "x@y.z", "senha": "1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Credenciais inválidas"}`, w.Body.String())
}

func TestClienteThroughRouter(t *testing.T) {
	r, token := setup(t)

	w := request(r, http.MethodPost, "/api/clientes", token, gin.H{"nome": "Maria", "cpf": "12345678901"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(r, http.MethodGet, "/api/clientes/cpf/12345678901", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/api/clientes/cpf/00000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Cliente não encontrado"}`, w.Body.String())
}

func TestProdutoSearchWithSlash(t *testing.T) {
	r, token := setup(t)

	w := request(r, http.MethodPost, "/api/produtos", token, gin.H{"codigo": "R12", "nome": "Ração 1/2 kg", "preco": 25})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = request(r, http.MethodPost, "/api/produtos", token, gin.H{"codigo": "R2", "nome": "Ração 2 kg", "preco": 40})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(r, http.MethodGet, "/api/produtos/busca/1%2F2", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var produtos []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &produtos))
	require.Len(t, produtos, 1)
	assert.Equal(t, "Ração 1/2 kg", produtos[0]["nome"])
}

func TestShippedIndexUsesAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), config.GormConfig())
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{JWTSecret: testSecret, JWTExpiryHours: 1, StaticDir: filepath.Join("..", "public")}
	r := SetupRouter(cfg, db, nil, metrics.New())

	w := request(r, http.MethodGet, "/clientes/novo", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, endpoint := range []string{"'/auth/login'", "'/dashboard'", "'/clientes'", "'/recorrencias'", "'/produtos'"} {
		assert.Contains(t, body, endpoint)
	}
	assert.Contains(t, body, "hashchange")
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := setup(t)

	w := request(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, w.Body.String())

	w = request(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `nmalls_http_requests_total{endpoint="/health",method="GET",status="200"} 1`)
}

func TestSPAFallback(t *testing.T) {
	r, _ := setup(t)

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/", http.StatusOK, "<html>painel</html>"},
		{"/clientes/42", http.StatusOK, "<html>painel</html>"},
		{"/app.js", http.StatusOK, "console.log(1)"},
		{"/api/nada", http.StatusNotFound, `{"error":"Rota não encontrada"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := request(r, http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}
