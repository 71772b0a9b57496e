package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nmalls-recorrencia/config"
	"nmalls-recorrencia/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), config.GormConfig())
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	return body.Error
}

func seedCliente(t *testing.T, db *gorm.DB, nome, cpf string) models.Cliente {
	t.Helper()
	cliente := models.Cliente{Nome: nome, CPF: cpf, Telefone: "+5511999990000"}
	require.NoError(t, db.Create(&cliente).Error)
	return cliente
}

func seedProduto(t *testing.T, db *gorm.DB, codigo, nome, preco string) models.Produto {
	t.Helper()
	produto := models.Produto{Codigo: codigo, Nome: nome, Preco: decimal.RequireFromString(preco)}
	require.NoError(t, db.Create(&produto).Error)
	return produto
}

func seedRecorrencia(t *testing.T, db *gorm.DB, cliente models.Cliente, produto models.Produto, proxima models.Date, status string) models.Recorrencia {
	t.Helper()
	linha := models.NovaLinha(produto.ID, 1, produto.Preco)
	rec := models.Recorrencia{
		ClienteID:     cliente.ID,
		IntervaloDias: 30,
		UltimaCompra:  proxima.AddDays(-30),
		ProximaCompra: proxima,
		Status:        status,
		ValorTotal:    linha.Subtotal,
	}
	require.NoError(t, db.Omit("Cliente", "Produtos").Create(&rec).Error)
	linha.RecorrenciaID = rec.ID
	require.NoError(t, db.Omit("Produto").Create(&linha).Error)
	return rec
}

func doRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
