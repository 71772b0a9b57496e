package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nmalls-recorrencia/cache"
	"nmalls-recorrencia/config"
	"nmalls-recorrencia/controllers"
	"nmalls-recorrencia/metrics"
	"nmalls-recorrencia/utils"
)

// SetupRouter wires every HTTP route. store may be nil to disable the
// response cache.
func SetupRouter(cfg *config.Config, db *gorm.DB, store cache.Store, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	// match on the escaped path so "%2F" stays inside one :param
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.CORSOrigins))
	r.Use(config.PerformanceLogger())
	r.Use(m.Middleware())

	health := controllers.NewHealthController(db)
	r.GET("/health", health.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	authController := controllers.NewAuthController(db, cfg.JWTSecret, cfg.JWTExpiryHours)
	authMiddleware := utils.AuthMiddleware(cfg.JWTSecret)

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authController.Login)
		auth.GET("/verificar", authMiddleware, authController.Verificar)
	}

	api := r.Group("/api")
	api.Use(authMiddleware, cache.Middleware(store, cfg.CacheTTL))
	{
		// Cliente routes
		clienteController := controllers.NewClienteController(db)
		clientes := api.Group("/clientes")
		{
			clientes.GET("", clienteController.List)
			clientes.GET("/cpf/:cpf", clienteController.GetByCPF)
			clientes.GET("/:id", clienteController.Get)
			clientes.POST("", clienteController.Create)
			clientes.PUT("/:id", clienteController.Update)
			clientes.DELETE("/:id", clienteController.Delete)
		}

		// Produto routes
		produtoController := controllers.NewProdutoController(db)
		produtos := api.Group("/produtos")
		{
			produtos.GET("", produtoController.List)
			produtos.GET("/codigo/:codigo", produtoController.GetByCodigo)
			produtos.GET("/busca/:termo", produtoController.Search)
			produtos.GET("/:id", produtoController.Get)
			produtos.POST("", produtoController.Create)
			produtos.PUT("/:id", produtoController.Update)
			produtos.DELETE("/:id", produtoController.Delete)
		}

		// Recorrencia routes
		recorrenciaController := controllers.NewRecorrenciaController(db)
		recorrencias := api.Group("/recorrencias")
		{
			recorrencias.GET("", recorrenciaController.List)
			recorrencias.GET("/cliente/:clienteId", recorrenciaController.ListByCliente)
			recorrencias.GET("/:id", recorrenciaController.Get)
			recorrencias.GET("/:id/historico", recorrenciaController.Historico)
			recorrencias.POST("", recorrenciaController.Create)
			recorrencias.POST("/:id/registrar-compra", recorrenciaController.RegistrarCompra)
			recorrencias.PUT("/:id", recorrenciaController.Update)
			recorrencias.DELETE("/:id", recorrenciaController.Delete)
		}

		// Dashboard routes
		dashboardController := controllers.NewDashboardController(db)
		api.GET("/dashboard", dashboardController.GetDashboardStats)
	}

	r.NoRoute(spaFallback(cfg.StaticDir))

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "X-Cache"},
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}

	return cors.New(corsConfig)
}

// spaFallback serves files from staticDir and index.html for any other
// non-API path, leaving unknown /api paths as JSON 404s.
func spaFallback(staticDir string) gin.HandlerFunc {
	index := filepath.Join(staticDir, "index.html")

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			utils.RespondWithError(c, http.StatusNotFound, "Rota não encontrada")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			utils.RespondWithError(c, http.StatusNotFound, "Rota não encontrada")
			return
		}

		file := filepath.Join(staticDir, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(index)
	}
}
