package router

import (
	"time"

	"salestrack/internal/config"
	"salestrack/internal/handler"
	"salestrack/internal/middleware"
	"salestrack/internal/policy"
	"salestrack/internal/repository"
	"salestrack/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo)
	articleSvc := service.NewArticleService(articleRepo, categoryRepo, saleRepo, cfg.PageSize, cfg.MaxPageSize)
	saleSvc := service.NewSaleService(saleRepo, articleRepo, userRepo, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	articlesH := handler.NewArticlesHandler(articleSvc)
	salesH := handler.NewSalesHandler(saleSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public, brute-force limited)
	r.POST("/token", middleware.LoginRateLimiter(rdb), authH.Token)
	r.POST("/token/refresh", authH.Refresh)

	// Articles are create-only: existing rows can be read but never mutated
	// through the API. When ARTICLE_READ_OPEN is set, reads are also open to
	// anonymous callers, so the group takes the optional auth gate and lets
	// the policy rule sort out who may do what.
	articleRule := policy.All(policy.CreateOnly, policy.IsAuthenticatedOrReadOnly)
	if !cfg.ArticleReadOpen {
		articleRule = policy.All(policy.CreateOnly, policy.IsAuthenticated)
	}
	articles := r.Group("/v1/article", middleware.JWTAuthOptional(cfg.JWTSecret), middleware.Authorize(articleRule))
	{
		articles.GET("", articlesH.List)
		articles.GET("/:id", articlesH.GetByID)
		articles.POST("", articlesH.Create)
		articles.PUT("/:id", articlesH.Update)
		articles.PATCH("/:id", articlesH.Update)
		articles.DELETE("/:id", articlesH.Delete)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Sales enforce IsOwnerOrReadOnly at the object level inside the
		// service, where the loaded row's author is known.
		sales := v1.Group("/sale", middleware.Authorize(policy.IsAuthenticated))
		{
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.GetByID)
			sales.POST("", salesH.Create)
			sales.PUT("/:id", salesH.Update)
			sales.PATCH("/:id", salesH.Update)
			sales.DELETE("/:id", salesH.Delete)
		}

		categories := v1.Group("/category", middleware.Authorize(policy.IsAuthenticated))
		{
			categories.GET("", categoriesH.List)
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
