package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mytheresa/catalog-admin/app/auth"
	"github.com/mytheresa/catalog-admin/app/categories"
	"github.com/mytheresa/catalog-admin/app/config"
	"github.com/mytheresa/catalog-admin/app/profiles"
	"github.com/mytheresa/catalog-admin/app/storage"
	"github.com/mytheresa/catalog-admin/app/validation"
	"github.com/mytheresa/catalog-admin/app/web"
	"github.com/mytheresa/catalog-admin/models"
)

// NewRouter wires every route onto a new gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, store storage.Storage) *gin.Engine {
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	if len(cfg.HTTP.AllowedOrigins) > 0 {
		allowedOrigins := map[string]bool{}
		for _, origin := range cfg.HTTP.AllowedOrigins {
			allowedOrigins[origin] = true
		}
		r.Use(cors.New(cors.Config{
			AllowOriginFunc: func(origin string) bool {
				return allowedOrigins[origin]
			},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", web.MethodOverrideHeader},
			ExposeHeaders:    []string{"Content-Length", web.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(web.RequestID())
	r.Use(web.Logger())
	r.Use(web.Recovery())
	r.Use(web.Language())
	r.NoRoute(web.NotFound)

	r.GET("/healthz", healthz(db))

	if local, ok := store.(*storage.LocalStorage); ok {
		r.Static("/storage", local.BasePath())
	}

	validate := validation.New()

	categories.NewCategoryHandler(
		models.NewCategoriesRepository(db),
		store,
		validate,
	).RegisterRoutes(r)

	authed := r.Group("", auth.Middleware(cfg.Auth.JWTSecret, web.RenderError))
	profiles.NewProfileHandler(
		models.NewProfilesRepository(db),
		models.NewUsersRepository(db),
		store,
		cfg.AppURL,
	).RegisterRoutes(authed)

	return r
}

// NewHandler wraps the router with the body limit and method override,
// which must run before routing.
func NewHandler(cfg *config.Config, r *gin.Engine) http.Handler {
	return web.LimitBody(cfg.HTTP.MaxBodyBytes, web.MethodOverride(r))
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
