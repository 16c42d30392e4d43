package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"framestudio/internal/config"
	"framestudio/internal/database"
	"framestudio/internal/services"
)

// App bundles the router with the pieces main needs to manage.
type App struct {
	Engine   *gin.Engine
	Sessions *services.SessionStore
	Catalog  *database.JSONCatalog
	Email    *services.EmailService
}

// NewApp wires the catalog, services and routes described by cfg.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	catalog, err := database.NewCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	email := services.NewEmailService(services.EmailSettings{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		User:       cfg.SMTP.User,
		Pass:       cfg.SMTP.Pass,
		From:       cfg.SMTP.From,
		AdminEmail: cfg.SMTP.AdminEmail,
	}, logger)
	sessions := services.NewSessionStore(catalog, email, logger)
	photos := services.NewPhotoService(cfg.Photo.MaxBytes, logger)

	h := NewHandler(catalog, sessions, photos, logger, CookieSettings{
		Name:   cfg.Session.CookieName,
		MaxAge: int(cfg.Session.MaxIdle().Seconds()),
		Secure: cfg.Session.CookieSecure,
	})

	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = photos.MaxBytes() + (1 << 20)

	proxies := cfg.Server.TrustedProxies
	if len(proxies) == 0 {
		proxies = []string{"127.0.0.1", "::1"}
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	renderer, err := NewHTMLRenderer("receipt.html", "receipt_missing.html")
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	h.RegisterRoutes(r)

	return &App{Engine: r, Sessions: sessions, Catalog: catalog, Email: email}, nil
}
