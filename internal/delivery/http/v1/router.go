package v1

import (
	"html/template"
	"net/http"

	"quantumworks-backend/config"
	"quantumworks-backend/internal/delivery/http/middleware"
	"quantumworks-backend/internal/domain"
	"quantumworks-backend/internal/site"
	"quantumworks-backend/internal/usecase"
	"quantumworks-backend/pkg/logger"
	"quantumworks-backend/pkg/security"
	"quantumworks-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC    domain.ContactUsecase
	NewsletterUC domain.NewsletterUsecase
	HealthUC     usecase.HealthUsecase
	SiteContent  *site.Content
	Templates    *template.Template
	SecurityLog  *security.SecurityLogger
	// Redis backs the rate limiters; nil or a nil client means in-memory
	Redis  func() *goredis.Client
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerBindingValidators()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(middleware.MethodNotAllowed())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
	})
	if deps.Templates != nil {
		r.SetHTMLTemplate(deps.Templates)
	}

	cfg := deps.Config
	window := cfg.RateLimitWindow()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins, SendEmailPath)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.SecurityHeaders))
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window, deps.Redis)))
	r.Use(middleware.ErrorHandler())

	contactLimit := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(cfg.RateLimitContactThreshold, window, deps.Redis))

	// Site root: landing page and form capture
	if deps.SiteContent != nil {
		NewSiteHandler(r, cfg.SiteName, deps.SiteContent)
	}
	NewContactHandler(r, deps.ContactUC, deps.SecurityLog, contactLimit)

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)
	NewNewsletterHandler(v1, deps.NewsletterUC, contactLimit)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// registerBindingValidators adds the custom rules to gin's shared validator
// so binding tags like email_shape resolve.
func registerBindingValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Log.Warn("Binding validator is not go-playground; custom rules unavailable")
		return
	}
	validation.RegisterValidators(v)
}
