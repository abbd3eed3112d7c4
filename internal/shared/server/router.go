package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndyisCodingMate/housesync-product/internal/account"
	googleauth "github.com/AndyisCodingMate/housesync-product/internal/auth"
	"github.com/AndyisCodingMate/housesync-product/internal/contracts"
	"github.com/AndyisCodingMate/housesync-product/internal/documents"
	"github.com/AndyisCodingMate/housesync-product/internal/listings"
	"github.com/AndyisCodingMate/housesync-product/internal/newsletter"
	"github.com/AndyisCodingMate/housesync-product/internal/profilepictures"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/config"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/metrics"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/server/middleware"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/server/respond"
	"github.com/AndyisCodingMate/housesync-product/internal/users"
	"github.com/AndyisCodingMate/housesync-product/internal/verification"
)

// RouterDeps carries the handlers wired by bootstrap.
type RouterDeps struct {
	Config config.Config

	UsersHandler           *users.Handler
	GoogleAuth             *googleauth.GoogleService
	DocumentsHandler       *documents.Handler
	ProfilePicturesHandler *profilepictures.Handler
	ListingsHandler        *listings.Handler
	ContractsHandler       *contracts.Handler
	VerificationHandler    *verification.Handler
	NewsletterHandler      *newsletter.Handler
	AccountHandler         *account.Handler

	// FilesDir enables the /files static route for the local object store.
	FilesDir string
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.FilesDir != "" {
		r.Static("/files", deps.FilesDir)
	}

	api := r.Group("/api/v1",
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.NewRateLimiter(nil), map[string]middleware.RateLimitRule{
			"/api/v1/documents":          {Rate: 2, Burst: 20},
			"/api/v1/profile-picture":    {Rate: 1, Burst: 10},
			"/api/v1/contracts/generate": {Rate: 0.2, Burst: 3},
			"/api/v1/verify-doc":         {Rate: 1, Burst: 5},
		}),
	)

	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api)
	}
	if deps.ProfilePicturesHandler != nil {
		deps.ProfilePicturesHandler.RegisterRoutes(api)
	}
	if deps.ListingsHandler != nil {
		deps.ListingsHandler.RegisterRoutes(api)
	}
	if deps.ContractsHandler != nil {
		deps.ContractsHandler.RegisterRoutes(api)
	}
	if deps.VerificationHandler != nil {
		deps.VerificationHandler.RegisterRoutes(api)
	}
	if deps.NewsletterHandler != nil {
		deps.NewsletterHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
