package internal

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/karloscodes/cartridge"
	cartridgemiddleware "github.com/karloscodes/cartridge/middleware"

	v1 "couplegate/api/v1"
	"couplegate/internal/config"
	"couplegate/internal/http"
	"couplegate/internal/http/middleware"
)

// publicCORSConfig is the CORS configuration shared by all API endpoints.
// The API is intentionally open to cross-origin callers so that external
// frontends can register profiles and read the public feeds.
var publicCORSConfig = &cors.Config{
	AllowOrigins: "*",
	AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept, Authorization",
}

// MountAppRoutes mounts all application routes using cartridge's route API.
func MountAppRoutes(srv *cartridge.Server) {
	cfg := config.GetConfig()

	// Rate limiting only applies in production. In development and test it
	// would interfere with rapid local iteration and the HTTP test suites.
	conditionalRateLimiter := func(limiter fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if cfg.IsProduction() {
				return limiter(c)
			}
			return c.Next()
		}
	}

	// Stricter limit on login to slow down credential stuffing.
	authRateLimiter := conditionalRateLimiter(cartridgemiddleware.RateLimiter(
		cartridgemiddleware.WithMax(10),
		cartridgemiddleware.WithDuration(time.Minute),
	))

	db := srv.GetDBManager().GetConnection()
	logger := srv.GetLogger()

	// Public API config: permissive CORS, no Sec-Fetch-Site checks since
	// cross-origin fetches are the expected access pattern.
	publicAPIConfig := &cartridge.RouteConfig{
		EnableCORS:         true,
		CORSConfig:         publicCORSConfig,
		EnableSecFetchSite: cartridge.Bool(false),
	}

	loginConfig := &cartridge.RouteConfig{
		EnableCORS:         true,
		CORSConfig:         publicCORSConfig,
		EnableSecFetchSite: cartridge.Bool(false),
		CustomMiddleware:   []fiber.Handler{authRateLimiter},
	}

	// Admin API config: same CORS posture plus token authentication.
	adminAPIConfig := &cartridge.RouteConfig{
		EnableCORS:         true,
		CORSConfig:         publicCORSConfig,
		EnableSecFetchSite: cartridge.Bool(false),
		CustomMiddleware: []fiber.Handler{
			middleware.AdminTokenAuth(db, logger),
		},
	}

	// === PAGES ===
	srv.Get("/", http.RenderHomeAction)
	srv.Get("/notices", http.RenderNoticesAction)
	srv.Get("/admin", http.RenderAdminAction)

	// Health check endpoint
	srv.Get("/_health", http.HealthIndexAction)
	srv.Head("/_health", http.HealthIndexAction)

	// === CORS PREFLIGHT ===
	// One wildcard handler covers preflight for every API route.
	srv.Options("/api/*", func(ctx *cartridge.Context) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	}, publicAPIConfig)

	// === PUBLIC API ROUTES ===
	srv.Post("/api/register", v1.RegisterProfileHandler, publicAPIConfig)
	srv.Get("/api/profiles", v1.ListProfilesHandler, publicAPIConfig)
	srv.Get("/api/profiles/:id", v1.GetProfileHandler, publicAPIConfig)
	srv.Post("/api/match", v1.CreateMatchHandler, publicAPIConfig)
	srv.Get("/api/stats", v1.GetStatsHandler, publicAPIConfig)
	srv.Get("/api/notices", v1.ListNoticesHandler, publicAPIConfig)

	// === AUTHENTICATION ===
	srv.Post("/api/admin/login", v1.AdminLoginHandler, loginConfig)

	// === ADMIN API ROUTES ===
	srv.Get("/api/admin/members", v1.AdminListMembersHandler, adminAPIConfig)
	srv.Put("/api/admin/members/:id", v1.AdminUpdateMemberHandler, adminAPIConfig)
	srv.Delete("/api/admin/members/:id", v1.AdminDeleteMemberHandler, adminAPIConfig)
	srv.Get("/api/admin/matches", v1.AdminListMatchesHandler, adminAPIConfig)
	srv.Post("/api/admin/notices", v1.AdminCreateNoticeHandler, adminAPIConfig)
	srv.Put("/api/admin/notices/:id", v1.AdminUpdateNoticeHandler, adminAPIConfig)
	srv.Delete("/api/admin/notices/:id", v1.AdminDeleteNoticeHandler, adminAPIConfig)
}
