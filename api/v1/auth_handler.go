package v1

import (
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"couplegate/internal/admins"
	"couplegate/internal/config"
)

type loginParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginHandler authenticates an admin and issues an opaque token
// for subsequent admin API calls.
func AdminLoginHandler(ctx *cartridge.Context) error {
	var params loginParams
	if err := ctx.BodyParser(&params); err != nil {
		ctx.Logger.Debug("Failed to parse login request", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Login failed",
		})
	}

	db := ctx.DB()

	admin, err := admins.Authenticate(db, params.Username, params.Password)
	if err != nil {
		if !errors.Is(err, admins.ErrInvalidCredentials) {
			ctx.Logger.Error("Login lookup failed", slog.Any("error", err))
		}
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid username or password",
		})
	}

	cfg := config.GetConfig()
	ttl := time.Duration(cfg.GetAdminTokenTTL()) * time.Second

	token, err := admins.IssueToken(db, ctx.Logger, admin.ID, ttl)
	if err != nil {
		ctx.Logger.Error("Failed to issue admin token", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Login failed",
		})
	}

	ctx.Logger.Info("Admin logged in",
		slog.String("username", admin.Username),
		slog.Time("tokenExpiresAt", token.ExpiresAt))

	return ctx.JSON(fiber.Map{
		"success": true,
		"token":   token.Token,
	})
}
