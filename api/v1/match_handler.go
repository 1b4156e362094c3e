package v1

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"couplegate/internal/matches"
)

type createMatchParams struct {
	FromID uint `json:"fromId"`
	ToID   uint `json:"toId"`
}

// CreateMatchHandler records a match request between two profiles.
// Both profiles must exist at call time.
func CreateMatchHandler(ctx *cartridge.Context) error {
	var params createMatchParams
	if err := ctx.BodyParser(&params); err != nil {
		ctx.Logger.Debug("Failed to parse match request", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": errInvalidRequest,
		})
	}

	match, err := matches.Create(ctx.DB(), ctx.Logger, params.FromID, params.ToID)
	if err != nil {
		var notFoundErr *matches.ProfileNotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": errProfileNotFound,
			})
		}
		ctx.Logger.Error("Failed to create match", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create match",
		})
	}

	ctx.Logger.Info("Match requested",
		slog.Uint64("id", uint64(match.ID)),
		slog.Uint64("fromId", uint64(match.FromID)),
		slog.Uint64("toId", uint64(match.ToID)))

	return ctx.JSON(fiber.Map{
		"success": true,
		"match":   match,
	})
}
