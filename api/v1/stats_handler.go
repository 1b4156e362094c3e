package v1

import (
	"net/http"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"couplegate/internal/stats"
)

// GetStatsHandler returns aggregate platform statistics.
func GetStatsHandler(ctx *cartridge.Context) error {
	result, err := stats.Compute(ctx.DB())
	if err != nil {
		ctx.Logger.Error("Failed to compute stats", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute statistics",
		})
	}

	return ctx.JSON(result)
}
