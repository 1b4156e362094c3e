package v1

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	"gorm.io/gorm"

	"couplegate/internal/profiles"
)

const (
	errInvalidRequest  = "Invalid request body"
	errProfileNotFound = "Profile not found"
)

type registerParams struct {
	Name      string          `json:"name"`
	Age       int             `json:"age"`
	Gender    profiles.Gender `json:"gender"`
	Country   string          `json:"country"`
	About     string          `json:"about"`
	Interests string          `json:"interests"`
}

// RegisterProfileHandler creates a new dating profile.
func RegisterProfileHandler(ctx *cartridge.Context) error {
	var params registerParams
	if err := ctx.BodyParser(&params); err != nil {
		ctx.Logger.Debug("Failed to parse register request", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": errInvalidRequest,
		})
	}

	profile := &profiles.Profile{
		Name:      params.Name,
		Age:       params.Age,
		Gender:    params.Gender,
		Country:   params.Country,
		About:     params.About,
		Interests: params.Interests,
	}

	if err := profiles.Create(ctx.DB(), ctx.Logger, profile); err != nil {
		var validationErr *profiles.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Error(),
			})
		}
		ctx.Logger.Error("Failed to create profile", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register profile",
		})
	}

	ctx.Logger.Info("Profile registered",
		slog.Uint64("id", uint64(profile.ID)),
		slog.String("gender", string(profile.Gender)),
		slog.String("country", profile.Country))

	return ctx.JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}

// ListProfilesHandler returns profiles, optionally filtered by exact
// gender and country matches.
func ListProfilesHandler(ctx *cartridge.Context) error {
	gender := ctx.Query("gender")
	country := ctx.Query("country")

	result, err := profiles.Filter(ctx.DB(), gender, country)
	if err != nil {
		ctx.Logger.Error("Failed to list profiles", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch profiles",
		})
	}

	if result == nil {
		result = []profiles.Profile{}
	}
	return ctx.JSON(fiber.Map{
		"profiles": result,
	})
}

// GetProfileHandler returns a single profile by id.
func GetProfileHandler(ctx *cartridge.Context) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": errProfileNotFound,
		})
	}

	profile, err := profiles.GetByID(ctx.DB(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": errProfileNotFound,
			})
		}
		ctx.Logger.Error("Failed to get profile", slog.Any("error", err), slog.Int("id", id))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch profile",
		})
	}

	return ctx.JSON(fiber.Map{
		"profile": profile,
	})
}
