package v1

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	"gorm.io/gorm"

	"couplegate/internal/matches"
	"couplegate/internal/profiles"
)

const errMemberNotFound = "Member not found"

// AdminListMembersHandler returns every registered profile for the
// admin console.
func AdminListMembersHandler(ctx *cartridge.Context) error {
	result, err := profiles.List(ctx.DB())
	if err != nil {
		ctx.Logger.Error("Failed to list members", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch members",
		})
	}

	if result == nil {
		result = []profiles.Profile{}
	}
	return ctx.JSON(fiber.Map{
		"members": result,
	})
}

// AdminUpdateMemberHandler merges the provided fields over an existing
// profile. The id and createdAt stamp cannot be changed.
func AdminUpdateMemberHandler(ctx *cartridge.Context) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": errMemberNotFound,
		})
	}

	var update profiles.ProfileUpdate
	if err := ctx.BodyParser(&update); err != nil {
		ctx.Logger.Debug("Failed to parse member update", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": errInvalidRequest,
		})
	}

	profile, err := profiles.Update(ctx.DB(), ctx.Logger, uint(id), update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": errMemberNotFound,
			})
		}
		var validationErr *profiles.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Error(),
			})
		}
		ctx.Logger.Error("Failed to update member", slog.Any("error", err), slog.Int("id", id))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update member",
		})
	}

	ctx.Logger.Info("Member updated", slog.Int("id", id))

	return ctx.JSON(fiber.Map{
		"success": true,
		"member":  profile,
	})
}

// AdminDeleteMemberHandler removes a profile. Matches referencing it
// are kept; the match listing falls back to a placeholder name.
// Repeating the delete keeps returning 404.
func AdminDeleteMemberHandler(ctx *cartridge.Context) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": errMemberNotFound,
		})
	}

	if err := profiles.Delete(ctx.DB(), ctx.Logger, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": errMemberNotFound,
			})
		}
		ctx.Logger.Error("Failed to delete member", slog.Any("error", err), slog.Int("id", id))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete member",
		})
	}

	ctx.Logger.Info("Member deleted", slog.Int("id", id))

	return ctx.JSON(fiber.Map{
		"success": true,
	})
}

// AdminListMatchesHandler returns all matches joined with current
// profile names for the admin console.
func AdminListMatchesHandler(ctx *cartridge.Context) error {
	result, err := matches.ListWithNames(ctx.DB())
	if err != nil {
		ctx.Logger.Error("Failed to list matches", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch matches",
		})
	}

	if result == nil {
		result = []matches.AdminMatch{}
	}
	return ctx.JSON(fiber.Map{
		"matches": result,
	})
}
