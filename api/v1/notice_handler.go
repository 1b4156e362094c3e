package v1

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	"gorm.io/gorm"

	"couplegate/internal/notices"
)

const errNoticeNotFound = "Notice not found"

type noticeParams struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

// ListNoticesHandler returns all notices, most recent first. Public.
func ListNoticesHandler(ctx *cartridge.Context) error {
	result, err := notices.List(ctx.DB())
	if err != nil {
		ctx.Logger.Error("Failed to list notices", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch notices",
		})
	}

	if result == nil {
		result = []notices.Notice{}
	}
	return ctx.JSON(fiber.Map{
		"notices": result,
	})
}

// AdminCreateNoticeHandler creates a new notice.
func AdminCreateNoticeHandler(ctx *cartridge.Context) error {
	var params noticeParams
	if err := ctx.BodyParser(&params); err != nil {
		ctx.Logger.Debug("Failed to parse notice request", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": errInvalidRequest,
		})
	}

	notice := &notices.Notice{
		Title:     params.Title,
		Content:   params.Content,
		Important: params.Important,
	}

	if err := notices.Create(ctx.DB(), ctx.Logger, notice); err != nil {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ctx.Logger.Info("Notice created", slog.Uint64("id", uint64(notice.ID)))

	return ctx.JSON(fiber.Map{
		"success": true,
		"notice":  notice,
	})
}

// AdminUpdateNoticeHandler merges the provided fields over an existing
// notice.
func AdminUpdateNoticeHandler(ctx *cartridge.Context) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": errNoticeNotFound,
		})
	}

	var update notices.NoticeUpdate
	if err := ctx.BodyParser(&update); err != nil {
		ctx.Logger.Debug("Failed to parse notice update", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": errInvalidRequest,
		})
	}

	notice, err := notices.Update(ctx.DB(), ctx.Logger, uint(id), update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": errNoticeNotFound,
			})
		}
		ctx.Logger.Error("Failed to update notice", slog.Any("error", err), slog.Int("id", id))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"notice":  notice,
	})
}

// AdminDeleteNoticeHandler removes a notice. Repeating the delete on an
// already-deleted id keeps returning 404.
func AdminDeleteNoticeHandler(ctx *cartridge.Context) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": errNoticeNotFound,
		})
	}

	if err := notices.Delete(ctx.DB(), ctx.Logger, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": errNoticeNotFound,
			})
		}
		ctx.Logger.Error("Failed to delete notice", slog.Any("error", err), slog.Int("id", id))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete notice",
		})
	}

	ctx.Logger.Info("Notice deleted", slog.Int("id", id))

	return ctx.JSON(fiber.Map{
		"success": true,
	})
}
