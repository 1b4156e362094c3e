package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"couplegate/web"
)

// RenderHomeAction serves the public registration and browse page.
func RenderHomeAction(ctx *cartridge.Context) error {
	return servePage(ctx, "index")
}

// RenderNoticesAction serves the public notice board page.
func RenderNoticesAction(ctx *cartridge.Context) error {
	return servePage(ctx, "notices")
}

// RenderAdminAction serves the admin console page. Authentication happens
// client-side against the token API, so the page itself is public.
func RenderAdminAction(ctx *cartridge.Context) error {
	return servePage(ctx, "admin")
}

func servePage(ctx *cartridge.Context, name string) error {
	page := web.Page(name)
	if page == nil {
		ctx.Logger.Error("Embedded page missing", slog.String("page", name))
		return ctx.Status(fiber.StatusNotFound).SendString("Not found")
	}
	ctx.Ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Ctx.Send(page)
}
