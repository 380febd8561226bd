package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"docregistry/docs"
)

// RegisterSwagger serves the API docs under /swagger. The host is fixed once
// here; an empty host lets the UI call the server it was loaded from.
func RegisterSwagger(app *fiber.App, host string) {
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = []string{}
	app.Get("/swagger/*", swagger.HandlerDefault)
}
