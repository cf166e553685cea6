package httpapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/city-weather/internal/weather"
)

var validate = validator.New()

// Lookup is the pipeline the routes expose.
type Lookup interface {
	Lookup(ctx context.Context, city string) (weather.WeatherResult, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Lookup) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, weather.BlankCityMessage)
		}

		result, err := service.Lookup(c.UserContext(), q.City)
		if err != nil {
			return fiber.NewError(StatusFor(err), weather.UserMessage(err))
		}

		return c.JSON(result)
	})
}

// ErrorHandler renders every error as {"error":true,"message":...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// StatusFor maps a pipeline error to the HTTP status returned to clients.
func StatusFor(err error) int {
	switch weather.KindOf(err) {
	case weather.ErrValidation:
		return fiber.StatusBadRequest
	case weather.ErrUpstream:
		// Only statuses about the requested city are the caller's concern;
		// credential and quota failures are ours.
		var e *weather.Error
		if errors.As(err, &e) && (e.StatusCode == fiber.StatusNotFound || e.StatusCode == fiber.StatusBadRequest) {
			return e.StatusCode
		}
		return fiber.StatusBadGateway
	case weather.ErrMalformedResponse:
		return fiber.StatusBadGateway
	case weather.ErrNetwork:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// cityQuery holds the query parameters for the current weather endpoint.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	var q cityQuery

	q.City = c.Query("city")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
