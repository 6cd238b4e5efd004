package response

import "github.com/gofiber/fiber/v2"

// Response is the uniform API envelope. Business failures are reported with
// Success=false and HTTP 200; only a missing resource uses 404.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failure
type ErrorBody struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Data:    data,
	})
}

// Fail sends a failure envelope with status 200
func Fail(c *fiber.Ctx, message string, details string) error {
	return Error(c, fiber.StatusOK, message, details)
}

// Error sends a failure envelope with the given status
func Error(c *fiber.Ctx, statusCode int, message string, details string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error: &ErrorBody{
			Message: message,
			Details: details,
		},
	})
}

// BadRequest sends a 400 for requests that could not be parsed
func BadRequest(c *fiber.Ctx, message string, details string) error {
	return Error(c, fiber.StatusBadRequest, message, details)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message, "")
}

// InternalServerError sends a 500 for unhandled failures
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message, "")
}
