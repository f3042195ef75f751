package middleware

import (
	"fmt"
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// RecoveryMiddleware recovers from panics and returns 500 error
func RecoveryMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC: %v\n%s", r, debug.Stack())
				err = fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("internal server error: %v", r))
			}
		}()

		return c.Next()
	}
}
