package serverutils

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware authenticates the bearer token and exposes the owner id as
// ctx.Locals("user_id"). Failures surface as fiber errors and get the JSON
// envelope from the error handler middleware.
func JwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr, found := strings.CutPrefix(ctx.Get(fiber.HeaderAuthorization), "Bearer ")
	if !found || tokenStr == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token claims")
	}

	ctx.Locals("user_id", claims["user_id"])
	return ctx.Next()
}
