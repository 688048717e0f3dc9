package middleware

import (
	"UnicornGolang/internal/entity"
	jwtPkg "UnicornGolang/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

type tokenMiddleware struct {
}

func newTokenMiddleware() *tokenMiddleware {
	return &tokenMiddleware{}
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if authHeader == "" {
		m.log.WithFields(logrus.Fields{
			"error": "Authorization header is missing",
			"path":  ctx.Path(),
		}).Warn("Authorization header check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"error": "Authorization header format is invalid",
		}).Warn("Authorization header check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	operatorToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	claims, ok := operatorToken.Claims.(jwt.MapClaims)
	if !ok {
		m.log.WithFields(logrus.Fields{
			"error": "Invalid token claims",
		}).Warn("Token claims check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	if claims["id"] == nil || claims["name"] == nil || claims["role"] == nil {
		m.log.WithFields(logrus.Fields{
			"error": "Token claims are missing required fields",
		}).Warn("Token claims check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	operator := entity.OperatorSession{
		ID:   claims["id"].(string),
		Name: claims["name"].(string),
		Role: claims["role"].(string),
	}
	ctx.Locals("operator", operator)

	return ctx.Next()
}
