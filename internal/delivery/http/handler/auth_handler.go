package handler

import (
	"time"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc           *usecase.Auth
	cookieSecure bool
}

func NewAuthHandler(uc *usecase.Auth, cookieSecure bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieSecure: cookieSecure}
}

func (h *AuthHandler) Session(c fiber.Ctx) error {
	var req dto.SessionRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.ExchangeSession(c.Context(), req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    res.SessionToken,
		Path:     "/",
		MaxAge:   int(h.uc.SessionTTL() / time.Second),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
	return response.OK(c, res.User)
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	return response.OK(c, u)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), middleware.SessionToken(c)); err != nil {
		return mapUsecaseError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
	return response.Success(c, fiber.StatusOK, response.MessageLoggedOut, dto.MessageResponse{Message: response.MessageLoggedOut})
}
