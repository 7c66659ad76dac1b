package handler

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody parses a JSON body into dst and validates it. An empty body
// leaves dst untouched before validation.
func decodeBody(c fiber.Ctx, dst any) error {
	if len(bytes.TrimSpace(c.Body())) > 0 {
		if err := c.Bind().JSON(dst); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid JSON body", nil, err)
		}
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	first := verrs[0]
	return middleware.NewAppError(fiber.StatusBadRequest, fmt.Sprintf("%s %s", first.Field(), describe(first)), fields, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

func currentUser(c fiber.Ctx) (user.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return user.User{}, middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, nil)
	}
	return u, nil
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated), errors.Is(err, usecase.ErrIdentityProvider):
		status = fiber.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrDuplicate):
		status = fiber.StatusBadRequest
	}

	msg := ""
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		msg = ucErr.Error()
	}
	return middleware.NewAppError(status, msg, nil, err)
}
