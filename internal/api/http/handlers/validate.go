package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

var validate = validator.New()

// checkRequest runs struct validation and translates failures into the
// flat validation error shape.
func checkRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		details := map[string]any{}
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fieldErr := range invalid {
				details[fieldErr.Field()] = fieldErr.Tag()
			}
		}
		return apperrors.NewValidationError("invalid payload", details)
	}
	return nil
}
