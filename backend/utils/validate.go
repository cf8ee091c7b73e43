package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator tags on a request body and returns a
// field -> message map suitable for a 422 response, or nil when valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = "failed on '" + fe.Tag() + "' validation"
	}
	return out
}
