package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks a struct against its `validate` tags.
func Validate(v interface{}) error {
	return validate.Struct(v)
}
