package usecase

import (
	"github.com/go-playground/validator/v10"
)

// Shared validator for use-case input structs.
var validate = validator.New()
