package dto

import "github.com/go-playground/validator/v10"

// validate instancia compartida; los tags `validate` de los DTOs se aplican
// en los handlers antes de invocar el caso de uso.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate aplica las reglas declaradas en los tags del struct.
func Validate(s interface{}) error {
	return validate.Struct(s)
}
