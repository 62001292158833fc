package directory

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"click2dial/pkg/utils"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("directory: invalid record")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := utils.NewValidator()
	// extension: what a dialplan accepts as an internal number.
	_ = v.RegisterValidation("extension", func(fl validator.FieldLevel) bool {
		return isExtension(fl.Field().String())
	})
	return v
}

// ValidateUser checks a user before it is stored. Channel type and internal
// number end up in the originate Channel header, so both are restricted to
// characters that cannot break the line.
func ValidateUser(u User) error {
	return utils.ValidateStruct(validate, ErrInvalid, u)
}

func ValidateParty(p Party) error {
	return utils.ValidateStruct(validate, ErrInvalid, p)
}

func isExtension(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c == '*' || c == '#' || c == '+' || c == '_' || c == '-' || c == '.':
		default:
			return false
		}
	}
	return true
}
