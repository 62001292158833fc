package switchcfg

import (
	"errors"

	"click2dial/pkg/utils"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("switchcfg: invalid settings")

var validate = utils.NewValidator()

// Validate checks every constraint and reports all failing fields at once.
func Validate(s Settings) error {
	return utils.ValidateStruct(validate, ErrInvalid, s)
}
