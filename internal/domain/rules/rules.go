// Package rules holds ozzo-validation rules shared by the domain models.
package rules

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var errBlank = errors.New("must not be blank")

// NotBlank rejects strings that are empty or whitespace only. Non-string
// values are treated as blank.
var NotBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
})
