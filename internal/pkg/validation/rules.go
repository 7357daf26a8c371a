package validation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// custom validation tags & texts
const (
	clockTimeTag  = "clocktime"
	clockTimeText = "{0} must be a 24h time formatted as HH:MM"
	notBlankTag   = "notblank"
	notBlankText  = "{0} cannot be blank"
)

// clockTime accepts "HH:MM" in 24h notation
func clockTime(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
