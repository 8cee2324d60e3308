package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

// usernames may contain letters, digits and .@+- only
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// #RGB or #RRGGBB
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

var reservedUsernames = []string{"me", "admin"}

func InitValidator() {
	Validate = validator.New()
	_ = Validate.RegisterValidation("username", validateUsername)
	_ = Validate.RegisterValidation("hexcolor3or6", validateHexColor)
}

func validateUsername(fl validator.FieldLevel) bool {
	return IsValidUsername(fl.Field().String())
}

func validateHexColor(fl validator.FieldLevel) bool {
	return IsValidHexColor(fl.Field().String())
}

func IsValidUsername(username string) bool {
	for _, reserved := range reservedUsernames {
		if strings.EqualFold(username, reserved) {
			return false
		}
	}
	return usernameRegex.MatchString(username)
}

func IsValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}
