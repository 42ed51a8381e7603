package handlers

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

const passwordMessage = "La contraseña debe contener al menos 8 caracteres, una letra mayúscula, una letra minúscula, un dígito y un carácter especial"

// validateUserRequest checks the request shape before the service is
// invoked and returns a field→message map; an empty map means valid.
// On partial updates nil fields are skipped.
func validateUserRequest(req userRequest, partial bool) map[string]string {
	errs := make(map[string]string)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errs["name"] = "Nombre requerido"
		}
	} else if !partial {
		errs["name"] = "Nombre requerido"
	}

	if req.Email != nil {
		switch {
		case strings.TrimSpace(*req.Email) == "":
			errs["email"] = "Email requerido"
		case !emailPattern.MatchString(*req.Email):
			errs["email"] = "Formato de correo electrónico inválido"
		}
	} else if !partial {
		errs["email"] = "Email requerido"
	}

	if req.Password != nil {
		switch {
		case strings.TrimSpace(*req.Password) == "":
			errs["password"] = "Password requerida"
		case !validPassword(*req.Password):
			errs["password"] = passwordMessage
		}
	} else if !partial {
		errs["password"] = "Password requerida"
	}

	return errs
}

// validPassword requires at least 8 characters with an upper-case letter,
// a lower-case letter, a digit and a special character, and no whitespace.
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("@#$%^&+=!", r):
			special = true
		}
	}
	return upper && lower && digit && special
}
