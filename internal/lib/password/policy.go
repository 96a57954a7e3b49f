package password

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// specialChars набор спецсимволов, хотя бы один из которых обязан присутствовать в пароле.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// MinLength минимальная длина пароля.
const MinLength = 8

// IsStrong проверяет сложность пароля: длина не менее MinLength символов
// (не байт), наличие заглавной и строчной буквы, цифры и спецсимвола из
// specialChars.
func IsStrong(password string) bool {
	if utf8.RuneCountInString(password) < MinLength {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit && strings.ContainsAny(password, specialChars)
}
