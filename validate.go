package authvault

import (
	"regexp"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// validEmail applies the registration email shape check.
func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// checkPasswordPolicy enforces the registration policy: at least 8
// characters, one uppercase letter, and one digit.
func checkPasswordPolicy(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && digit
}

// PasswordStrength scores pw from 0 to 4, one point each for length of at
// least 8, an uppercase letter, a digit, and a symbol. UI layers map the
// score onto a strength meter; registration itself requires only the first
// three criteria.
func PasswordStrength(pw string) int {
	var upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	score := 0
	if len(pw) >= 8 {
		score++
	}
	if upper {
		score++
	}
	if digit {
		score++
	}
	if symbol {
		score++
	}
	return score
}

func isNumericString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
