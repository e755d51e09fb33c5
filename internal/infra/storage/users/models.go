package users

import "strings"

// User профиль пользователя бота
type User struct {
	UserID   int64
	Username string
	Name     string
	Phone    string
	Lang     string
}

// NormalizePhone приводит телефон к виду E.164: только цифры с ведущим "+"
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	var digits strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return "+" + digits.String()
}
