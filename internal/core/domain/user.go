package domain

import (
	"strconv"
	"strings"
)

// User models a registered diary author.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Fullname     string `json:"fullname"`
	Age          int    `json:"age"`
}

// ParseAge converts the textual age supplied at registration into a positive
// integer. Surrounding whitespace is ignored; fractions, signs other than a
// leading '+', and non-positive values are rejected. Ages must fit the 32-bit
// INTEGER column used by both storage backends.
func ParseAge(raw string) (int, error) {
	age, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || age <= 0 {
		return 0, ErrInvalidAge
	}
	return int(age), nil
}
