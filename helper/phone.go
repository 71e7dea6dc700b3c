package helper

import (
	"errors"
	"fmt"
	"strings"

	"restaurant_pos/constants"

	"github.com/nyaruka/phonenumbers"
)

var (
	ErrEmptyPhone   = errors.New("phone has no digits")
	ErrInvalidPhone = errors.New("phone is not a number")
)

// NormalizePhone returns the number in E.164 form without the leading "+",
// the shape the WhatsApp gateway expects. Numbers without a country code
// are read as Brazilian. A stored result fed back in yields itself.
func NormalizePhone(raw string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if strings.TrimLeft(digits, "0") == "" {
		return "", ErrEmptyPhone
	}

	num, err := phonenumbers.Parse(raw, constants.DEFAULT_PHONE_REGION)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	// A stored foreign number has lost its "+"; read it back as international
	// when it does not make sense as a local one.
	if !strings.HasPrefix(strings.TrimSpace(raw), "+") && !phonenumbers.IsValidNumber(num) {
		intl, err := phonenumbers.Parse("+"+strings.TrimLeft(digits, "0"), constants.DEFAULT_PHONE_REGION)
		if err == nil && phonenumbers.IsValidNumber(intl) {
			num = intl
		}
	}
	return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+"), nil
}
