// Package validation holds the format checks for the custom document codes.
package validation

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	isoCodeRe  = regexp.MustCompile(`^ISO-\d+$`)
	lawCodeRe  = regexp.MustCompile(`^Ley N° \d{1,3}(\.\d{3})*$`)
	dateCodeRe = regexp.MustCompile(`^P-\d{2}\.(19|20)\d{2}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])$`)

	hexCodeRe = regexp.MustCompile(`^(0x)?[0-9A-Fa-f]+$`)
)

// ValidatePublicationCode reports whether code is an ISO reference (ISO-27001),
// a statute reference (Ley N° 19.628) or a date-coded reference (P-01.20240115).
// The date of a date-coded reference must exist in the calendar.
func ValidatePublicationCode(code string) bool {
	return isoCodeRe.MatchString(code) ||
		lawCodeRe.MatchString(code) ||
		validDateCode(code)
}

func validDateCode(code string) bool {
	if !dateCodeRe.MatchString(code) {
		return false
	}
	// time.Parse rejects days past the end of the month, including Feb 29 off leap years.
	_, err := time.Parse("20060102", code[len(code)-8:])
	return err == nil
}

// ValidateHexCode reports whether code is a hexadecimal string with an optional 0x prefix.
func ValidateHexCode(code string) bool {
	return hexCodeRe.MatchString(code)
}

var (
	// PublicationCode is an ozzo rule backed by ValidatePublicationCode.
	// Empty values pass so it can be combined with validation.Required.
	PublicationCode = validation.By(stringRule(ValidatePublicationCode, "must be ISO-<n>, Ley N° <n> or P-DD.YYYYMMDD"))

	// HexCode is an ozzo rule backed by ValidateHexCode.
	HexCode = validation.By(stringRule(ValidateHexCode, "must be hexadecimal, optionally prefixed with 0x"))
)

func stringRule(ok func(string) bool, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, isStr := value.(string)
		if !isStr {
			if p, isPtr := value.(*string); isPtr && p != nil {
				s = *p
			} else {
				return errors.New("must be a string")
			}
		}
		if s == "" {
			return nil
		}
		if !ok(s) {
			return errors.New(msg)
		}
		return nil
	}
}
