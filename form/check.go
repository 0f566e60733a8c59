package form

import (
	"regexp"
	"strconv"
	"strings"
)

// NameMax is the longest library or drive name the engine stores.
const NameMax = 36

var (
	validStringRegexp = regexp.MustCompile(`^[A-Za-z0-9]*$`)
	numericRegexp     = regexp.MustCompile(`^[0-9]+$`)
)

// ValidString reports whether s holds only ASCII letters and digits.
func ValidString(s string) bool {
	return validStringRegexp.MatchString(s)
}

// IsNumeric reports whether s is a non-empty run of decimal digits.
func IsNumeric(s string) bool {
	return numericRegexp.MatchString(s)
}

func checkRequired(field, value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return fail(ErrEmptyField, field, msg)
	}

	return nil
}

func checkValidString(field, value, msg string) error {
	if !ValidString(value) {
		return fail(ErrInvalidCharacters, field, msg)
	}

	return nil
}

func checkNameLength(field, value, msg string) error {
	if len(value) > NameMax {
		return fail(ErrWrongLength, field, msg)
	}

	return nil
}

// checkNumber parses a decimal field. Digit strings too large for an int are
// reported as out of range.
func checkNumber(field, value, msg string) (int, error) {
	if !IsNumeric(value) {
		return 0, fail(ErrNonNumeric, field, msg)
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fail(ErrOutOfRange, field, msg)
	}

	return n, nil
}

// hiddenNumber parses a numeric field the page fills in itself; a bad value
// means the page was tampered with or is stale.
func hiddenNumber(field, value string) (int, error) {
	if value == "" {
		return 0, fail(ErrEmptyField, field, "Insufficient parameters passed. Missing "+field)
	}

	return checkNumber(field, value, "Invalid parameter passed for "+field)
}
