package form

import (
	"net/http"

	"github.com/ansel1/merry"
)

// Validation failure kinds. Every error returned by a submit gate wraps
// exactly one of these and carries the field name and the message shown to
// the user.
var (
	ErrEmptyField        = merry.New("empty field").WithHTTPCode(http.StatusBadRequest)
	ErrInvalidCharacters = merry.New("invalid characters").WithHTTPCode(http.StatusBadRequest)
	ErrNonNumeric        = merry.New("non numeric value").WithHTTPCode(http.StatusBadRequest)
	ErrOutOfRange        = merry.New("value out of range").WithHTTPCode(http.StatusBadRequest)
	ErrWrongLength       = merry.New("wrong length").WithHTTPCode(http.StatusBadRequest)
)

type fieldKey struct{}

// Invalid returns a validation error of the given kind for field. msg is
// shown to the user.
func Invalid(kind merry.Error, field, msg string) error {
	return fail(kind, field, msg)
}

func fail(kind merry.Error, field, msg string) error {
	return merry.Here(kind).
		WithMessagef("%s: %s", field, kind.Error()).
		WithUserMessage(msg).
		WithValue(fieldKey{}, field)
}

// Field returns the name of the form field a validation error refers to.
func Field(err error) string {
	field, _ := merry.Value(err, fieldKey{}).(string)
	return field
}

// Message returns the user-facing text of a validation error.
func Message(err error) string {
	return merry.UserMessage(err)
}

func IsValidation(err error) bool {
	return merry.Is(err,
		ErrEmptyField,
		ErrInvalidCharacters,
		ErrNonNumeric,
		ErrOutOfRange,
		ErrWrongLength,
	)
}
