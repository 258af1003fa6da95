package model

import apperrors "hotelbooking/pkg/errors"

// Decoded is embedded in request inputs. It keeps the body members that could
// not be decoded into their field so validation can report them with the
// rest.
type Decoded struct {
	typeErrors apperrors.FieldErrors
}

func (d *Decoded) SetTypeErrors(fields apperrors.FieldErrors) {
	d.typeErrors = fields
}

func (d *Decoded) TypeErrors() apperrors.FieldErrors {
	return d.typeErrors
}
