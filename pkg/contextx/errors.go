package contextx

import "errors"

var ErrNoValue = errors.New("no value in context") //nolint:gochecknoglobals
