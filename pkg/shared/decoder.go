package shared

import (
	"github.com/go-playground/form"
	"github.com/google/uuid"
)

// Decoder binds url.Values (query strings, form posts) onto typed DTOs.
var Decoder = form.NewDecoder()

func init() {
	Decoder.SetTagName("form")
	// Absent or empty values bind to uuid.Nil so optional id filters
	// stay optional.
	Decoder.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		if len(vals) == 0 || vals[0] == "" {
			return uuid.Nil, nil
		}
		return uuid.Parse(vals[0])
	}, uuid.UUID{})
}
