package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"deribit-common/internal/errors"
)

// validate is shared by every draft builder; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldKinds picks the taxonomy kind reported when a draft field fails its
// struct tags.
var fieldKinds = map[string]errors.Kind{
	"order_id":        errors.InvalidOrderID,
	"instrument_name": errors.InvalidOrUnsupportedInstrument,
	"amount":          errors.InvalidAmount,
	"price":           errors.InvalidPrice,
}

// validateDraft runs the struct tags on draft and converts the first failure
// into a *errors.ValidationError named after the wire field.
func validateDraft(draft interface{}) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.NewValidationError(errors.InvalidArguments, "", draft, err.Error())
	}
	fe := fieldErrs[0]
	kind, ok := fieldKinds[fe.Field()]
	if !ok {
		kind = errors.BadArgument
	}
	msg := fmt.Sprintf("failed %q constraint", fe.Tag())
	if fe.Param() != "" {
		msg = fmt.Sprintf("failed %q constraint (%s)", fe.Tag(), fe.Param())
	}
	return errors.NewValidationError(kind, fe.Field(), fe.Value(), msg)
}
