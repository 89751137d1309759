package kraken

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"krakenbridge/pkg/core"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags and reports the first violation as a
// validation fault named after the parameter.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return core.NewValidationError(core.ErrCodeInvalidParams, fe.Field(), constraintMessage(fe))
	}
	return core.NewValidationError(core.ErrCodeInvalidParams, "", err.Error())
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

func invalidParam(field, msg string) error {
	return core.NewValidationError(core.ErrCodeInvalidParams, field, msg)
}

// checkMin validates an optional integer lower bound.
func checkMin(field string, o core.Optional[int64], min int64) error {
	if v, ok := o.Get(); ok && v < min {
		return invalidParam(field, fmt.Sprintf("must be at least %d", min))
	}
	return nil
}

// checkEnum validates an optional enumerated value.
func checkEnum[T interface{ IsValid() bool }](field string, o core.Optional[T]) error {
	if v, ok := o.Get(); ok && !v.IsValid() {
		return invalidParam(field, "unknown value")
	}
	return nil
}

// checkOneOf validates an optional string against a fixed set.
func checkOneOf(field string, o core.Optional[string], allowed ...string) error {
	v, ok := o.Get()
	if !ok || v == "" {
		return nil
	}
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return invalidParam(field, fmt.Sprintf("must be one of [%s]", strings.Join(allowed, " ")))
}

func present(o core.Optional[string]) bool {
	v, ok := o.Get()
	return ok && strings.TrimSpace(v) != ""
}

func decimalSet(o core.Optional[core.Decimal]) bool {
	v, ok := o.Get()
	return ok && v.IsSet()
}

func priceSet(o core.Optional[core.Price]) bool {
	v, ok := o.Get()
	return ok && v.IsSet()
}

func formatDecimal(d core.Decimal) string { return d.String() }

func formatPrice(p core.Price) string { return p.String() }

func formatBound(b core.Bound) string { return b.String() }

func formatEnum[T fmt.Stringer](v T) string { return v.String() }
