// Package inputval validates form input using go-playground/validator.
//
// Handlers validate a small form struct and re-render with the first
// problem found; forms are short enough that one message at a time is
// fine.
package inputval

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Result holds the outcome of validating a form struct.
type Result struct {
	problems []string
}

// HasErrors reports whether any field failed validation.
func (r Result) HasErrors() bool {
	return len(r.problems) > 0
}

// First returns the first validation problem, or "" when the input is valid.
func (r Result) First() string {
	if len(r.problems) == 0 {
		return ""
	}
	return r.problems[0]
}

// All returns every validation problem.
func (r Result) All() []string {
	return r.problems
}

// Validate checks a struct against its `validate` tags.
func Validate(v any) Result {
	err := validate.Struct(v)
	if err == nil {
		return Result{}
	}

	var res Result
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.problems = append(res.problems, err.Error())
		return res
	}
	for _, fe := range verrs {
		res.problems = append(res.problems, message(fe))
	}
	return res
}

// IsValidEmail reports whether s is a well-formed email address.
func IsValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
