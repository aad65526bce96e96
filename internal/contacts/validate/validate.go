// Package validate checks request payloads against declarative schemas. A
// schema is plain data (field name, kind, bounds, optional flag) and a single
// function, Check, interprets every schema.
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Kind int

const (
	String Kind = iota
	Email
	Int
)

// Rule constrains one field. For String and Email, Min and Max bound the
// length in characters (Max 0 means unbounded). For Int, Min is the smallest
// accepted value. Each rule is checked as a go-playground/validator tag.
type Rule struct {
	Field    string
	Kind     Kind
	Min      int
	Max      int
	Optional bool
}

type Schema []Rule

// Fields holds the values to check, keyed by field name. Supported values are
// string, *string, int64 and *int64. A missing key or nil pointer is absent.
type Fields map[string]any

// Error reports every field that failed its rule.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

const reasonRequired = "is required"

// checker is safe for concurrent use and caches parsed tags.
var checker = validator.New(validator.WithRequiredStructEnabled())

// Check validates fields against schema. It returns nil or an *Error.
func Check(schema Schema, fields Fields) error {
	errs := make(map[string]string)

	for _, rule := range schema {
		value, present := lookup(fields, rule.Field)
		if !present {
			if !rule.Optional {
				errs[rule.Field] = reasonRequired
			}
			continue
		}

		if msg := checkValue(rule, value); msg != "" {
			errs[rule.Field] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &Error{Fields: errs}
}

func lookup(fields Fields, name string) (any, bool) {
	v, ok := fields[name]
	if !ok || v == nil {
		return nil, false
	}

	switch p := v.(type) {
	case *string:
		if p == nil {
			return nil, false
		}
		return *p, true
	case *int64:
		if p == nil {
			return nil, false
		}
		return *p, true
	}
	return v, true
}

func checkValue(rule Rule, value any) string {
	switch rule.Kind {
	case String, Email:
		if _, ok := value.(string); !ok {
			return "must be a string"
		}
	case Int:
		if _, ok := value.(int64); !ok {
			return "must be an integer"
		}
	default:
		return "has an unsupported kind"
	}

	err := checker.Var(value, rule.tag())
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	return reason(rule, value, verrs[0])
}

// tag renders the rule as a validator tag. Email presence is not optional:
// a sent email must be a real address, so "" fails the email tag.
func (r Rule) tag() string {
	var tags []string
	switch r.Kind {
	case String:
		if r.Min > 0 {
			tags = append(tags, "min="+strconv.Itoa(r.Min))
		}
		if r.Max > 0 {
			tags = append(tags, "max="+strconv.Itoa(r.Max))
		}
	case Email:
		if r.Max > 0 {
			tags = append(tags, "max="+strconv.Itoa(r.Max))
		}
		tags = append(tags, "email")
	case Int:
		tags = append(tags, "min="+strconv.Itoa(r.Min))
	}
	return strings.Join(tags, ",")
}

func reason(rule Rule, value any, fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "must be a valid email"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		if rule.Kind == Int {
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
		if value == "" {
			return reasonRequired
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	}
	return "is invalid"
}
