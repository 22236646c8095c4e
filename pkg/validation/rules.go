package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = NewValidator()

// Rule is a single check over one field value. Rules are pure: the same value
// always yields the same outcome.
type Rule struct {
	Tag   string
	check func(value interface{}) (bool, string)
}

// Check reports whether value satisfies the rule and, if not, why.
func (r Rule) Check(value interface{}) (bool, string) {
	return r.check(value)
}

// Run applies rules in order and stops at the first failure.
func Run(value interface{}, rules ...Rule) (ok bool, reason string) {
	for _, rule := range rules {
		if ok, reason := rule.Check(value); !ok {
			return false, reason
		}
	}
	return true, ""
}

// FileDescriptor is the view of an uploaded file that file rules need.
type FileDescriptor interface {
	FileSize() int64
	FileMIME() string
}

// Required fails on nil, nil pointers, blank strings and empty collections.
func Required(message string) Rule {
	return Rule{Tag: "required", check: func(v interface{}) (bool, string) {
		v = indirect(v)
		if v == nil {
			return false, message
		}
		switch reflect.ValueOf(v).Kind() {
		case reflect.String:
			return varOK(v, "required,not_blank"), message
		case reflect.Slice, reflect.Map:
			return varOK(v, "gt=0"), message
		case reflect.Struct:
			if isTimeLike(v) {
				_, present := timeValue(v)
				return present, message
			}
		}
		// present means required is satisfied, zero numbers and false included
		return true, ""
	}}
}

// MinLength checks the length of a string (in characters) or a collection.
func MinLength(n int, message string) Rule {
	return optionalTag("min", fmt.Sprintf("min=%d", n), message)
}

// MaxLength checks the length of a string (in characters) or a collection.
func MaxLength(n int, message string) Rule {
	return optionalTag("max", fmt.Sprintf("max=%d", n), message)
}

// NumberRange checks min <= value <= max for any integer or float value.
func NumberRange(min, max float64, message string) Rule {
	tag := fmt.Sprintf("gte=%s,lte=%s", formatFloat(min), formatFloat(max))
	return Rule{Tag: "range", check: func(v interface{}) (bool, string) {
		v = indirect(v)
		if v == nil {
			return true, ""
		}
		f, ok := toFloat(v)
		if !ok {
			return false, message
		}
		return varOK(f, tag), message
	}}
}

// Pattern matches strings against re. Empty strings pass; pair with Required.
func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{Tag: "pattern", check: func(v interface{}) (bool, string) {
		s, present := stringValue(v)
		if !present {
			return true, ""
		}
		return re.MatchString(s), message
	}}
}

// Email validates address syntax.
func Email(message string) Rule {
	return optionalTag("email", "email", message)
}

// Tag exposes any registered validator tag as a rule.
func Tag(tag, message string) Rule {
	return optionalTag(tag, tag, message)
}

// OneOf checks enum membership against a closed set.
func OneOf(values []string, message string) Rule {
	return Rule{Tag: "oneof", check: func(v interface{}) (bool, string) {
		s, present := stringValue(v)
		if !present {
			return true, ""
		}
		return slices.Contains(values, s), message
	}}
}

// DateRange checks min <= value <= max. Zero bounds are open.
func DateRange(min, max time.Time, message string) Rule {
	return Rule{Tag: "date_range", check: func(v interface{}) (bool, string) {
		t, present := timeValue(v)
		if !present {
			return true, ""
		}
		if !min.IsZero() && t.Before(min) {
			return false, message
		}
		if !max.IsZero() && t.After(max) {
			return false, message
		}
		return true, ""
	}}
}

// MustBeTrue passes only for a true boolean. Absent counts as false.
func MustBeTrue(message string) Rule {
	return Rule{Tag: "is_true", check: func(v interface{}) (bool, string) {
		v = indirect(v)
		if _, ok := v.(bool); !ok {
			return false, message
		}
		return varOK(v, "eq=true"), message
	}}
}

// FileConstraint limits file size and MIME type. A missing file passes.
func FileConstraint(maxBytes int64, allowedMIME []string, sizeMessage, typeMessage string) Rule {
	return Rule{Tag: "file", check: func(v interface{}) (bool, string) {
		if v == nil {
			return true, ""
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return true, ""
		}
		f, ok := v.(FileDescriptor)
		if !ok {
			return false, typeMessage
		}
		if f.FileSize() > maxBytes {
			return false, sizeMessage
		}
		if !slices.Contains(allowedMIME, strings.ToLower(f.FileMIME())) {
			return false, typeMessage
		}
		return true, ""
	}}
}

func optionalTag(name, tag, message string) Rule {
	return Rule{Tag: name, check: func(v interface{}) (bool, string) {
		v = indirect(v)
		if isEmpty(v) {
			return true, ""
		}
		return varOK(v, tag), message
	}}
}

func varOK(v interface{}, tag string) bool {
	return validate.Var(v, tag) == nil
}

// indirect unwraps pointers; a nil pointer becomes nil.
func indirect(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}

func stringValue(v interface{}) (string, bool) {
	v = indirect(v)
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String || rv.Len() == 0 {
		return "", false
	}
	return rv.String(), true
}

func timeValue(v interface{}) (time.Time, bool) {
	v = indirect(v)
	if v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case interface{ Time() time.Time }:
		tt := t.Time()
		return tt, !tt.IsZero()
	}
	return time.Time{}, false
}

func isTimeLike(v interface{}) bool {
	switch v.(type) {
	case time.Time, interface{ Time() time.Time }:
		return true
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}

// Validator returns the shared instance so request binding uses the same tags.
func Validator() *validator.Validate {
	return validate
}
