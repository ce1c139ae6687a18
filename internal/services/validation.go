package services

import (
	"sort"
	"strings"
	"time"
)

// Validation messages shared by every resource.
const (
	MsgBlank       = "can't be blank"
	MsgInvalid     = "is invalid"
	MsgMustExist   = "must exist"
	MsgTaken       = "has already been taken"
	MsgNoRecipeRow = "Recipe must have at least one ingredient"
)

// BaseField holds errors that are not tied to a single field.
const BaseField = "base"

// ValidationError collects field-scoped messages. Returning one aborts the
// write it came from.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (v *ValidationError) Add(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

func (v *ValidationError) Any() bool {
	return len(v.Fields) > 0
}

func (v *ValidationError) Error() string {
	fields := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		for _, msg := range v.Fields[field] {
			if field == BaseField {
				parts = append(parts, msg)
			} else {
				parts = append(parts, field+" "+msg)
			}
		}
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

const dateLayout = "2006-01-02"

// parseDate validates a required YYYY-MM-DD field.
func parseDate(v *ValidationError, field, value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add(field, MsgBlank)
		return time.Time{}
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		v.Add(field, MsgInvalid)
		return time.Time{}
	}
	return d
}
