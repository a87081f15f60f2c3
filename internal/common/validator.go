package common

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// ValidationError carries every failed field check for one entity.
type ValidationError struct {
	Entity string
	Errors map[string]string
}

// Error joins the field messages in field order, e.g.
// "blog validation failed: title: must be provided, url: must be provided".
func (e ValidationError) Error() string {
	fields := maps.Keys(e.Errors)
	slices.Sort(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f, e.Errors[f]))
	}

	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(msgs, ", "))
}

type Validator struct {
	entity string
	Errors map[string]string
}

func NewValidator(entity string) *Validator {
	return &Validator{entity: entity, Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) CheckStringLength(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

func (v *Validator) ValidationError() error {
	return ValidationError{Entity: v.entity, Errors: v.Errors}
}
