// Package patch merges partial JSON documents onto entities.
//
// Each mutable attribute is a Field that remembers whether the client sent
// it and the raw JSON it sent. Conversion to the attribute's Go type happens
// when the patch is applied, so one bad value never blocks the others.
package patch

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissing is reported for a required attribute that was not sent.
	ErrMissing = errors.New("missing value")
	// ErrNull is reported for an explicit JSON null.
	ErrNull = errors.New("null value")
	// ErrEmpty is reported for an empty string sent to a non-text attribute.
	ErrEmpty = errors.New("empty value")
	// ErrNotScalar is reported for objects and arrays.
	ErrNotScalar = errors.New("value is not a scalar")
	// ErrNotFinite is reported for NaN and infinite numbers.
	ErrNotFinite = errors.New("number is not finite")
)

// dateTimeLayouts are tried in order for date-time attributes. The first two
// match what browsers send from datetime-local inputs.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339Nano,
}

const dayLayout = "2006-01-02"

// Field is an optional attribute of a partial update.
type Field[T any] struct {
	raw json.RawMessage
	set bool
}

// Set builds a present field from a Go value.
func Set[T any](v T) Field[T] {
	raw, err := json.Marshal(v)
	if err != nil {
		return Field[T]{}
	}
	return Field[T]{raw: raw, set: true}
}

// UnmarshalJSON records the raw value. It is called for null too, so an
// explicit null counts as present.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.raw = append(f.raw[:0], b...)
	f.set = true
	return nil
}

// Present reports whether the attribute was sent.
func (f Field[T]) Present() bool { return f.set }

// Value converts the raw value to T.
func (f Field[T]) Value() (T, error) {
	var v T
	if !f.set {
		return v, ErrMissing
	}
	err := decode(f.raw, &v)
	return v, err
}

// Day is a calendar date without a time of day.
type Day struct {
	time.Time
}

// UnmarshalText accepts "2006-01-02" or any date-time layout, keeping only
// the date.
func (d *Day) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if t, err := time.ParseInLocation(dayLayout, s, time.Local); err == nil {
		d.Time = t
		return nil
	}
	t, err := parseDateTime(s)
	if err != nil {
		return err
	}
	y, m, day := t.Date()
	d.Time = time.Date(y, m, day, 0, 0, 0, 0, time.Local)
	return nil
}

// MarshalText renders the date as "2006-01-02".
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.Format(dayLayout)), nil
}

func decode(raw json.RawMessage, dst any) error {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return ErrNull
	}
	text, err := scalarText(raw)
	if err != nil {
		return err
	}
	if _, isText := dst.(*string); !isText && strings.TrimSpace(text) == "" {
		return ErrEmpty
	}

	switch d := dst.(type) {
	case *string:
		*d = text
	case *float64:
		*d, err = strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err == nil && (math.IsNaN(*d) || math.IsInf(*d, 0)) {
			*d, err = 0, ErrNotFinite
		}
	case *int:
		*d, err = strconv.Atoi(strings.TrimSpace(text))
	case *uint:
		var n uint64
		n, err = strconv.ParseUint(strings.TrimSpace(text), 10, 0)
		*d = uint(n)
	case *bool:
		*d, err = strconv.ParseBool(strings.TrimSpace(text))
	case *time.Time:
		*d, err = parseDateTime(text)
	case encoding.TextUnmarshaler:
		err = d.UnmarshalText([]byte(text))
	default:
		return fmt.Errorf("unsupported attribute type %T", dst)
	}
	return err
}

// scalarText renders any JSON scalar as text: strings lose their quotes,
// numbers and booleans keep their literal form.
func scalarText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", ErrEmpty
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", ErrNotScalar
	}
	return string(raw), nil
}

func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date-time %q", s)
}

// Skipped is an attribute that could not be converted.
type Skipped struct {
	Field string
	Err   error
}

func (s Skipped) Error() string { return s.Field + ": " + s.Err.Error() }

func (s Skipped) Unwrap() error { return s.Err }

// Result reports what an Apply call did.
type Result struct {
	Applied []string
	Skipped []Skipped
}

// assign converts f and hands the value to set. Absent fields are ignored;
// failed conversions are recorded and leave the entity untouched.
func assign[T any](r *Result, name string, f Field[T], set func(T)) {
	if !f.set {
		return
	}
	v, err := f.Value()
	if err != nil {
		r.Skipped = append(r.Skipped, Skipped{Field: name, Err: err})
		return
	}
	set(v)
	r.Applied = append(r.Applied, name)
}

// ValidationError collects the required attributes of a creation request
// that were missing or could not be converted.
type ValidationError struct {
	Fields []Skipped
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f
	}
	return errs
}

// Err returns e when it holds failures and nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Require converts a required attribute, recording a failure in errs.
func Require[T any](errs *ValidationError, name string, f Field[T]) T {
	v, err := f.Value()
	if err != nil {
		errs.Fields = append(errs.Fields, Skipped{Field: name, Err: err})
	}
	return v
}

// Optional converts an attribute that may be absent. The boolean is false
// when the attribute was absent or unusable.
func Optional[T any](f Field[T]) (T, bool) {
	v, err := f.Value()
	return v, err == nil
}

// Null reports whether the attribute was sent as an explicit null.
func (f Field[T]) Null() bool {
	return f.set && bytes.Equal(bytes.TrimSpace(f.raw), []byte("null"))
}

// Add records a failure for field.
func (e *ValidationError) Add(field string, err error) {
	e.Fields = append(e.Fields, Skipped{Field: field, Err: err})
}
