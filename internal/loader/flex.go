package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Hand-authored maps quote most scalars ("room_number": "1", "active":
// "true"), so every scalar field accepts either the JSON type or a string
// holding it. A zero-value field with set == false was absent or null.

type flexInt struct {
	set bool
	v   int
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s, ok, err := scalarText(b)
	if err != nil || !ok || s == "" {
		return err
	}
	if i, err := strconv.Atoi(s); err == nil {
		f.v, f.set = i, true
		return nil
	}
	// Accept "2.0" but not "2.9".
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(fl, 0) || fl != math.Trunc(fl) {
		return fmt.Errorf("invalid integer %s", b)
	}
	f.v, f.set = int(fl), true
	return nil
}

func (f flexInt) or(def int) int {
	if !f.set {
		return def
	}
	return f.v
}

type flexFloat struct {
	set bool
	v   float64
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s, ok, err := scalarText(b)
	if err != nil || !ok || s == "" {
		return err
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(fl) || math.IsInf(fl, 0) {
		return fmt.Errorf("invalid number %s", b)
	}
	f.v, f.set = fl, true
	return nil
}

func (f flexFloat) or(def float64) float64 {
	if !f.set {
		return def
	}
	return f.v
}

type flexBool struct {
	set bool
	v   bool
}

func (f *flexBool) UnmarshalJSON(b []byte) error {
	s, ok, err := scalarText(b)
	if err != nil || !ok || s == "" {
		return err
	}
	v, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return fmt.Errorf("invalid boolean %s", b)
	}
	f.v, f.set = v, true
	return nil
}

func (f flexBool) or(def bool) bool {
	if !f.set {
		return def
	}
	return f.v
}

type flexString struct {
	set bool
	v   string
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	s, ok, err := scalarText(b)
	if err != nil || !ok {
		return err
	}
	f.v, f.set = s, true
	return nil
}

func (f flexString) or(def string) string {
	if !f.set {
		return def
	}
	return f.v
}

// flexList is a comma separated string or an array of strings.
type flexList []string

func (f *flexList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var names []string
		if err := json.Unmarshal(b, &names); err != nil {
			return fmt.Errorf("invalid name list: %w", err)
		}
		*f = clean(names)
		return nil
	}

	s, ok, err := scalarText(b)
	if err != nil || !ok {
		return err
	}
	*f = clean(strings.Split(s, ","))
	return nil
}

func clean(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// scalarText returns the text of a JSON string, number or boolean. ok is
// false for null.
func scalarText(b []byte) (string, bool, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", false, nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		return strings.TrimSpace(s), true, nil
	case '{', '[':
		return "", false, fmt.Errorf("expected a scalar, got %s", b)
	default:
		return string(b), true, nil
	}
}
