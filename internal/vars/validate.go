package vars

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ValidationError reports a raw value that a Var rejected.
type ValidationError struct {
	Name  string
	Value any
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (v *Var) fail(raw any, format string, args ...any) error {
	return &ValidationError{Name: v.Name, Value: raw, Msg: fmt.Sprintf(format, args...)}
}

var (
	trueTokens  = []string{"t", "y", "yes", "true", "1"}
	falseTokens = []string{"f", "n", "no", "false", "0"}
)

// Validate turns raw input into the variable's typed value. It never returns
// an invalid value: any input it cannot coerce yields a *ValidationError.
func (v *Var) Validate(raw any) (any, error) {
	switch v.Kind {
	case KindBoolean:
		return v.validateBool(raw)
	case KindOnOff:
		return v.validateOnOff(raw)
	case KindInt:
		return v.validateInt(raw)
	case KindBoundedInt:
		n, err := v.validateInt(raw)
		if err != nil {
			return nil, err
		}
		if n < v.Min || n > v.Max {
			return nil, v.fail(raw, "%d does not fall within allowed bounds: %d:%d", n, v.Min, v.Max)
		}
		return n, nil
	case KindDottedName:
		return v.validateDotted(raw)
	case KindStringChoice:
		s, err := v.validateString(raw)
		if err != nil {
			return nil, err
		}
		s = strings.ToLower(s)
		if !slices.Contains(v.Choices, s) {
			return nil, v.fail(raw, "Not a valid value: %s (choose from %s)", s, strings.Join(v.Choices, ", "))
		}
		return s, nil
	default:
		return v.validateString(raw)
	}
}

// Resolve validates raw and also returns the structures selected by the
// resulting value, if the variable maps values to structures.
func (v *Var) Resolve(raw any) (any, []string, error) {
	value, err := v.Validate(raw)
	if err != nil {
		return nil, nil, err
	}
	return value, v.StructuresFor(value), nil
}

// StructuresFor returns the structure names mapped to an already validated value.
func (v *Var) StructuresFor(value any) []string {
	if len(v.Structures) == 0 {
		return nil
	}
	names, ok := v.Structures[fmt.Sprint(value)]
	if !ok {
		return nil
	}
	return append([]string(nil), names...)
}

func asText(raw any) (string, bool) {
	switch s := raw.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

func (v *Var) validateString(raw any) (string, error) {
	s, ok := asText(raw)
	if !ok {
		return "", v.fail(raw, "Not a string value: %v", raw)
	}
	return strings.TrimSpace(s), nil
}

// truthToken maps the accepted boolean spellings; ok is false for anything else.
func truthToken(raw any) (value, ok bool) {
	switch x := raw.(type) {
	case bool:
		return x, true
	case int:
		switch x {
		case 1:
			return true, true
		case 0:
			return false, true
		}
		return false, false
	}
	s, isText := asText(raw)
	if !isText {
		return false, false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case slices.Contains(trueTokens, s):
		return true, true
	case slices.Contains(falseTokens, s):
		return false, true
	}
	return false, false
}

func (v *Var) validateBool(raw any) (bool, error) {
	b, ok := truthToken(raw)
	if !ok {
		return false, v.fail(raw, "Not a valid boolean value: %v", raw)
	}
	return b, nil
}

func (v *Var) validateOnOff(raw any) (string, error) {
	if s, isText := asText(raw); isText {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "on":
			return "on", nil
		case "off":
			return "off", nil
		}
	}
	b, ok := truthToken(raw)
	if !ok {
		return "", v.fail(raw, "Not a valid on/off value: %v", raw)
	}
	if b {
		return "on", nil
	}
	return "off", nil
}

func (v *Var) validateInt(raw any) (int, error) {
	bad := func() (int, error) { return 0, v.fail(raw, "Not a valid int: %v", raw) }
	switch x := raw.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		if x < math.MinInt || x > math.MaxInt {
			return bad()
		}
		return int(x), nil
	case uint:
		if uint64(x) > math.MaxInt {
			return bad()
		}
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case uint64:
		if x > math.MaxInt {
			return bad()
		}
		return int(x), nil
	case float32:
		return truncate(float64(x), bad)
	case float64:
		return truncate(x, bad)
	}
	s, ok := asText(raw)
	if !ok {
		return bad()
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return bad()
	}
	return n, nil
}

func truncate(f float64, bad func() (int, error)) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return bad()
	}
	t := math.Trunc(f)
	if t < math.MinInt || t >= math.MaxInt {
		return bad()
	}
	return int(t), nil
}

func (v *Var) validateDotted(raw any) (string, error) {
	s, err := v.validateString(raw)
	if err != nil {
		return "", err
	}
	for _, segment := range strings.Split(s, ".") {
		if !IsIdentifier(segment) {
			return "", v.fail(raw, "Not a valid dotted name: %s ('%s' is not an identifier)", s, segment)
		}
	}
	return s, nil
}

// IsIdentifier reports whether s is a non-empty run of ASCII letters, digits
// and underscores that does not start with a digit.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
