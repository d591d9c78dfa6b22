package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var errInvalidScalar = errors.New("invalid json value")

// ScalarKind tags the shape of an attribute value.
type ScalarKind int

const (
	// ScalarOther covers null, arrays and objects.
	ScalarOther ScalarKind = iota
	ScalarString
	ScalarNumber
	ScalarBool
)

// Scalar is a single attribute value from a tool section.
type Scalar struct {
	kind ScalarKind
	text string
}

func StringScalar(value string) Scalar {
	return Scalar{kind: ScalarString, text: value}
}

// NumberScalar stores a JSON number literal in its canonical decimal form.
func NumberScalar(literal string) Scalar {
	return Scalar{kind: ScalarNumber, text: canonicalNumber(literal)}
}

func BoolScalar(value bool) Scalar {
	return Scalar{kind: ScalarBool, text: strconv.FormatBool(value)}
}

func OtherScalar() Scalar {
	return Scalar{kind: ScalarOther}
}

func (s Scalar) Kind() ScalarKind {
	return s.kind
}

// String renders the value for display. Other values render empty.
func (s Scalar) String() string {
	if s.kind == ScalarOther {
		return ""
	}
	return s.text
}

// UnmarshalJSON accepts any JSON value; non-scalars collapse to ScalarOther.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*s = OtherScalar()
		return nil
	}
	switch trimmed[0] {
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*s = StringScalar(value)
	case 't', 'f':
		var value bool
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*s = BoolScalar(value)
	case 'n', '[', '{':
		if !json.Valid(trimmed) {
			return errInvalidScalar
		}
		*s = OtherScalar()
	default:
		var number json.Number
		if err := json.Unmarshal(trimmed, &number); err != nil {
			return err
		}
		*s = NumberScalar(number.String())
	}
	return nil
}

// MarshalJSON writes strings and booleans natively, numbers as their literal
// and other values as null.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case ScalarString:
		return json.Marshal(s.text)
	case ScalarNumber, ScalarBool:
		return []byte(s.text), nil
	default:
		return []byte("null"), nil
	}
}

// Native returns the value as a plain Go value for generic encoders.
func (s Scalar) Native() any {
	switch s.kind {
	case ScalarString:
		return s.text
	case ScalarBool:
		return s.text == "true"
	case ScalarNumber:
		if i, err := strconv.ParseInt(s.text, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s.text, 64); err == nil {
			return f
		}
		return s.text
	default:
		return nil
	}
}

// canonicalNumber renders integers without a fraction and other numbers in
// shortest decimal form, keeping a trailing ".0" for integral floats.
func canonicalNumber(literal string) string {
	literal = strings.TrimSpace(literal)
	if literal == "" {
		return ""
	}
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if u, err := strconv.ParseUint(literal, 10, 64); err == nil {
		return strconv.FormatUint(u, 10)
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return literal
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(out, ".") {
		out += ".0"
	}
	return out
}
