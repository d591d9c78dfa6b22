package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var errSectionNotObject = errors.New("section is not a json object")

// Section is one free-form attribute block of a tool record. Keys keep the
// order in which they appeared in the source document.
type Section struct {
	entries *orderedmap.OrderedMap[string, Scalar]
}

// NewSection returns an empty section.
func NewSection() *Section {
	return &Section{entries: orderedmap.New[string, Scalar]()}
}

// SectionOf builds a section from alternating key/value pairs, in order.
func SectionOf(pairs ...any) *Section {
	section := NewSection()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		section.Set(key, scalarFromNative(pairs[i+1]))
	}
	return section
}

func (s *Section) Set(key string, value Scalar) {
	if s.entries == nil {
		s.entries = orderedmap.New[string, Scalar]()
	}
	s.entries.Set(key, value)
}

// Get is safe on a nil section.
func (s *Section) Get(key string) (Scalar, bool) {
	if s == nil || s.entries == nil {
		return Scalar{}, false
	}
	return s.entries.Get(key)
}

// Value returns the display string for key, or "" when absent.
func (s *Section) Value(key string) string {
	value, ok := s.Get(key)
	if !ok {
		return ""
	}
	return value.String()
}

func (s *Section) Len() int {
	if s == nil || s.entries == nil {
		return 0
	}
	return s.entries.Len()
}

// Keys returns the keys in document order.
func (s *Section) Keys() []string {
	if s.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// UnmarshalJSON only accepts JSON objects.
func (s *Section) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errSectionNotObject
	}
	entries := orderedmap.New[string, Scalar]()
	if err := entries.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	s.entries = entries
	return nil
}

func (s *Section) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, _ := s.Get(key)
		encodedValue, err := value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseSection decodes a raw section. Absent, null and non-object values
// yield nil so they behave like a missing section everywhere.
func ParseSection(raw json.RawMessage) (*Section, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil
	}
	section := NewSection()
	if err := section.UnmarshalJSON(trimmed); err != nil {
		return nil, err
	}
	return section, nil
}

func scalarFromNative(value any) Scalar {
	switch v := value.(type) {
	case string:
		return StringScalar(v)
	case bool:
		return BoolScalar(v)
	case int:
		return NumberScalar(strconv.Itoa(v))
	case int64:
		return NumberScalar(strconv.FormatInt(v, 10))
	case float64:
		encoded, err := json.Marshal(v)
		if err != nil {
			return OtherScalar()
		}
		return NumberScalar(string(encoded))
	case Scalar:
		return v
	default:
		return OtherScalar()
	}
}
