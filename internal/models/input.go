// internal/models/input.go
package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type tagsKind int

const (
	tagsAbsent tagsKind = iota
	tagsString
	tagsList
)

// TagsInput holds a tags value as it arrived: a delimited string, a list
// of strings, or nothing usable.
type TagsInput struct {
	kind tagsKind
	raw  string
	list []string
}

func TagsFromString(s string) TagsInput {
	return TagsInput{kind: tagsString, raw: s}
}

func TagsFromList(list []string) TagsInput {
	return TagsInput{kind: tagsList, list: list}
}

// UnmarshalJSON never fails: values of any other shape are recorded as absent.
func (t *TagsInput) UnmarshalJSON(b []byte) error {
	*t = TagsInput{}
	if string(bytes.TrimSpace(b)) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = TagsFromString(s)
		return nil
	}

	// Lists keep their string elements; anything else in them is dropped.
	var raw []interface{}
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte("[")) {
		if err := json.Unmarshal(b, &raw); err == nil {
			list := make([]string, 0, len(raw))
			for _, el := range raw {
				if s, ok := el.(string); ok {
					list = append(list, s)
				}
			}
			*t = TagsFromList(list)
		}
	}
	return nil
}

func (t TagsInput) IsSet() bool { return t.kind != tagsAbsent }

// String returns the delimited form and whether the input was a string.
func (t TagsInput) String() (string, bool) { return t.raw, t.kind == tagsString }

// List returns the list form and whether the input was a list.
func (t TagsInput) List() ([]string, bool) { return t.list, t.kind == tagsList }

// FlexNumber accepts a JSON number or a numeric string, as sent by HTML
// forms. Parsing is deferred so callers can tell a bad number apart from
// a malformed body.
type FlexNumber struct {
	raw string
	set bool
}

func NewFlexNumber(s string) FlexNumber {
	return FlexNumber{raw: s, set: true}
}

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = FlexNumber{}
		return nil
	}
	var quoted string
	if err := json.Unmarshal(b, &quoted); err == nil {
		s = quoted
	}
	*n = NewFlexNumber(strings.TrimSpace(s))
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

// IsSet reports whether a non-null, non-empty value was supplied.
func (n FlexNumber) IsSet() bool { return n.set && n.raw != "" }

func (n FlexNumber) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(n.raw)
}
