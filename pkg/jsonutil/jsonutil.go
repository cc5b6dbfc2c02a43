// Package jsonutil wraps github.com/go-json-experiment/json with the lenient
// options scanner payloads need: duplicate member names and invalid UTF-8
// are tolerated instead of failing the whole document.
//
// Usage:
//
//	import "github.com/waftester/scanreport/pkg/jsonutil"
//
//	err := jsonutil.Unmarshal(data, &v)
//	members, err := jsonutil.Members(data) // object members in document order
package jsonutil

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// ErrNotObject is returned by Members when the input is not a JSON object.
var ErrNotObject = errors.New("jsonutil: not a JSON object")

// lenient are the decode options applied to all scanner payloads.
var lenient = json.JoinOptions(
	jsontext.AllowDuplicateNames(true),
	jsontext.AllowInvalidUTF8(true),
)

// Unmarshal parses the JSON-encoded data and stores the result in v.
// Duplicate names resolve to the last occurrence.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v, lenient)
}

// Member is one name/value pair of a JSON object.
type Member struct {
	Name  string
	Value jsontext.Value
}

// Members decodes a JSON object into its members, preserving document order
// and keeping duplicate names as separate entries.
func Members(data []byte) ([]Member, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data), lenient)

	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind() != '{' {
		return nil, fmt.Errorf("%w: got %v", ErrNotObject, tok.Kind())
	}

	var out []Member
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		// The token is invalidated by the next decoder call.
		name := tok.String()
		val, err := dec.ReadValue()
		if err != nil {
			return nil, err
		}
		out = append(out, Member{Name: name, Value: val.Clone()})
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	if k := dec.PeekKind(); k != 0 {
		return nil, fmt.Errorf("jsonutil: unexpected %v after object", k)
	}
	return out, nil
}

// LooseString decodes a JSON string, number or boolean as its text form and
// null as the empty string. Scanners are inconsistent about quoting numeric
// fields such as counts and CWE identifiers.
type LooseString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(b []byte) error {
	v := jsontext.Value(b)
	switch v.Kind() {
	case '"':
		var str string
		if err := json.Unmarshal(b, &str, lenient); err != nil {
			return err
		}
		*s = LooseString(str)
	case 'n':
		*s = ""
	case '0', 't', 'f':
		*s = LooseString(strings.TrimSpace(string(b)))
	default:
		return fmt.Errorf("jsonutil: cannot decode %v as string", v.Kind())
	}
	return nil
}

// String returns the decoded text.
func (s LooseString) String() string {
	return string(s)
}
