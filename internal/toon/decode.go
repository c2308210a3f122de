package toon

import (
	"fmt"
	"strconv"
	"strings"
)

// DecodeError describes a malformed TOON document. Pos is a byte offset
// into the input.
type DecodeError struct {
	Pos int
	Msg string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("toon: decode error at offset %d: %s", e.Pos, e.Msg)
}

func decodeErr(pos int, format string, args ...any) *DecodeError {
	return &DecodeError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Decode parses a TOON document. Objects come back as *Object, lists as
// []any, numbers as int64 or float64. The parser is strict: unbalanced
// delimiters, bad escapes, key/value pairs without a colon, tabular rows
// of the wrong width and trailing garbage are all errors.
func Decode(s string) (any, error) {
	if s == "" {
		return nil, decodeErr(0, "empty input")
	}
	// A bare top-level object carries no braces, so an unwrapped colon
	// at depth zero marks an object body.
	if s[0] != '{' && s[0] != '[' && s[0] != '"' {
		hasColon, err := containsTopLevel(s, 0, ':')
		if err != nil {
			return nil, err
		}
		if hasColon {
			return parseObjectBody(s, 0)
		}
	}
	return parseValue(s, 0)
}

func parseValue(s string, pos int) (any, error) {
	if s == "" {
		return nil, decodeErr(pos, "empty value")
	}
	switch s[0] {
	case '{':
		inner, ok := wrapped(s, '{', '}')
		if !ok {
			return nil, decodeErr(pos, "unbalanced braces")
		}
		return parseObjectBody(inner, pos+1)
	case '[':
		inner, ok := wrapped(s, '[', ']')
		if !ok {
			return nil, decodeErr(pos, "unbalanced brackets")
		}
		return parseList(inner, pos+1)
	case '"':
		return unquote(s, pos)
	}
	return parseScalar(s, pos)
}

// wrapped reports whether s is exactly one balanced open...close group
// and returns its interior.
func wrapped(s string, open, close byte) (string, bool) {
	if len(s) < 2 || s[0] != open || s[len(s)-1] != close {
		return "", false
	}
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '\\' {
				i++
			} else if c == '"' {
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 && i != len(s)-1 {
				return "", false
			}
		}
	}
	if depth != 0 || inQuote {
		return "", false
	}
	return s[1 : len(s)-1], true
}

func parseObjectBody(s string, pos int) (*Object, error) {
	obj := NewObject()
	if s == "" {
		return obj, nil
	}
	pairs, err := splitTop(s, pos, '|')
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if p.text == "" {
			return nil, decodeErr(p.pos, "empty key/value pair")
		}
		ci, err := indexTopLevel(p.text, p.pos, ':')
		if err != nil {
			return nil, err
		}
		if ci < 0 {
			return nil, decodeErr(p.pos, "key/value pair without colon: %q", p.text)
		}
		rawKey := p.text[:ci]
		key, err := parseKey(rawKey, p.pos)
		if err != nil {
			return nil, err
		}
		if _, exists := obj.Get(key); exists {
			return nil, decodeErr(p.pos, "duplicate key %q", key)
		}
		val, err := parseValue(p.text[ci+1:], p.pos+ci+1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	return obj, nil
}

func parseKey(s string, pos int) (string, error) {
	if s == "" {
		return "", decodeErr(pos, "empty key")
	}
	if s[0] == '"' {
		return unquote(s, pos)
	}
	if strings.ContainsAny(s, "{}[]\"\\") {
		return "", decodeErr(pos, "unquoted key contains reserved character: %q", s)
	}
	return s, nil
}

func parseList(s string, pos int) ([]any, error) {
	if s == "" {
		return []any{}, nil
	}
	if s[0] == '{' {
		header, rest, ok := splitHeader(s)
		if ok {
			tabular, err := isTabularHeader(header, pos+1)
			if err != nil {
				return nil, err
			}
			if tabular {
				return parseTabular(header, rest, pos)
			}
		}
	}
	elems, err := splitTop(s, pos, ';')
	if err != nil {
		return nil, err
	}
	list := make([]any, 0, len(elems))
	for _, e := range elems {
		v, err := parseValue(e.text, e.pos)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

// splitHeader splits "{...}rest" at the closing brace of the leading
// group.
func splitHeader(s string) (header, rest string, ok bool) {
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '\\' {
				i++
			} else if c == '"' {
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// isTabularHeader distinguishes a tabular key header from a regular
// object element: headers hold at least one key and no colons.
func isTabularHeader(header string, pos int) (bool, error) {
	if header == "" {
		return false, nil
	}
	hasColon, err := containsTopLevel(header, pos, ':')
	if err != nil {
		return false, err
	}
	return !hasColon, nil
}

func parseTabular(header, rest string, pos int) ([]any, error) {
	keyParts, err := splitTop(header, pos+1, '|')
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(keyParts))
	for _, kp := range keyParts {
		k, err := parseKey(kp.text, kp.pos)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if rest == "" {
		return nil, decodeErr(pos, "tabular list without rows")
	}
	rowStart := pos + len(header) + 2
	rows, err := splitTop(rest, rowStart, ';')
	if err != nil {
		return nil, err
	}
	list := make([]any, 0, len(rows))
	for _, row := range rows {
		cells, err := splitTop(row.text, row.pos, '|')
		if err != nil {
			return nil, err
		}
		if len(cells) != len(keys) {
			return nil, decodeErr(row.pos, "tabular row has %d cells, header has %d keys", len(cells), len(keys))
		}
		obj := NewObject()
		for i, cell := range cells {
			v, err := parseValue(cell.text, cell.pos)
			if err != nil {
				return nil, err
			}
			obj.Set(keys[i], v)
		}
		list = append(list, obj)
	}
	return list, nil
}

func parseScalar(s string, pos int) (any, error) {
	if strings.ContainsAny(s, "|:;{}[]\"\\") {
		return nil, decodeErr(pos, "unquoted value contains reserved character: %q", s)
	}
	switch s {
	case "null":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return s, nil
}

func unquote(s string, pos int) (string, error) {
	if len(s) < 2 || s[0] != '"' {
		return "", decodeErr(pos, "expected quoted string")
	}
	var sb strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '\\' {
			if i+1 >= len(s) {
				return "", decodeErr(pos+i, "dangling escape")
			}
			next := s[i+1]
			if next != '"' && next != '\\' {
				return "", decodeErr(pos+i, "invalid escape \\%c", next)
			}
			sb.WriteByte(next)
			i += 2
			continue
		}
		if c == '"' {
			if i != len(s)-1 {
				return "", decodeErr(pos+i+1, "trailing characters after closing quote")
			}
			return sb.String(), nil
		}
		sb.WriteByte(c)
		i++
	}
	return "", decodeErr(pos, "unterminated quoted string")
}

type segment struct {
	text string
	pos  int
}

// splitTop splits s on sep at nesting depth zero, honoring quotes and
// escapes. It rejects unbalanced delimiters and unterminated quotes.
func splitTop(s string, pos int, sep byte) ([]segment, error) {
	var parts []segment
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '\\' {
				i++
			} else if c == '"' {
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return nil, decodeErr(pos+i, "unbalanced closing delimiter %q", string(c))
			}
		case sep:
			if depth == 0 {
				parts = append(parts, segment{text: s[start:i], pos: pos + start})
				start = i + 1
			}
		}
	}
	if inQuote {
		return nil, decodeErr(pos, "unterminated quoted string")
	}
	if depth != 0 {
		return nil, decodeErr(pos, "unbalanced delimiters")
	}
	parts = append(parts, segment{text: s[start:], pos: pos + start})
	return parts, nil
}

func containsTopLevel(s string, pos int, sep byte) (bool, error) {
	i, err := indexTopLevel(s, pos, sep)
	return i >= 0, err
}

func indexTopLevel(s string, pos int, sep byte) (int, error) {
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '\\' {
				i++
			} else if c == '"' {
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return -1, decodeErr(pos+i, "unbalanced closing delimiter %q", string(c))
			}
		case sep:
			if depth == 0 {
				return i, nil
			}
		}
	}
	if inQuote {
		return -1, decodeErr(pos, "unterminated quoted string")
	}
	if depth != 0 {
		return -1, decodeErr(pos, "unbalanced delimiters")
	}
	return -1, nil
}
