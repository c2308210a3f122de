package toon

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Encode serializes v into TOON. Supported values are nil, bool, string,
// Go integer and float types, []any, map[string]any (keys sorted for
// determinism) and *Object (insertion order kept). A top-level object is
// written without braces; a top-level list keeps its brackets.
func Encode(v any) (string, error) {
	var sb strings.Builder
	if err := encodeValue(&sb, v, true); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func encodeValue(sb *strings.Builder, v any, topLevel bool) error {
	switch val := v.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		if val {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case string:
		sb.WriteString(encodeString(val))
	case int:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int32:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))
	case float32:
		return encodeFloat(sb, float64(val))
	case float64:
		return encodeFloat(sb, val)
	case []any:
		return encodeList(sb, val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return encodeObject(sb, keys, func(k string) any { return val[k] }, topLevel)
	case *Object:
		return encodeObject(sb, val.keys, func(k string) any { return val.values[k] }, topLevel)
	default:
		return fmt.Errorf("toon: unsupported type %T", v)
	}
	return nil
}

func encodeFloat(sb *strings.Builder, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("toon: cannot encode %v", f)
	}
	sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

func encodeObject(sb *strings.Builder, keys []string, value func(string) any, topLevel bool) error {
	// A bare top-level body has no braces, but an empty one must keep
	// them: "" is not decodable, "{}" is.
	braced := !topLevel || len(keys) == 0
	if braced {
		sb.WriteByte('{')
	}
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(encodeString(k))
		sb.WriteByte(':')
		if err := encodeValue(sb, value(k), false); err != nil {
			return err
		}
	}
	if braced {
		sb.WriteByte('}')
	}
	return nil
}

func encodeList(sb *strings.Builder, list []any) error {
	sb.WriteByte('[')
	if keys, ok := tabularKeys(list); ok {
		if err := encodeTabular(sb, list, keys); err != nil {
			return err
		}
	} else {
		for i, elem := range list {
			if i > 0 {
				sb.WriteByte(';')
			}
			if err := encodeValue(sb, elem, false); err != nil {
				return err
			}
		}
	}
	sb.WriteByte(']')
	return nil
}

// tabularKeys reports whether list qualifies for the tabular form: at
// least two elements, every element an object, and all elements sharing
// the same keys in the same order.
func tabularKeys(list []any) ([]string, bool) {
	if len(list) < 2 {
		return nil, false
	}
	var ref []string
	for i, elem := range list {
		keys, ok := objectKeys(elem)
		if !ok || len(keys) == 0 {
			return nil, false
		}
		if i == 0 {
			ref = keys
			continue
		}
		if len(keys) != len(ref) {
			return nil, false
		}
		for j := range keys {
			if keys[j] != ref[j] {
				return nil, false
			}
		}
	}
	return ref, true
}

func objectKeys(v any) ([]string, bool) {
	switch obj := v.(type) {
	case *Object:
		return obj.keys, true
	case map[string]any:
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys, true
	}
	return nil, false
}

func encodeTabular(sb *strings.Builder, list []any, keys []string) error {
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(encodeString(k))
	}
	sb.WriteByte('}')
	for i, elem := range list {
		if i > 0 {
			sb.WriteByte(';')
		}
		for j, k := range keys {
			if j > 0 {
				sb.WriteByte('|')
			}
			var cell any
			switch obj := elem.(type) {
			case *Object:
				cell = obj.values[k]
			case map[string]any:
				cell = obj[k]
			}
			if err := encodeValue(sb, cell, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeString(s string) string {
	if !needsQuoting(s) {
		return s
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if strings.ContainsAny(s, "|:;{}[]\"\\\n\r\t") {
		return true
	}
	if unicode.IsSpace(rune(s[0])) || unicode.IsSpace(rune(s[len(s)-1])) {
		return true
	}
	// Strings that would read back as a different scalar type must be
	// quoted to survive a round trip.
	switch s {
	case "null", "true", "false":
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}
