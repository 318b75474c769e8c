package lenient

import (
	"strconv"
	"strings"
)

// Parse decodes a single brace-delimited object.
//
// Text that does not start with '{' and end with '}' once trimmed decodes to an
// empty object. Members without a key separator are dropped, and values that
// fit no other shape are kept as raw strings. Parse never fails: callers
// detect a miss through absent keys.
func Parse(text string) Value {
	m := &Map{}
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") || len(text) < 2 {
		return ObjectValue(m)
	}

	for _, member := range splitMembers(text[1 : len(text)-1]) {
		i := keySeparator(member)
		if i <= 0 {
			continue
		}
		key := unquote(strings.TrimSpace(member[:i]))
		m.set(key, decodeValue(strings.TrimSpace(member[i+1:])))
	}
	return ObjectValue(m)
}

// scanner tracks whether a position is inside a quoted string and how deep it
// is in nested braces.
type scanner struct {
	insideQuotes bool
	depth        int
}

// step updates the state for s[i]. A quote toggles the string state unless it
// is escaped by the preceding backslash. Braces only count outside strings.
func (sc *scanner) step(s string, i int) {
	switch c := s[i]; {
	case c == '"' && (i == 0 || s[i-1] != '\\'):
		sc.insideQuotes = !sc.insideQuotes
	case sc.insideQuotes:
	case c == '{':
		sc.depth++
	case c == '}':
		sc.depth--
	}
}

// splitMembers splits an object interior on commas that are neither inside a
// string nor inside a nested object. Members are trimmed.
func splitMembers(s string) []string {
	var (
		members []string
		sc      scanner
		start   int
	)
	for i := 0; i < len(s); i++ {
		sc.step(s, i)
		if s[i] == ',' && !sc.insideQuotes && sc.depth == 0 {
			members = append(members, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if start < len(s) {
		members = append(members, strings.TrimSpace(s[start:]))
	}
	return members
}

// keySeparator returns the index of the first ':' outside a string, or -1.
func keySeparator(member string) int {
	var sc scanner
	for i := 0; i < len(member); i++ {
		sc.step(member, i)
		if member[i] == ':' && !sc.insideQuotes {
			return i
		}
	}
	return -1
}

// unquote strips one pair of surrounding double quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func decodeValue(raw string) Value {
	switch {
	case len(raw) >= 2 && raw[0] == '{' && raw[len(raw)-1] == '}':
		return Parse(raw)
	case len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"':
		return StringValue(raw[1 : len(raw)-1])
	case raw == "true":
		return BoolValue(true)
	case raw == "false":
		return BoolValue(false)
	case raw == "null":
		return NullValue()
	}

	if strings.Contains(raw, ".") {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return NumberValue(f)
		}
	} else if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return IntegerValue(n)
	}
	return StringValue(raw)
}
