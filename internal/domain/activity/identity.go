package activity

import (
	"strings"
	"unicode"

	sonic "github.com/bytedance/sonic"
)

// Identity is the athlete reference attached to a raw activity. It is either
// a StructuredIdentity or an EncodedIdentity carrying serialized text.
type Identity interface {
	isIdentity()
}

type StructuredIdentity struct {
	Firstname string
	Lastname  string
}

// EncodedIdentity holds an athlete object serialized as text, either JSON or
// a Python-style dict literal as found in older exports.
type EncodedIdentity string

func (StructuredIdentity) isIdentity() {}
func (EncodedIdentity) isIdentity()    {}

// ResolveIdentity returns the athlete names for a raw identity. Anything that
// cannot be read yields the placeholder pair.
func ResolveIdentity(id Identity) (string, string) {
	switch v := id.(type) {
	case StructuredIdentity:
		return orPlaceholder(v.Firstname), orPlaceholder(v.Lastname)
	case *StructuredIdentity:
		if v == nil {
			return PlaceholderName, PlaceholderName
		}
		return orPlaceholder(v.Firstname), orPlaceholder(v.Lastname)
	case EncodedIdentity:
		fields, ok := parseEncodedIdentity(string(v))
		if !ok {
			return PlaceholderName, PlaceholderName
		}
		resolved := identityFromMap(fields)
		return resolved.Firstname, resolved.Lastname
	default:
		return PlaceholderName, PlaceholderName
	}
}

func (r *RawActivity) UnmarshalJSON(data []byte) error {
	type alias RawActivity
	var payload struct {
		alias
		Athlete any `json:"athlete"`
	}
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return err
	}

	*r = RawActivity(payload.alias)
	switch v := payload.Athlete.(type) {
	case map[string]any:
		r.Athlete = identityFromMap(v)
	case string:
		r.Athlete = EncodedIdentity(v)
	default:
		r.Athlete = nil
	}
	return nil
}

func identityFromMap(fields map[string]any) StructuredIdentity {
	return StructuredIdentity{
		Firstname: stringField(fields, "firstname"),
		Lastname:  stringField(fields, "lastname"),
	}
}

func stringField(fields map[string]any, key string) string {
	value, ok := fields[key].(string)
	if !ok {
		return PlaceholderName
	}
	return orPlaceholder(value)
}

func orPlaceholder(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return PlaceholderName
	}
	return value
}

func parseEncodedIdentity(text string) (map[string]any, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	var fields map[string]any
	if err := sonic.UnmarshalString(text, &fields); err == nil && fields != nil {
		return fields, true
	}

	converted, ok := pythonLiteralToJSON(text)
	if !ok {
		return nil, false
	}
	fields = nil
	if err := sonic.UnmarshalString(converted, &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

// pythonLiteralToJSON rewrites a dict literal using single quotes and
// None/True/False into JSON. It never evaluates anything.
func pythonLiteralToJSON(text string) (string, bool) {
	var out strings.Builder
	out.Grow(len(text) + 8)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '\'' || ch == '"':
			value, next, ok := readQuoted(runes, i)
			if !ok {
				return "", false
			}
			encoded, err := sonic.MarshalString(value)
			if err != nil {
				return "", false
			}
			out.WriteString(encoded)
			i = next
		case unicode.IsLetter(ch):
			start := i
			for i+1 < len(runes) && (unicode.IsLetter(runes[i+1]) || unicode.IsDigit(runes[i+1]) || runes[i+1] == '_') {
				i++
			}
			switch string(runes[start : i+1]) {
			case "None":
				out.WriteString("null")
			case "True":
				out.WriteString("true")
			case "False":
				out.WriteString("false")
			default:
				return "", false
			}
		default:
			out.WriteRune(ch)
		}
	}
	return out.String(), true
}

func readQuoted(runes []rune, start int) (string, int, bool) {
	quote := runes[start]
	var value strings.Builder
	for i := start + 1; i < len(runes); i++ {
		ch := runes[i]
		if ch == '\\' {
			if i+1 >= len(runes) {
				return "", 0, false
			}
			i++
			switch runes[i] {
			case 'n':
				value.WriteRune('\n')
			case 't':
				value.WriteRune('\t')
			case 'r':
				value.WriteRune('\r')
			default:
				value.WriteRune(runes[i])
			}
			continue
		}
		if ch == quote {
			return value.String(), i, true
		}
		value.WriteRune(ch)
	}
	return "", 0, false
}
