package typeschema

import (
	"fmt"
	"strings"
	"unicode"
)

// NameTransform maps a raw field name to its default property name.
type NameTransform func(string) string

// SchemaNameSelector maps a type identity to the name its schema is stored under.
type SchemaNameSelector func(TypeIdentity) string

// IdentityName leaves names untouched.
func IdentityName(name string) string { return name }

// CamelCase lowers the leading run of upper-case letters, keeping the last one of
// an acronym upper-case when it starts the next word: "SentAt" -> "sentAt",
// "ID" -> "id", "URLValue" -> "urlValue".
func CamelCase(name string) string {
	runes := []rune(name)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return name
	}
	for i := range runes {
		if i == 1 && !unicode.IsUpper(runes[i]) {
			break
		}
		hasNext := i+1 < len(runes)
		if i > 0 && hasNext && !unicode.IsUpper(runes[i+1]) {
			if unicode.IsSpace(runes[i+1]) {
				runes[i] = unicode.ToLower(runes[i])
			}
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// SnakeCase converts "SentAt" to "sent_at" and "URLValue" to "url_value".
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prev != '_' && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseNameTransform returns the built-in transform registered under name.
func ParseNameTransform(name string) (NameTransform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "camel", "camelcase":
		return CamelCase, nil
	case "identity", "none":
		return IdentityName, nil
	case "snake", "snakecase", "snake_case":
		return SnakeCase, nil
	default:
		return nil, fmt.Errorf("unknown naming transform %q", name)
	}
}

// DefaultSchemaName uses the last segment of a dotted or slashed identity, so
// "StreetlightsAPI.LightMeasuredEvent" is stored as "LightMeasuredEvent".
// Identities with type arguments, such as "sequence<int32>", are kept whole.
func DefaultSchemaName(id TypeIdentity) string {
	s := string(id)
	if strings.ContainsAny(s, "<[") {
		return s
	}
	if i := strings.LastIndexAny(s, "./+"); i >= 0 && i < len(s)-1 {
		return s[i+1:]
	}
	return s
}
