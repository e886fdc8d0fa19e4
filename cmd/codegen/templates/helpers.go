package templates

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// receiver avoids the parameter names the generated methods use.
func receiver(typeName string) string {
	r := strings.ToLower(typeName[:1])
	switch r {
	case "i", "v":
		return "o"
	}
	return r
}
