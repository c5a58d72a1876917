package input

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"clockify-cli/internal/domain"
)

// MaxTextLength is the longest description or name accepted, in runes.
const MaxTextLength = 3000

var blocklist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\s*/?\s*script`),
	regexp.MustCompile(`(?i)<\s*(?:iframe|object|embed)\b`),
	regexp.MustCompile(`(?i)(?:javascript|vbscript)\s*:`),
	regexp.MustCompile(`(?i)data\s*:\s*text/html`),
	regexp.MustCompile(`(?i)<[a-z][^>]*\son[a-z]+\s*=`),
}

// Sanitize cleans free text and rejects anything unsafe to send.
//
// NUL bytes are rejected outright. Tabs and line breaks become spaces, every
// other control character is dropped, and the result is trimmed. The cleaned
// text must fit MaxTextLength and must not match the markup blocklist.
func Sanitize(s string) (string, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return "", domain.Errorf(domain.KindInvalidInput, "text contains a null byte")
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}

	cleaned := strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s))

	if n := utf8.RuneCountInString(cleaned); n > MaxTextLength {
		return "", domain.Errorf(domain.KindInvalidInput,
			"text is too long (%d characters, max %d)", n, MaxTextLength)
	}
	for _, re := range blocklist {
		if re.MatchString(cleaned) {
			return "", domain.Errorf(domain.KindInvalidInput, "text contains disallowed markup")
		}
	}
	return cleaned, nil
}

// SanitizeName is Sanitize for names, which must not be empty.
func SanitizeName(s string) (string, error) {
	cleaned, err := Sanitize(s)
	if err != nil {
		return "", err
	}
	if cleaned == "" {
		return "", domain.Errorf(domain.KindInvalidInput, "name must not be empty")
	}
	return cleaned, nil
}
