// Package identifier parses and formats multi-part column identifiers.
//
// A multi-part identifier addresses a field nested inside struct columns.
// Parts are separated by '.'. A part that itself contains a '.' (or any
// character outside [A-Za-z0-9_]) is wrapped in backticks; a backtick inside
// a quoted part is written twice:
//
//	a.b.c        -> [a b c]
//	`a.b`.c      -> [a.b c]
//	`we``ird`    -> [we`ird]
package identifier

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by every error returned from ParseMultipart.
var ErrMalformed = errors.New("malformed identifier")

// ParseError describes where parsing of an identifier failed.
type ParseError struct {
	Text   string
	Pos    int
	Reason string
}

func (e *ParseError) Error() string {
	return "identifier: " + e.Reason + " at position " + strconv.Itoa(e.Pos) + " in " + Quote(e.Text)
}

func (e *ParseError) Unwrap() error { return ErrMalformed }

// ParseMultipart splits text into identifier parts.
func ParseMultipart(text string) ([]string, error) {
	if text == "" {
		return nil, &ParseError{Text: text, Reason: "empty identifier"}
	}

	var (
		parts []string
		cur   strings.Builder
		i     int
	)
	for i <= len(text) {
		// start of a part
		if i < len(text) && text[i] == '`' {
			end, part, err := scanQuoted(text, i)
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
			i = end
			if i == len(text) {
				return parts, nil
			}
			if text[i] != '.' {
				return nil, &ParseError{Text: text, Pos: i, Reason: "unexpected character after quoted part"}
			}
			i++
			if i == len(text) {
				return nil, &ParseError{Text: text, Pos: i, Reason: "empty part"}
			}
			continue
		}

		cur.Reset()
		for i < len(text) && text[i] != '.' {
			if text[i] == '`' {
				return nil, &ParseError{Text: text, Pos: i, Reason: "backtick inside unquoted part"}
			}
			cur.WriteByte(text[i])
			i++
		}
		if cur.Len() == 0 {
			return nil, &ParseError{Text: text, Pos: i, Reason: "empty part"}
		}
		parts = append(parts, cur.String())
		if i == len(text) {
			return parts, nil
		}
		i++ // skip '.'
		if i == len(text) {
			return nil, &ParseError{Text: text, Pos: i, Reason: "empty part"}
		}
	}
	return parts, nil
}

// scanQuoted reads a backtick-quoted part starting at text[start].
// It returns the index just past the closing backtick.
func scanQuoted(text string, start int) (int, string, error) {
	var sb strings.Builder
	i := start + 1
	for i < len(text) {
		c := text[i]
		if c == '`' {
			if i+1 < len(text) && text[i+1] == '`' {
				sb.WriteByte('`')
				i += 2
				continue
			}
			if sb.Len() == 0 {
				return 0, "", &ParseError{Text: text, Pos: start, Reason: "empty quoted part"}
			}
			return i + 1, sb.String(), nil
		}
		sb.WriteByte(c)
		i++
	}
	return 0, "", &ParseError{Text: text, Pos: start, Reason: "unterminated quoted part"}
}

// Quote wraps part in backticks, doubling any backtick it contains.
func Quote(part string) string {
	return "`" + strings.ReplaceAll(part, "`", "``") + "`"
}

// QuoteIfNeeded quotes part unless it is a plain identifier.
func QuoteIfNeeded(part string) string {
	if needsQuoting(part) {
		return Quote(part)
	}
	return part
}

// Join formats parts as a single dotted identifier.
func Join(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = QuoteIfNeeded(p)
	}
	return strings.Join(quoted, ".")
}

// needsQuoting reports whether name is anything other than [A-Za-z_][A-Za-z0-9_]*.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}
	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
