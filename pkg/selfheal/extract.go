package selfheal

import (
	"errors"
	"strings"
)

// ErrNoJSON is returned when no balanced JSON value can be located in a
// completion response.
var ErrNoJSON = errors.New("no balanced JSON value found in response")

// ExtractJSON locates the first balanced JSON object or array inside a
// free-form textual response. It strips a single leading/trailing code
// fence if present, finds the first '{' or '[', and scans forward tracking
// nested depth (skipping string literals) to the matching close. The
// returned substring is what should be parsed; anything around it is prose.
func ExtractJSON(s string) (string, error) {
	s = StripFence(s)

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", ErrNoJSON
	}

	open := s[start]
	var closer byte = '}'
	if open == '[' {
		closer = ']'
	}

	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch ch {
			case '\\':
				i++ // skip escaped char
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSON
}

// StripFence removes one leading and one trailing markdown code-fence
// marker (``` or ```json) if present. Models routinely wrap otherwise
// valid output in fences, so callers validating raw text want this too.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)

	if strings.HasPrefix(trimmed, "```") {
		if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		} else {
			trimmed = strings.TrimPrefix(trimmed, "```")
		}
	}
	if strings.HasSuffix(strings.TrimSpace(trimmed), "```") {
		t := strings.TrimSpace(trimmed)
		trimmed = t[:len(t)-3]
	}
	return trimmed
}
