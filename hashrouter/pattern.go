package hashrouter

import "strings"

// captureMarker prefixes a capture segment in a route pattern.
const captureMarker = ':'

type segment struct {
	value   string // literal text, or the capture name
	capture bool
}

// pattern is a route pattern split into segments at registration time.
type pattern struct {
	raw      string
	segments []segment
	captures []string
}

func isNameChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

// parsePattern splits raw on '/'. A segment of the form ":name" becomes a
// capture; anything else is matched literally.
func parsePattern(raw string) pattern {
	p := pattern{raw: raw}
	for _, part := range strings.Split(raw, "/") {
		if len(part) > 1 && part[0] == captureMarker && validName(part[1:]) {
			p.segments = append(p.segments, segment{value: part[1:], capture: true})
			p.captures = append(p.captures, part[1:])
			continue
		}
		p.segments = append(p.segments, segment{value: part})
	}
	return p
}

func (p pattern) parameterized() bool {
	return len(p.captures) > 0
}

// match reports whether path fits the pattern and returns the captured
// values in declaration order. Captures never match an empty segment.
func (p pattern) match(path string) ([]string, bool) {
	parts := strings.Split(path, "/")
	if len(parts) != len(p.segments) {
		return nil, false
	}

	values := make([]string, 0, len(p.captures))
	for i, seg := range p.segments {
		if seg.capture {
			if parts[i] == "" {
				return nil, false
			}
			values = append(values, parts[i])
			continue
		}
		if parts[i] != seg.value {
			return nil, false
		}
	}
	return values, true
}
