package router

import (
	"fmt"
	"strings"
)

type segmentKind uint8

const (
	segStatic segmentKind = iota
	segParam
	segWildcard
)

type segment struct {
	kind segmentKind
	// value holds the literal for static segments and the parameter name
	// for param segments; empty for the wildcard.
	value string
}

// pattern is a parsed route path. Matching walks the request path segment by
// segment; a trailing wildcard consumes the remainder.
type pattern struct {
	raw      string
	segments []segment
	wildcard bool
	nparams  int
}

// parsePattern validates and compiles a route path. It panics on malformed
// patterns because routes are declared at startup, where failing loudly is
// the useful behavior.
func parsePattern(raw string) *pattern {
	if raw == "" || raw[0] != '/' {
		panic(fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, raw))
	}

	p := &pattern{raw: raw}
	if raw == "/" {
		return p
	}

	parts := strings.Split(strings.TrimSuffix(raw[1:], "/"), "/")
	seen := map[string]bool{}
	for i, part := range parts {
		switch {
		case part == "*":
			if i != len(parts)-1 {
				panic(fmt.Errorf("%w: %q", ErrWildcardPosition, raw))
			}
			p.wildcard = true
			p.segments = append(p.segments, segment{kind: segWildcard})
		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			name := part[1 : len(part)-1]
			if name == "" || strings.ContainsAny(name, "{}") {
				panic(fmt.Errorf("%w: bad parameter in %q", ErrInvalidPattern, raw))
			}
			if seen[name] {
				panic(fmt.Errorf("%w: %q in %q", ErrDuplicateParam, name, raw))
			}
			seen[name] = true
			p.nparams++
			p.segments = append(p.segments, segment{kind: segParam, value: name})
		case strings.ContainsAny(part, "{}*"):
			panic(fmt.Errorf("%w: %q", ErrInvalidPattern, raw))
		case part == "":
			panic(fmt.Errorf("%w: empty segment in %q", ErrInvalidPattern, raw))
		default:
			p.segments = append(p.segments, segment{kind: segStatic, value: part})
		}
	}
	return p
}

// match reports whether path matches the pattern and, on success, returns
// the extracted parameter values. Returns (nil, true) for parameterless
// matches.
func (p *pattern) match(path string) (map[string]string, bool) {
	if len(p.segments) == 0 {
		return nil, path == "/" || path == ""
	}

	rest := strings.TrimPrefix(path, "/")
	rest = strings.TrimSuffix(rest, "/")

	var params map[string]string
	for i, seg := range p.segments {
		if seg.kind == segWildcard {
			// The wildcard matches the remainder, including empty.
			return params, true
		}
		if rest == "" && i < len(p.segments) {
			return nil, false
		}
		var part string
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			part, rest = rest[:idx], rest[idx+1:]
		} else {
			part, rest = rest, ""
		}
		switch seg.kind {
		case segStatic:
			if part != seg.value {
				return nil, false
			}
		case segParam:
			if part == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string, p.nparams)
			}
			params[seg.value] = part
		}
	}
	return params, rest == ""
}

// joinPath concatenates path fragments into a single clean route path.
// Empty fragments are skipped; the result always starts with "/".
func joinPath(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(part)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
