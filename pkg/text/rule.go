package text

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultPrefix is the literal that starts every rewritten resource path
	DefaultPrefix = "/resource/"

	separator   = "/"
	replacement = "_"
)

// 🧱 Boundary decides where the capture after the prefix stops
type Boundary string

const (
	// BoundaryToken stops at the first whitespace, quote, backtick or line break
	BoundaryToken Boundary = "token"
	// BoundaryLine captures to the end of the line
	BoundaryLine Boundary = "line"
)

// ParseBoundary converts a flag or config value into a Boundary
func ParseBoundary(s string) (Boundary, error) {
	switch b := Boundary(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BoundaryToken, nil
	case BoundaryToken, BoundaryLine:
		return b, nil
	default:
		return "", errors.Errorf("unknown boundary %q (want %q or %q)", s, BoundaryToken, BoundaryLine)
	}
}

func (b Boundary) capture() string {
	if b == BoundaryLine {
		return `(.*)`
	}
	return "([^\\s\"'`]*)"
}

// 🔄 Rule is a compiled resource path rewrite rule.
//
// A match is the prefix followed by the capture; the replacement is the prefix
// with its trailing slash turned into an underscore, followed by the capture
// with every slash turned into an underscore.
type Rule struct {
	prefix   string
	target   string
	boundary Boundary
	re       *regexp.Regexp
}

// NewRule compiles a rule for the given prefix and boundary
func NewRule(prefix string, boundary Boundary) (*Rule, error) {
	if prefix == "" {
		return nil, errors.New("prefix is required")
	}
	if !strings.HasSuffix(prefix, separator) {
		return nil, errors.Errorf("prefix %q must end with %q", prefix, separator)
	}
	boundary, err := ParseBoundary(string(boundary))
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(regexp.QuoteMeta(prefix) + boundary.capture())
	if err != nil {
		return nil, errors.Errorf("compiling pattern: %w", err)
	}

	return &Rule{
		prefix:   prefix,
		target:   strings.TrimSuffix(prefix, separator) + replacement,
		boundary: boundary,
		re:       re,
	}, nil
}

// DefaultRule returns the /resource/ rule with the token boundary
func DefaultRule() *Rule {
	r, err := NewRule(DefaultPrefix, BoundaryToken)
	if err != nil {
		panic(err)
	}
	return r
}

// Prefix returns the literal the rule matches on
func (r *Rule) Prefix() string { return r.prefix }

// Boundary returns the capture boundary policy
func (r *Rule) Boundary() Boundary { return r.boundary }

// Pattern returns the compiled expression
func (r *Rule) Pattern() string { return r.re.String() }

// Apply rewrites every match in content and returns the new content and the match count
func (r *Rule) Apply(content string) (string, int) {
	count := 0
	out := r.re.ReplaceAllStringFunc(content, func(match string) string {
		count++
		rest := match[len(r.prefix):]
		return r.target + strings.ReplaceAll(rest, separator, replacement)
	})
	return out, count
}
