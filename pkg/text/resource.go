package text

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"
)

// ResourceReplacer implements TextReplacer with compiled resource path rules
type ResourceReplacer struct{}

// NewResourceReplacer creates a new ResourceReplacer
func NewResourceReplacer() *ResourceReplacer {
	return &ResourceReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *ResourceReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []*Rule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	modified, count := r.ReplaceString(string(originalContent), rules)

	return &ReplacementResult{
		WasModified:      count > 0,
		ReplacementCount: count,
		OriginalContent:  originalContent,
		ModifiedContent:  []byte(modified),
	}, nil
}

// ReplaceString implements TextReplacer.ReplaceString
func (r *ResourceReplacer) ReplaceString(content string, rules []*Rule) (string, int) {
	total := 0
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		var n int
		content, n = rule.Apply(content)
		total += n
	}
	return content, total
}
