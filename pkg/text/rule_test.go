package text

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_Apply(t *testing.T) {
	tests := []struct {
		name      string
		boundary  Boundary
		content   string
		want      string
		wantCount int
	}{
		{
			name:      "simple_path",
			content:   "GET /resource/abc/def",
			want:      "GET /resource_abc_def",
			wantCount: 1,
		},
		{
			name:      "multi_slash_capture",
			content:   "/resource/a/b/c",
			want:      "/resource_a_b_c",
			wantCount: 1,
		},
		{
			name:      "no_match_passthrough",
			content:   "const url = \"/api/users/42\"\n",
			want:      "const url = \"/api/users/42\"\n",
			wantCount: 0,
		},
		{
			name:      "empty_content",
			content:   "",
			want:      "",
			wantCount: 0,
		},
		{
			name:      "empty_capture",
			content:   "/resource/",
			want:      "/resource_",
			wantCount: 1,
		},
		{
			name:      "token_stops_at_quote",
			content:   `fetch("/resource/list/all", opts)`,
			want:      `fetch("/resource_list_all", opts)`,
			wantCount: 1,
		},
		{
			name:      "token_stops_at_whitespace",
			content:   "/resource/a/b and /resource/c/d",
			want:      "/resource_a_b and /resource_c_d",
			wantCount: 2,
		},
		{
			name:      "token_stops_at_newline",
			content:   "'/resource/a/b'\n`/resource/c/d`\n",
			want:      "'/resource_a_b'\n`/resource_c_d`\n",
			wantCount: 2,
		},
		{
			name:      "line_captures_to_end_of_line",
			boundary:  BoundaryLine,
			content:   "url: '/resource/a/b' // see /docs/x\nnext/line",
			want:      "url: '/resource_a_b' __ see _docs_x\nnext/line",
			wantCount: 1,
		},
		{
			name:      "line_swallows_second_prefix",
			boundary:  BoundaryLine,
			content:   "/resource/a /resource/b",
			want:      "/resource_a _resource_b",
			wantCount: 1,
		},
		{
			name:      "prefix_inside_capture",
			content:   "/resource//resource/x",
			want:      "/resource__resource_x",
			wantCount: 1,
		},
		{
			name:      "utf8_content",
			content:   "// 资源 /resource/用户/详情",
			want:      "// 资源 /resource_用户_详情",
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewRule(DefaultPrefix, tt.boundary)
			require.NoError(t, err)

			got, count := rule.Apply(tt.content)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestRule_Idempotent(t *testing.T) {
	inputs := []string{
		"GET /resource/users/42",
		"/resource/a/b/c /resource/d",
		"/resource//resource/x/y",
		"a/resource/resource/b",
		"\"/resource/x\"'/resource/y'`/resource/z`",
		"nothing to see here",
		"/resource/\n/resource/\n",
	}

	for _, boundary := range []Boundary{BoundaryToken, BoundaryLine} {
		rule, err := NewRule(DefaultPrefix, boundary)
		require.NoError(t, err)

		for _, in := range inputs {
			once, _ := rule.Apply(in)
			twice, n := rule.Apply(once)
			assert.Equal(t, once, twice, "boundary %s input %q", boundary, in)
			assert.Zero(t, n, "boundary %s input %q", boundary, in)
			assert.NotContains(t, once, DefaultPrefix)
		}
	}
}

func TestNewRule(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		boundary  Boundary
		wantError string
		wantBound Boundary
	}{
		{
			name:      "default_boundary",
			prefix:    "/resource/",
			wantBound: BoundaryToken,
		},
		{
			name:      "line_boundary_mixed_case",
			prefix:    "/resource/",
			boundary:  "LINE",
			wantBound: BoundaryLine,
		},
		{
			name:      "missing_prefix",
			wantError: "prefix is required",
		},
		{
			name:      "prefix_without_trailing_slash",
			prefix:    "/resource",
			wantError: "must end with",
		},
		{
			name:      "unknown_boundary",
			prefix:    "/resource/",
			boundary:  "word",
			wantError: "unknown boundary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewRule(tt.prefix, tt.boundary)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.prefix, rule.Prefix())
			assert.Equal(t, tt.wantBound, rule.Boundary())
		})
	}
}

func TestRule_CustomPrefix(t *testing.T) {
	rule, err := NewRule("/api.v2/", BoundaryToken)
	require.NoError(t, err)

	got, count := rule.Apply("/api.v2/a/b /apixv2/c/d")
	assert.Equal(t, "/api.v2_a_b /apixv2/c/d", got)
	assert.Equal(t, 1, count)
}

func TestResourceReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []*Rule
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:         "default_rule",
			content:      "GET /resource/users/42",
			rules:        []*Rule{DefaultRule()},
			want:         "GET /resource_users_42",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "no_match",
			content:      "GET /users/42",
			rules:        []*Rule{DefaultRule()},
			want:         "GET /users/42",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_rules",
			content:      "GET /resource/users/42",
			rules:        []*Rule{},
			want:         "GET /resource/users/42",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "nil_rule_skipped",
			content:      "/resource/a/b",
			rules:        []*Rule{nil, DefaultRule()},
			want:         "/resource_a_b",
			wantCount:    1,
			wantModified: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewResourceReplacer()
			result, err := replacer.ReplaceText(
				context.Background(),
				strings.NewReader(tt.content),
				tt.rules,
			)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}
