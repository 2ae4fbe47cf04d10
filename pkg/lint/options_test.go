package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/sqltree/pkg/lint"
)

func TestOptions(t *testing.T) {
	opts := map[string]any{
		"flag":   true,
		"int":    3,
		"int64":  int64(4),
		"float":  5.0,
		"list":   []any{"a", 1, "b"},
		"strs":   []string{"c"},
		"string": "x",
	}

	assert.True(t, lint.GetBoolOption(opts, "flag", false))
	assert.False(t, lint.GetBoolOption(opts, "string", false), "wrong type falls back")
	assert.True(t, lint.GetBoolOption(nil, "flag", true))

	assert.Equal(t, 3, lint.GetIntOption(opts, "int", 0))
	assert.Equal(t, 4, lint.GetIntOption(opts, "int64", 0))
	assert.Equal(t, 5, lint.GetIntOption(opts, "float", 0))
	assert.Equal(t, 7, lint.GetIntOption(opts, "missing", 7))

	assert.Equal(t, []string{"a", "b"}, lint.GetStringSliceOption(opts, "list", nil))
	assert.Equal(t, []string{"c"}, lint.GetStringSliceOption(opts, "strs", nil))
	assert.Nil(t, lint.GetStringSliceOption(opts, "flag", nil))

	assert.Equal(t, "x", lint.GetOption(opts, "string", ""))
}

func TestDecodeOptions(t *testing.T) {
	type ruleOpts struct {
		Enabled bool     `mapstructure:"enabled"`
		Limit   int      `mapstructure:"limit"`
		Names   []string `mapstructure:"names"`
	}

	tests := []struct {
		name    string
		opts    map[string]any
		want    ruleOpts
		wantErr string
	}{
		{
			name: "nil keeps defaults",
			want: ruleOpts{Limit: 1},
		},
		{
			name: "typed values",
			opts: map[string]any{"enabled": true, "limit": 3, "names": []any{"a", "b"}},
			want: ruleOpts{Enabled: true, Limit: 3, Names: []string{"a", "b"}},
		},
		{
			name: "weak conversion",
			opts: map[string]any{"enabled": "true", "limit": 4.0},
			want: ruleOpts{Enabled: true, Limit: 4},
		},
		{
			name:    "unknown key",
			opts:    map[string]any{"limt": 2},
			wantErr: "limt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ruleOpts{Limit: 1}
			err := lint.DecodeOptions(tt.opts, &got)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
