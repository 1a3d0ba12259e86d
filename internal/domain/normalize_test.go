package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  cook@example.com  ", want: "cook@example.com"},
		{name: "lowercase", input: "Cook@Example.COM", want: "cook@example.com"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeEmail(tt.input); got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "two lines", input: "bread\nbutter", want: []string{"bread", "butter"}},
		{name: "blank lines dropped", input: "bread\n\n  \nbutter\n", want: []string{"bread", "butter"}},
		{name: "crlf", input: "bread\r\nbutter\r\n", want: []string{"bread", "butter"}},
		{name: "surrounding spaces", input: "  2 eggs  ", want: []string{"2 eggs"}},
		{name: "empty", input: "", want: []string{}},
		{name: "whitespace only", input: " \n\t\n", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitLines(tt.input))
		})
	}
}

func TestSplitTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"quick", "vegan"}, SplitTags("quick, vegan"))
	assert.Equal(t, []string{"quick", "vegan"}, SplitTags(" quick,,vegan , "))
	assert.Equal(t, []string{"one tag"}, SplitTags("one tag"))
	assert.Equal(t, []string{}, SplitTags(""))
}

func TestCleanList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, CleanList([]string{" a ", "", "b", "  "}))
	assert.NotNil(t, CleanList(nil))
	assert.Empty(t, CleanList(nil))
}
