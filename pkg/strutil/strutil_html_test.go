package strutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "plain text untouched",
			input: "No markup here.",
			want:  "No markup here.",
		},
		{
			name:  "paragraphs become lines",
			input: "<p>First paragraph.</p><p>Second paragraph.</p>",
			want:  "First paragraph.\nSecond paragraph.",
		},
		{
			name:  "entities unescaped",
			input: "<p>Use &lt;script&gt; &amp; friends</p>",
			want:  "Use <script> & friends",
		},
		{
			name:  "inline tags dropped",
			input: "Set the <b>HttpOnly</b> flag on <code>Set-Cookie</code>.",
			want:  "Set the HttpOnly flag on Set-Cookie.",
		},
		{
			name:  "blank lines collapse",
			input: "<p>a</p><br/><br/><p>b</p>",
			want:  "a\n\nb",
		},
		{
			name:  "reference list",
			input: "<p>https://owasp.org/a</p><p>https://cwe.mitre.org/b</p>",
			want:  "https://owasp.org/a\nhttps://cwe.mitre.org/b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestStripHTML_MalformedMarkupDoesNotPanic(t *testing.T) {
	t.Parallel()

	inputs := []string{"<p", "<<<>>>", "</p></p>text", "<p>unclosed <b>bold", "a < b > c"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { _ = StripHTML(in) }, in)
	}
	assert.Equal(t, "unclosed bold", StripHTML("<p>unclosed <b>bold"))
}

func TestCap(t *testing.T) {
	t.Parallel()

	const marker = "...(truncated)"

	assert.Equal(t, "short", Cap("short", 10, marker))
	assert.Equal(t, "exactly10!", Cap("exactly10!", 10, marker))
	assert.Equal(t, "abc"+marker, Cap("abcdef", 3, marker))
	assert.Equal(t, "unlimited", Cap("unlimited", 0, marker))

	long := strings.Repeat("x", 2500)
	got := Cap(long, 2000, marker)
	assert.True(t, strings.HasSuffix(got, marker))
	assert.Len(t, got, 2000+len(marker))
}

func TestCap_RuneAware(t *testing.T) {
	t.Parallel()

	got := Cap("弱點說明資料", 2, "…")
	assert.Equal(t, "弱點…", got)
}
