package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []Run
	}{
		{"bold and code", "**bold** and `code`", []Run{Bold("bold"), Plain(" and "), Code("code")}},
		{"plain only", "just text", []Run{Plain("just text")}},
		{"empty", "", nil},
		{"unmatched bold", "a **b", []Run{Plain("a **b")}},
		{"unmatched code", "use `x", []Run{Plain("use `x")}},
		{"odd markers", "**a** b **c", []Run{Bold("a"), Plain(" b **c")}},
		{"code inside bold markers", "**`x`**", []Run{Bold("`x`")}},
		{"bold inside code", "`**x**`", []Run{Code("**x**")}},
		{"empty spans dropped", "a****b``c", []Run{Plain("abc")}},
		{"adjacent spans", "**a**`b`", []Run{Bold("a"), Code("b")}},
		{"multibyte", "設定 **HttpOnly** 屬性", []Run{Plain("設定 "), Bold("HttpOnly"), Plain(" 屬性")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseInline(tt.in))
		})
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bold and code", PlainText(ParseInline("**bold** and `code`")))
	assert.Equal(t, "", PlainText(nil))
}

func TestRunKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", RunPlain.String())
	assert.Equal(t, "bold", RunBold.String())
	assert.Equal(t, "code", RunCode.String())
}
