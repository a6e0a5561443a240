package service

import "testing"

func TestCleanLLMJSONResponse(t *testing.T) {
	cases := map[string]string{
		"":                          "",
		"   ":                       "",
		"```json\n{\"a\":1}\n```":   `{"a":1}`,
		"```\n{\"a\":1}```":         `{"a":1}`,
		"\uFEFF```JSON {\"a\":1}``` ": `{"a":1}`,
		`{"a":1}`:                   `{"a":1}`,
	}
	for in, want := range cases {
		if got := cleanLLMJSONResponse(in); got != want {
			t.Fatalf("cleanLLMJSONResponse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractFirstJSONObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: `text {"a":{"b":1}} tail {"c":2}`, want: `{"a":{"b":1}}`, ok: true},
		{in: `{"s":"brace } inside \" quote"}`, want: `{"s":"brace } inside \" quote"}`, ok: true},
		{in: `no json here`, ok: false},
		{in: `{"unterminated": true`, ok: false},
	}
	for _, c := range cases {
		got, ok := extractFirstJSONObject(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("extractFirstJSONObject(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
