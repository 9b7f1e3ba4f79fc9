package zone

import "testing"

func TestEnsureQuotedContent_TXT(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"unquoted simple", `v=spf1 a ~all`, `"v=spf1 a ~all"`},
		{"already quoted", `"hello world"`, `"hello world"`},
		{"multi quoted parts", `"part1" "part2"`, `"part1" "part2"`},
		{"internal quotes", `hello "world"`, `"hello \"world\""`},
		{"empty becomes empty quoted", `  `, `""`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ensureQuotedContent(TypeTXT, tc.in)
			if got != tc.out {
				t.Fatalf("want %q, got %q", tc.out, got)
			}
		})
	}
}

func TestEnsureQuotedContent_SPF(t *testing.T) {
	var (
		got  = ensureQuotedContent(TypeSPF, `v=spf1 a ~all`)
		want = `"v=spf1 a ~all"`
	)

	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestEnsureQuotedContent_OtherTypesUnchanged(t *testing.T) {
	caa := `0 issue "letsencrypt.org"`
	if got := ensureQuotedContent("CAA", caa); got != caa {
		t.Fatalf("CAA should be unchanged: got %q", got)
	}
}
