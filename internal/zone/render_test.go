package zone

import (
	"strings"
	"testing"
)

func TestRender_WorkedExample(t *testing.T) {
	lines := []string{
		"@ IN SOA ns1.example.com. root.example.com. 1 3600 600 86400 3600",
		"www 300 IN A 10.0.0.5",
		"* IN A 10.0.0.9",
	}

	snap := mustNormalize(t, lines, "example.com.")
	Sort(snap)

	out := strings.Split(strings.TrimRight(Render(snap), "\n"), "\n")

	if out[0] != "$ORIGIN example.com." {
		t.Errorf("line 0 = %q, want $ORIGIN header", out[0])
	}

	if out[1] != "$TTL 3600" {
		t.Errorf("line 1 = %q, want $TTL header", out[1])
	}

	record := func(i int) []string { return strings.Fields(out[i]) }

	if f := record(2); f[0] != "@" || f[3] != TypeSOA {
		t.Errorf("first record = %q, want the SOA at the apex", out[2])
	}

	if f := record(3); f[0] != "*" || f[len(f)-1] != "10.0.0.9" {
		t.Errorf("second record = %q, want the wildcard", out[3])
	}

	if f := record(4); f[0] != "www" || f[1] != "300" {
		t.Errorf("third record = %q, want www with its explicit TTL", out[4])
	}
}

func TestRender_Blanking(t *testing.T) {
	snap := &Snapshot{
		Origin:     "example.com.",
		DefaultTTL: 3600,
		Records: []Record{
			rec36("www.example.com.", 3600, TypeA, "10.0.0.5"),
			rec36("www.example.com.", 3600, TypeA, "10.0.0.6"),
			rec36("www.example.com.", 300, TypeA, "10.0.0.7"),
			rec36("mail.example.com.", 3600, TypeA, "10.0.0.8"),
		},
	}

	out := strings.Split(strings.TrimRight(Render(snap), "\n"), "\n")
	records := out[2:]

	// Repeated owner, default TTL, same class: all three blanked.
	if !strings.HasPrefix(records[1], " ") && !strings.HasPrefix(records[1], "\t") {
		t.Errorf("second line should blank the repeated owner: %q", records[1])
	}

	if fields := strings.Fields(records[1]); len(fields) != 2 {
		t.Errorf("second line = %q, want only type and rdata left", records[1])
	}

	// Same owner but non-default TTL: the TTL must stay visible.
	if fields := strings.Fields(records[2]); fields[0] != "300" {
		t.Errorf("third line = %q, explicit non-default TTL must never be hidden", records[2])
	}

	// Owner change breaks the blanking chain even though the TTL and
	// class match the previous line's values.
	if fields := strings.Fields(records[3]); fields[0] != "mail" || fields[1] != "3600" {
		t.Errorf("fourth line = %q, name change must break the blanking chain", records[3])
	}
}

func rec36(name string, ttl uint32, rtype string, data ...string) Record {
	return Record{Name: name, TTL: ttl, Class: ClassIN, Type: rtype, Data: data}
}

func TestFirstGap(t *testing.T) {
	tests := []struct {
		name   string
		pos    int
		target int
		want   string
	}{
		{"tab to first stop", 0, 8, "\t"},
		{"two tabs", 0, 16, "\t\t"},
		{"short gap stays spaces", 1, 4, "   "},
		{"tab then spaces", 0, 10, "\t  "},
		{"seventh column gets a space", 6, 8, " \t"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := firstGap(tc.pos, tc.target); got != tc.want {
				t.Fatalf("firstGap(%d, %d) = %q, want %q", tc.pos, tc.target, got, tc.want)
			}
		})
	}
}

func TestRender_RoundTripIdempotence(t *testing.T) {
	lines := []string{
		"$TTL 3600",
		"@ IN SOA ns1 root 7 3600 600 86400 1800",
		"@ IN NS ns1",
		"@ IN MX 10 mail",
		"www 300 IN A 10.0.0.5",
		"www IN AAAA 2001:db8::1",
		"mail IN A 10.0.0.9",
		"* IN A 10.0.0.13",
		"@ IN TXT v=spf1 mx ~all",
		"_sip._tcp IN SRV 10 5 5060 sip",
	}

	snap := mustNormalize(t, lines, "example.com.")
	Sort(snap)

	rendered := Render(snap)

	again := mustNormalize(t, strings.Split(rendered, "\n"), "")
	Sort(again)

	if len(again.Records) != len(snap.Records) {
		t.Fatalf("round trip changed record count: %d != %d", len(again.Records), len(snap.Records))
	}

	for i := range snap.Records {
		if snap.Records[i].Text() != again.Records[i].Text() {
			t.Errorf("round trip changed record %d: %q != %q",
				i, snap.Records[i].Text(), again.Records[i].Text())
		}
	}

	if Render(again) != rendered {
		t.Error("rendering the round-tripped snapshot is not byte-identical")
	}
}
