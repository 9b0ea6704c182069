package theme

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#EC4899", color.NRGBA{236, 72, 153, 255}},
		{"#EC489980", color.NRGBA{236, 72, 153, 128}},
		{"hotpink", color.NRGBA{255, 105, 180, 255}},
		{"HotPink", color.NRGBA{255, 105, 180, 255}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"#123", "#GGGGGG", "notacolor"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("%s: expected error", bad)
		}
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: mine\nBackground: #101010\n// comment\nUnknown: #FFFFFF\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if th.Name != "mine" || th.Background != (color.NRGBA{16, 16, 16, 255}) {
		t.Fatalf("unexpected theme %+v", th)
	}
	if th.CheckerDark != Default().CheckerDark {
		t.Fatal("missing keys should keep defaults")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	var sb strings.Builder
	for _, kv := range Dark().Fields() {
		sb.WriteString(kv[0] + ": " + kv[1] + "\n")
	}
	th, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *th != *Dark() {
		t.Fatalf("round trip mismatch: %+v", th)
	}
}

func TestLoad(t *testing.T) {
	th, err := Load("DARK", nil)
	if err != nil || th.Name != "dark" {
		t.Fatalf("got %v, %v", th, err)
	}
	custom := &Theme{Name: "custom"}
	if th, _ := Load("custom", map[string]*Theme{"custom": custom}); th != custom {
		t.Fatal("defined themes should win")
	}
	if _, err := Load("does-not-exist", nil); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}
