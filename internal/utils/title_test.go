package utils

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Foo", "foo"},
		{"Foo Bar", "foo bar"},
		{"Foo: The Bar!", "foo the bar"},
		{"  Foo---Bar  ", "foo bar"},
		{"", ""},
		{"!!!", ""},
	}

	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBaseTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Foo (2025)", "Foo"},
		{"Foo [2025]", "Foo"},
		{"Foo", "Foo"},
		{"Foo (2025) Bar", "Foo Bar"},
		{"(2025)", ""},
	}

	for _, c := range cases {
		if got := BaseTitle(c.in); got != c.want {
			t.Errorf("BaseTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeBaseTitleEquivalence(t *testing.T) {
	if Normalize(BaseTitle("Foo (2025)")) != Normalize("Foo") {
		t.Error("normalized base title of \"Foo (2025)\" should equal normalized \"Foo\"")
	}
}

func TestTitleMatches(t *testing.T) {
	if !TitleMatches("Official FOO Trailer", "Foo (2025)") {
		t.Error("expected \"Official FOO Trailer\" to match \"Foo (2025)\"")
	}
	if TitleMatches("Bar Trailer", "Foo") {
		t.Error("expected \"Bar Trailer\" not to match \"Foo\"")
	}
	if !TitleMatches("the long night teaser", "The Long Night") {
		t.Error("expected case-insensitive match")
	}

	// An empty base title must never match anything
	if TitleMatches("Anything At All", "(2025)") {
		t.Error("empty base title should not match")
	}
}

func TestSanitizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Foo: Bar", "Foo Bar"},
		{"Foo Bar", "Foo Bar"},
		{"What If...?", "What If"},
		{"Foo-Bar_Baz", "Foo-Bar_Baz"},
		{"Trailing. ", "Trailing"},
	}

	for _, c := range cases {
		if got := SanitizeTitle(c.in); got != c.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
