package main

import "testing"

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"http://a:3000", []string{"http://a:3000"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestEnvDefault(t *testing.T) {
	t.Setenv("EXTRACTD_TEST_KEY", "set")
	if got := envDefault("EXTRACTD_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("got %q", got)
	}
	if got := envDefault("EXTRACTD_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("EXTRACTD_TEST_BOOL", "true")
	if !envBool("EXTRACTD_TEST_BOOL", false) {
		t.Fatal("expected true")
	}
	t.Setenv("EXTRACTD_TEST_BOOL", "junk")
	if envBool("EXTRACTD_TEST_BOOL", false) {
		t.Fatal("junk should fall back to default")
	}
	if envBool("EXTRACTD_TEST_BOOL_MISSING", true) != true {
		t.Fatal("missing should fall back to default")
	}
}
