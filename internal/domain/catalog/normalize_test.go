package catalog

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   any
		out  string
	}{
		{name: "trims and lowers", in: "  Yol Koşusu  ", out: "yol kosusu"},
		{name: "collapses whitespace", in: "Uzun \t Ömürlü\n\nTaban", out: "uzun omurlu taban"},
		{name: "folds dotless i", in: "KADIN", out: "kadin"},
		{name: "dotted capital i", in: "İzmir", out: "izmir"},
		{name: "nil", in: nil, out: ""},
		{name: "float", in: 1.2, out: "1.2"},
		{name: "whole float", in: 1.0, out: "1"},
		{name: "int", in: 7, out: "7"},
		{name: "bytes", in: []byte("Evet"), out: "evet"},
		{name: "compatibility capital", in: "ℌ", out: "h"},
		{name: "math bold capital", in: "𝐑OAD", out: "road"},
		{name: "double struck", in: "ℝ𝕆𝔸𝔻", out: "road"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.out {
			t.Fatalf("%s: expected %q got %q", tc.name, tc.out, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "  ", "ROAD", "Road ", "Çok  Uzun Ömürlü", "Kadın Yarış", "Ａｂｃ", "ﬁt", "éte", "Ǆ"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("normalize(%q) not idempotent: %q then %q", in, once, twice)
		}
	}
}
