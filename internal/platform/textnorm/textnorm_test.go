package textnorm

import "testing"

func TestFold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "  San   Siro ", want: "san siro"},
		{in: "Giuseppe\tMeazza", want: "giuseppe meazza"},
		{in: "", want: ""},
		{in: "AC MILAN", want: "ac milan"},
	}
	for _, tc := range cases {
		if got := Fold(tc.in); got != tc.want {
			t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	if !Contains("Stadio Giuseppe Meazza", "giuseppe  MEAZZA") {
		t.Fatalf("expected folded containment")
	}
	if Contains("Stadio Giuseppe Meazza", "   ") {
		t.Fatalf("blank needle must not match")
	}
}
