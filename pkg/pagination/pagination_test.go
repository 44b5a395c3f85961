package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	cases := map[int]int{
		0:    DefaultLimit,
		-5:   DefaultLimit,
		1:    1,
		100:  100,
		101:  MaxLimit,
		5000: MaxLimit,
	}
	for input, want := range cases {
		if got := NormalizeLimit(input); got != want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", input, got, want)
		}
	}
}

func TestNormalizeSkip(t *testing.T) {
	if got := NormalizeSkip(-1); got != 0 {
		t.Fatalf("expected negative skip clamped to 0, got %d", got)
	}
	if got := NormalizeSkip(40); got != 40 {
		t.Fatalf("expected skip preserved, got %d", got)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(Params{Skip: -10, Limit: 999})
	if got.Skip != 0 || got.Limit != MaxLimit {
		t.Fatalf("unexpected normalized params %+v", got)
	}
}
