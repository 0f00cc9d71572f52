package pagination

import "testing"

func TestNormalize(t *testing.T) {
	p := Params{}.Normalize()
	if p.Page != 1 || p.Limit != DefaultLimit {
		t.Fatalf("unexpected defaults %+v", p)
	}
	p = Params{Page: 3, Limit: 1000}.Normalize()
	if p.Page != 3 || p.Limit != MaxLimit {
		t.Fatalf("unexpected clamp %+v", p)
	}
}

func TestOffsetAndTotalPages(t *testing.T) {
	p := Params{Page: 3, Limit: 20}
	if got := p.Offset(); got != 40 {
		t.Fatalf("expected offset 40, got %d", got)
	}
	cases := map[int64]int{0: 0, 1: 1, 20: 1, 21: 2, 100: 5}
	for total, want := range cases {
		if got := p.TotalPages(total); got != want {
			t.Fatalf("total %d: expected %d pages, got %d", total, want, got)
		}
	}
}
