package rng

import "testing"

func TestBetweenStaysInRange(t *testing.T) {
	src := New(1)
	seen := map[int64]bool{}
	for i := 0; i < 2000; i++ {
		v := Between(src, 1, 10)
		if v < 1 || v > 10 {
			t.Fatalf("value %d out of [1,10]", v)
		}
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Fatalf("expected every value in range to appear, saw %d", len(seen))
	}
}

func TestSampleIsDistinctAndBounded(t *testing.T) {
	src := New(7)
	items := []int{1, 2, 3, 4, 5}
	got := Sample(src, items, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	seen := map[int]bool{}
	for _, v := range got {
		if seen[v] {
			t.Fatalf("duplicate %d in %v", v, got)
		}
		seen[v] = true
	}
	if all := Sample(src, items, 50); len(all) != len(items) {
		t.Fatalf("oversized sample should return all items, got %v", all)
	}
	if items[0] != 1 || items[4] != 5 {
		t.Fatalf("input mutated: %v", items)
	}
}

func TestSeededSourceIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 20; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatal("same seed produced different sequences")
		}
	}
}
