package utils

import "testing"

func TestSample_SmallInputReturnedWhole(t *testing.T) {
	items := []int{1, 2, 3}

	got := Sample(items, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	got = Sample(items, 10)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 when k exceeds input", len(got))
	}

	if got := Sample([]int(nil), 5); len(got) != 0 {
		t.Fatalf("nil input must stay empty, got %v", got)
	}
}

func TestSample_DistinctSubset(t *testing.T) {
	items := []int{10, 20, 30, 40, 50, 60, 70, 80}

	for run := 0; run < 50; run++ {
		got := Sample(items, 4)
		if len(got) != 4 {
			t.Fatalf("len = %d, want 4", len(got))
		}
		seen := make(map[int]bool, len(got))
		member := make(map[int]bool, len(items))
		for _, v := range items {
			member[v] = true
		}
		for _, v := range got {
			if seen[v] {
				t.Fatalf("duplicate element %d in sample %v", v, got)
			}
			seen[v] = true
			if !member[v] {
				t.Fatalf("element %d is not from the input", v)
			}
		}
	}
}

func TestSample_NegativeK(t *testing.T) {
	if got := Sample([]int{1, 2, 3}, -1); len(got) != 0 {
		t.Fatalf("negative k must yield empty, got %v", got)
	}
}
