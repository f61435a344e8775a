package iterutil_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/expiring-map/internal/iterutil"
)

type pair struct {
	k string
	v int
}

func split(p pair) (string, int) {
	return p.k, p.v
}

func TestPairs(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name  string
		input []pair
		keys  []string
		vals  []int
	}{
		{
			name:  "empty",
			input: nil,
			keys:  nil,
			vals:  nil,
		},
		{
			name:  "single",
			input: []pair{{"a", 1}},
			keys:  []string{"a"},
			vals:  []int{1},
		},
		{
			name:  "keeps order",
			input: []pair{{"c", 3}, {"a", 1}, {"b", 2}},
			keys:  []string{"c", "a", "b"},
			vals:  []int{3, 1, 2},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			seq := iterutil.Pairs(tt.input, split)
			if diff := cmp.Diff(tt.keys, slices.Collect(iterutil.Keys(seq))); diff != "" {
				t.Errorf("keys mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.vals, slices.Collect(iterutil.Values(seq))); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPairs_EarlyReturn(t *testing.T) {
	t.Parallel()

	input := []pair{{"a", 1}, {"b", 2}, {"c", 3}}

	var got []string
	for k := range iterutil.Keys(iterutil.Pairs(input, split)) {
		got = append(got, k)
		if k == "b" {
			break
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	var vals []int
	for v := range iterutil.Values(iterutil.Pairs(input, split)) {
		vals = append(vals, v)
		break
	}
	if diff := cmp.Diff([]int{1}, vals); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}
