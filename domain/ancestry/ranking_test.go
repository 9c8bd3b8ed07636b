package ancestry

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func TestLargestAncestrySets(t *testing.T) {
	g := buildGraph(t, map[string][]string{
		"B": {"A"},
		"C": {"A", "B"},
	})
	err := g.ComputeAncestorCounts()
	if err != nil {
		t.Fatalf("ComputeAncestorCounts: %s", err)
	}

	tests := []struct {
		limit    int
		expected []*AncestrySet
	}{
		{
			limit:    0,
			expected: []*AncestrySet{},
		},
		{
			limit: 2,
			expected: []*AncestrySet{
				{TransactionID: "C", AncestorCount: 3},
				{TransactionID: "B", AncestorCount: 1},
			},
		},
		{
			limit: 10,
			expected: []*AncestrySet{
				{TransactionID: "C", AncestorCount: 3},
				{TransactionID: "B", AncestorCount: 1},
				{TransactionID: "A", AncestorCount: 0},
			},
		},
	}

	for _, test := range tests {
		sets, err := g.LargestAncestrySets(test.limit)
		if err != nil {
			t.Fatalf("LargestAncestrySets(%d): %s", test.limit, err)
		}
		if !reflect.DeepEqual(sets, test.expected) {
			t.Errorf("LargestAncestrySets(%d): got %s, want %s",
				test.limit, spew.Sdump(sets), spew.Sdump(test.expected))
		}
	}
}

func TestLargestAncestrySetsTieBreak(t *testing.T) {
	g := buildGraph(t, map[string][]string{
		"d": {"root"},
		"b": {"root"},
		"c": {"root"},
		"a": nil,
	})
	err := g.ComputeAncestorCounts()
	if err != nil {
		t.Fatalf("ComputeAncestorCounts: %s", err)
	}

	sets, err := g.LargestAncestrySets(5)
	if err != nil {
		t.Fatalf("LargestAncestrySets: %s", err)
	}
	var order []string
	for _, set := range sets {
		order = append(order, set.TransactionID)
	}
	expected := []string{"b", "c", "d", "a", "root"}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("LargestAncestrySets order: got %v, want %v", order, expected)
	}
}

func TestLargestAncestrySetsIsNonIncreasing(t *testing.T) {
	edges := make(map[string][]string)
	for i := 1; i < 60; i++ {
		edges[fmt.Sprintf("tx%02d", i)] = []string{fmt.Sprintf("tx%02d", i/2), fmt.Sprintf("tx%02d", i/3)}
	}
	g := buildGraph(t, edges)
	err := g.ComputeAncestorCounts()
	if err != nil {
		t.Fatalf("ComputeAncestorCounts: %s", err)
	}

	for _, limit := range []int{1, 7, g.Len(), g.Len() + 5} {
		sets, err := g.LargestAncestrySets(limit)
		if err != nil {
			t.Fatalf("LargestAncestrySets(%d): %s", limit, err)
		}
		expectedLength := limit
		if g.Len() < expectedLength {
			expectedLength = g.Len()
		}
		if len(sets) != expectedLength {
			t.Errorf("LargestAncestrySets(%d): got %d entries, want %d", limit, len(sets), expectedLength)
		}
		for i := 1; i < len(sets); i++ {
			if sets[i].AncestorCount > sets[i-1].AncestorCount {
				t.Errorf("LargestAncestrySets(%d): entry %d (%d) is larger than entry %d (%d)",
					limit, i, sets[i].AncestorCount, i-1, sets[i-1].AncestorCount)
			}
		}
	}
}

func TestLargestAncestrySetsErrors(t *testing.T) {
	g := buildGraph(t, map[string][]string{"b": {"a"}})

	_, err := g.LargestAncestrySets(3)
	if !errors.Is(err, ErrNotReady) {
		t.Errorf("LargestAncestrySets before counting: got %v, want ErrNotReady", err)
	}

	err = g.ComputeAncestorCounts()
	if err != nil {
		t.Fatalf("ComputeAncestorCounts: %s", err)
	}
	_, err = g.LargestAncestrySets(-1)
	if !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("LargestAncestrySets(-1): got %v, want ErrInvalidLimit", err)
	}
}
