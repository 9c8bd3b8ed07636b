package app

import (
	"context"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/txancestry/domain/ancestry"
	"github.com/pkg/errors"
)

type mapSource struct {
	txIDs  []string
	inputs map[string][]string
	calls  int
}

func (s *mapSource) ListTransactionIDs(_ context.Context, blockID string) ([]string, error) {
	s.calls++
	if blockID != "680000" {
		return nil, errors.Errorf("unknown block %s", blockID)
	}
	return s.txIDs, nil
}

func (s *mapSource) ListInputs(_ context.Context, txID string) ([]string, error) {
	s.calls++
	return s.inputs[txID], nil
}

func TestAnalyze(t *testing.T) {
	source := &mapSource{
		txIDs: []string{"A", "B", "C", "D"},
		inputs: map[string][]string{
			"B": {"A", "outside"},
			"C": {"A", "B"},
		},
	}

	report, err := NewAnalyzer(source).Analyze(context.Background(), "680000", 3)
	if err != nil {
		t.Fatalf("Analyze: %+v", err)
	}
	expected := &Report{
		BlockID:          "680000",
		Limit:            3,
		TransactionCount: 4,
		Sets: []*ancestry.AncestrySet{
			{TransactionID: "C", AncestorCount: 3},
			{TransactionID: "B", AncestorCount: 1},
			{TransactionID: "A", AncestorCount: 0},
		},
	}
	if !reflect.DeepEqual(report, expected) {
		t.Errorf("Analyze: unexpected report. Want: %s, got: %s",
			spew.Sdump(expected), spew.Sdump(report))
	}
}

func TestAnalyzeErrors(t *testing.T) {
	source := &mapSource{txIDs: []string{"A"}}
	_, err := NewAnalyzer(source).Analyze(context.Background(), "680000", -1)
	if !errors.Is(err, ancestry.ErrInvalidLimit) {
		t.Errorf("Analyze: expected ErrInvalidLimit, got %+v", err)
	}
	if source.calls != 0 {
		t.Errorf("Analyze: expected no source calls for an invalid limit, got %d", source.calls)
	}

	_, err = NewAnalyzer(source).Analyze(context.Background(), "1", 1)
	if err == nil {
		t.Errorf("Analyze: expected an error for an unknown block")
	}

	cyclic := &mapSource{
		txIDs:  []string{"A", "B"},
		inputs: map[string][]string{"A": {"B"}, "B": {"A"}},
	}
	_, err = NewAnalyzer(cyclic).Analyze(context.Background(), "680000", 1)
	var cycleErr ancestry.CyclicDependencyError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("Analyze: expected a CyclicDependencyError, got %+v", err)
	}
	if !reflect.DeepEqual(cycleErr.Cycle, []string{"A", "B"}) {
		t.Errorf("Analyze: unexpected cycle %v", cycleErr.Cycle)
	}
	if !errors.Is(err, ancestry.ErrCyclicDependency) {
		t.Errorf("Analyze: expected ErrCyclicDependency, got %+v", err)
	}
}
