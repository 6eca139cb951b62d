package llm

import (
	"path/filepath"
	"testing"
)

func openTestCheckpoint(t *testing.T) *Checkpoint {
	t.Helper()
	cp, err := OpenCheckpoint(filepath.Join(t.TempDir(), "checkpoint.db"))
	if err != nil {
		t.Fatalf("OpenCheckpoint failed: %v", err)
	}
	t.Cleanup(func() { cp.Close() })
	return cp
}

func TestCheckpointIndex(t *testing.T) {
	cp := openTestCheckpoint(t)

	index, err := cp.NextIndex("refine")
	if err != nil {
		t.Fatalf("NextIndex failed: %v", err)
	}
	if index != 0 {
		t.Errorf("fresh index = %d, want 0", index)
	}

	if err := cp.SetNextIndex("refine", 40); err != nil {
		t.Fatalf("SetNextIndex failed: %v", err)
	}
	if err := cp.SetNextIndex("refine", 50); err != nil {
		t.Fatalf("SetNextIndex overwrite failed: %v", err)
	}

	index, err = cp.NextIndex("refine")
	if err != nil {
		t.Fatalf("NextIndex failed: %v", err)
	}
	if index != 50 {
		t.Errorf("index = %d, want 50", index)
	}

	// Stages are independent.
	other, err := cp.NextIndex("translate")
	if err != nil {
		t.Fatalf("NextIndex failed: %v", err)
	}
	if other != 0 {
		t.Errorf("other stage index = %d, want 0", other)
	}
}

func TestCheckpointResults(t *testing.T) {
	cp := openTestCheckpoint(t)

	if err := cp.SaveResult("refine", 1, "first"); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if err := cp.SaveResult("refine", 1, "second"); err != nil {
		t.Fatalf("SaveResult overwrite failed: %v", err)
	}
	if err := cp.SaveResult("refine", 2, "other"); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	results, err := cp.Results("refine")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(results) != 2 || results[1] != "second" || results[2] != "other" {
		t.Errorf("results = %v", results)
	}
}

func TestCheckpointClear(t *testing.T) {
	cp := openTestCheckpoint(t)

	if err := cp.SaveResult("refine", 1, "payload"); err != nil {
		t.Fatal(err)
	}
	if err := cp.SetNextIndex("refine", 10); err != nil {
		t.Fatal(err)
	}

	if err := cp.Clear("refine"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	results, err := cp.Results("refine")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("results after clear = %v", results)
	}
	index, err := cp.NextIndex("refine")
	if err != nil {
		t.Fatal(err)
	}
	if index != 0 {
		t.Errorf("index after clear = %d", index)
	}
}
