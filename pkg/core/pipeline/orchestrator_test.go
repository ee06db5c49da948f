// Package pipeline - Test Suite for the batch orchestrator
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"eps_extraction/pkg/core/eps"
)

func writeFiling(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestOrchestrator(t *testing.T, workers int) *Orchestrator {
	t.Helper()
	orch, err := NewOrchestrator(eps.DefaultConfig(), workers)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	return orch
}

const goodFiling = `<html><body><table>
	<tr><td>Diluted earnings per share</td><td>$0.74</td></tr>
	<tr><td>Basic earnings per share</td><td>$0.75</td></tr>
</table></body></html>`

const emptyFiling = `<html><body><table>
	<tr><td>Total revenues</td><td>$1,234</td></tr>
</table></body></html>`

func TestRunDirectory_TotalOverInputSet(t *testing.T) {
	dir := t.TempDir()
	writeFiling(t, dir, "a_good.html", goodFiling)
	writeFiling(t, dir, "b_empty.html", emptyFiling)
	writeFiling(t, dir, "c_garbage.html", "\x00 not html <<<")
	writeFiling(t, dir, "ignored.txt", "not a filing")

	results, err := newTestOrchestrator(t, 4).RunDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("RunDirectory: %v", err)
	}

	// Every HTML filing yields exactly one Result, failures included.
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Filename != "a_good.html" || !results[0].Found || results[0].EPS != "0.74" {
		t.Errorf("results[0] = %+v, want found 0.74", results[0])
	}
	if results[1].Found {
		t.Errorf("results[1] = %+v, want not found", results[1])
	}
	if results[2].Found {
		t.Errorf("results[2] = %+v, want not found", results[2])
	}
}

func TestRunDirectory_DeterministicAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeFiling(t, dir, "one.html", goodFiling)
	writeFiling(t, dir, "two.html", emptyFiling)
	writeFiling(t, dir, "three.htm", goodFiling)

	orch := newTestOrchestrator(t, 3)
	first, err := orch.RunDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("RunDirectory: %v", err)
	}
	second, err := orch.RunDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("RunDirectory: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs differ:\n%+v\n%+v", first, second)
	}
}

func TestRunDirectory_MissingDirectory(t *testing.T) {
	_, err := newTestOrchestrator(t, 1).RunDirectory(context.Background(), "does/not/exist")
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWriteCSV(t *testing.T) {
	results := []eps.Result{
		{Filename: "a.html", EPS: "0.74", Found: true},
		{Filename: "b.html"},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, results); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "filename,eps\na.html,0.74\nb.html,not found\n"
	if sb.String() != want {
		t.Errorf("CSV = %q, want %q", sb.String(), want)
	}
}

func TestPersist_NilSinkIsNoop(t *testing.T) {
	orch := newTestOrchestrator(t, 1)
	if err := orch.Persist(context.Background(), []eps.Result{{Filename: "a.html"}}); err != nil {
		t.Errorf("Persist with nil sink: %v", err)
	}
}

type recordingSink struct {
	runID   string
	results []eps.Result
}

func (s *recordingSink) SaveRun(_ context.Context, runID string, results []eps.Result) error {
	s.runID = runID
	s.results = results
	return nil
}

func TestPersist_UsesFreshRunID(t *testing.T) {
	orch := newTestOrchestrator(t, 1)
	sink := &recordingSink{}
	orch.SetSink(sink)

	results := []eps.Result{{Filename: "a.html", EPS: "0.74", Found: true}}
	if err := orch.Persist(context.Background(), results); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if sink.runID == "" {
		t.Error("sink received empty run id")
	}
	if len(sink.results) != 1 {
		t.Errorf("sink received %d results, want 1", len(sink.results))
	}

	firstID := sink.runID
	if err := orch.Persist(context.Background(), results); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if sink.runID == firstID {
		t.Error("run id reused across runs")
	}
}
