package store

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/cellsolve/internal/odesys"
)

func sampleTrajectory() *odesys.Trajectory {
	tr := odesys.NewTrajectory(2)
	tr.Append(0.0, odesys.State{1.0, -75.0})
	tr.Append(0.5, odesys.State{0.5, -60.25})
	tr.Append(1.0, odesys.State{0.25, -40.5})
	return tr
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tr := sampleTrajectory()
	runID, err := st.Save(RunMetadata{
		Model:    "decay",
		Solver:   "euler",
		Start:    0,
		End:      1,
		StepSize: 0.5,
		Labels:   []string{"y", "V"},
	}, tr)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if meta.Model != "decay" || meta.Solver != "euler" {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Samples != 3 {
		t.Errorf("samples = %d, want 3", meta.Samples)
	}

	loaded, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("LoadTrajectory failed: %v", err)
	}
	if loaded.Len() != tr.Len() {
		t.Fatalf("loaded %d samples, want %d", loaded.Len(), tr.Len())
	}
	for i := 0; i < tr.Len(); i++ {
		wantT, wantS := tr.At(i)
		gotT, gotS := loaded.At(i)
		if math.Abs(gotT-wantT) > 1e-12 {
			t.Errorf("times[%d] = %v, want %v", i, gotT, wantT)
		}
		for j := range wantS {
			if math.Abs(gotS[j]-wantS[j]) > 1e-12 {
				t.Errorf("series[%d][%d] = %v, want %v", j, i, gotS[j], wantS[j])
			}
		}
	}
}

func TestStore_List(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store lists %d runs", len(runs))
	}

	if _, err := st.Save(RunMetadata{Model: "decay", Solver: "euler"}, sampleTrajectory()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("listed %d runs, want 1", len(runs))
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	st := New("/nonexistent/cellsolve-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("List on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("listed %d runs from a missing dir", len(runs))
	}
}

func TestWriteCSV_Header(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTrajectory(), []string{"y"}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[0] != "time,y,x1" {
		t.Errorf("header = %q, want %q", lines[0], "time,y,x1")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := &RunMetadata{ID: "decay_1", Model: "decay", Solver: "dopri5"}

	if err := ExportJSON(&buf, meta, sampleTrajectory()); err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"id": "decay_1"`, `"times"`, `"series"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s", want)
		}
	}
}
