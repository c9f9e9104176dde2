// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grid

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/corpus-engine/internal/assemble"
)

type wordCounter struct{}

func (wordCounter) Count(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

func TestExpand(t *testing.T) {
	base := assemble.Params{Words: 100}
	axes := Axes{
		Words:           []int{300, 500},
		Citations:       []int{0, 10},
		SkipPercentages: []float64{0, 50},
	}

	params := expand(base, axes)
	if len(params) != 8 {
		t.Fatalf("expand() produced %d combinations, want 8", len(params))
	}

	// Words vary slowest, skip percentages fastest.
	if params[0].Words != 300 || params[0].MinCitations != 0 || params[0].SkipPercentage != 0 {
		t.Errorf("first cell = %+v", params[0])
	}
	if params[1].SkipPercentage != 50 {
		t.Errorf("second cell skip = %v, want 50", params[1].SkipPercentage)
	}
	if params[7].Words != 500 || params[7].MinCitations != 10 || params[7].SkipPercentage != 50 {
		t.Errorf("last cell = %+v", params[7])
	}
}

func TestExpand_EmptyAxesUseBase(t *testing.T) {
	base := assemble.Params{
		Words:        250,
		PriorityDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		MinCitations: 5,
	}
	params := expand(base, Axes{})
	if len(params) != 1 {
		t.Fatalf("expand() with empty axes produced %d cells, want 1", len(params))
	}
	if params[0] != base {
		t.Errorf("expand() cell = %+v, want base unchanged", params[0])
	}
}

func TestRun(t *testing.T) {
	txtDir := t.TempDir()
	if err := os.WriteFile(
		filepath.Join(txtDir, "2026_20260101_00005_Paper.txt"),
		[]byte("several words of paper text"), 0o644); err != nil {
		t.Fatal(err)
	}

	base := assemble.Params{TxtDir: txtDir, OutDir: t.TempDir(), Seed: 1}
	axes := Axes{
		Words:     []int{2, 4},
		Citations: []int{0, 100},
	}

	var out bytes.Buffer
	cells, summary := Run(base, axes, wordCounter{}, &out)
	if len(cells) != 4 {
		t.Fatalf("Run() produced %d cells, want 4", len(cells))
	}

	// The citations=100 cells select no papers and must fail without
	// stopping the sweep.
	if summary.OK != 2 || summary.Failed != 2 {
		t.Errorf("Run() summary = %+v, want 2 ok, 2 failed", summary)
	}
	if !strings.Contains(out.String(), "Grid summary: 2 ok, 2 failed") {
		t.Errorf("summary line missing: %q", out.String())
	}

	for _, cell := range cells {
		wantFail := cell.Params.MinCitations == 100
		if wantFail != (cell.Err != nil) {
			t.Errorf("cell %+v: err = %v", cell.Params, cell.Err)
		}
		if !wantFail && cell.Result.Path == "" {
			t.Errorf("cell %+v: missing output path", cell.Params)
		}
	}
}
