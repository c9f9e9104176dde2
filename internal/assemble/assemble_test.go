// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

// wordCounter stands in for the tokenizer: one token per word.
type wordCounter struct{}

func (wordCounter) Count(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

func writeTxt(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestSelectPapers(t *testing.T) {
	dir := t.TempDir()
	writeTxt(t, dir, "2026_20260215_00000_Recent_Quiet.txt", "a")
	writeTxt(t, dir, "2024_20240601_00050_Old_Popular.txt", "b")
	writeTxt(t, dir, "2023_20230101_00002_Old_Quiet.txt", "c")
	writeTxt(t, dir, "malformed.txt", "d")

	tests := []struct {
		name         string
		priorityDate time.Time
		minCitations int
		want         []string
	}{
		{
			"no filters admits everything",
			time.Time{}, 0,
			[]string{"2023_20230101_00002_Old_Quiet.txt", "2024_20240601_00050_Old_Popular.txt", "2026_20260215_00000_Recent_Quiet.txt", "malformed.txt"},
		},
		{
			"citation threshold",
			time.Time{}, 10,
			[]string{"2024_20240601_00050_Old_Popular.txt"},
		},
		{
			"priority date admits recent despite zero citations",
			date(2026, 1, 1), 10,
			[]string{"2024_20240601_00050_Old_Popular.txt", "2026_20260215_00000_Recent_Quiet.txt"},
		},
		{
			"malformed names fall under citation rule",
			time.Time{}, 1,
			[]string{"2023_20230101_00002_Old_Quiet.txt", "2024_20240601_00050_Old_Popular.txt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectPapers(dir, tt.priorityDate, tt.minCitations)
			if err != nil {
				t.Fatalf("SelectPapers() error = %v", err)
			}
			var bases []string
			for _, f := range got {
				bases = append(bases, filepath.Base(f))
			}
			if len(bases) != len(tt.want) {
				t.Fatalf("SelectPapers() = %v, want %v", bases, tt.want)
			}
			for i := range tt.want {
				if bases[i] != tt.want[i] {
					t.Errorf("SelectPapers()[%d] = %q, want %q", i, bases[i], tt.want[i])
				}
			}
		})
	}
}

func TestSample(t *testing.T) {
	papers := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	rng := rand.New(rand.NewSource(42))

	kept := sample(papers, 50, rng)
	if len(kept) != 5 {
		t.Fatalf("sample(50%%) kept %d papers, want 5", len(kept))
	}

	// Kept papers stay in original order.
	for i := 1; i < len(kept); i++ {
		if kept[i-1] >= kept[i] {
			t.Errorf("sample() order broken: %v", kept)
		}
	}
}

func TestSample_KeepsAtLeastOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	kept := sample([]string{"only"}, 99, rng)
	if len(kept) != 1 {
		t.Errorf("sample(99%%) kept %d papers, want 1", len(kept))
	}
}

func TestSample_ZeroSkipIsIdentity(t *testing.T) {
	papers := []string{"a", "b"}
	kept := sample(papers, 0, rand.New(rand.NewSource(1)))
	if len(kept) != 2 {
		t.Errorf("sample(0%%) = %v, want all papers", kept)
	}
}

func TestSample_Deterministic(t *testing.T) {
	papers := []string{"a", "b", "c", "d", "e", "f"}
	first := sample(papers, 50, rand.New(rand.NewSource(7)))
	second := sample(papers, 50, rand.New(rand.NewSource(7)))
	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Errorf("same seed produced %v and %v", first, second)
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{"shorter than budget", "one two three", 10, "one two three"},
		{"truncated", "one two three four", 2, "one two"},
		{"whitespace normalized", "one\n\ttwo   three", 3, "one two three"},
		{"empty", "", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateWords(tt.text, tt.n); got != tt.want {
				t.Errorf("TruncateWords(%q, %d) = %q, want %q", tt.text, tt.n, got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	txtDir := t.TempDir()
	outDir := t.TempDir()
	writeTxt(t, txtDir, "2026_20260110_00000_Alpha.txt", "alpha body with several words here")
	writeTxt(t, txtDir, "2024_20240101_00020_Beta.txt", "beta body with several words here")

	p := Params{
		TxtDir:       txtDir,
		OutDir:       outDir,
		Words:        3,
		PriorityDate: date(2026, 1, 1),
		MinCitations: 10,
	}

	var out bytes.Buffer
	result, err := Build(p, wordCounter{}, &out)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if result.Selected != 2 || result.Kept != 2 {
		t.Errorf("Build() result = %+v", result)
	}

	// Two papers at three words each, separator words in between.
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	// Name order puts the 2024 paper first.
	wantBody := "beta body with" + Separator + "alpha body with"
	if string(data) != wantBody {
		t.Errorf("output = %q, want %q", data, wantBody)
	}

	wantTokens := len(strings.Fields(wantBody))
	if result.Tokens != wantTokens {
		t.Errorf("Build() tokens = %d, want %d", result.Tokens, wantTokens)
	}

	wantName := "w3_from20260101_cit10_2papers_" + strconv.Itoa(wantTokens) + "tok.txt"
	if filepath.Base(result.Path) != wantName {
		t.Errorf("output name = %q, want %q", filepath.Base(result.Path), wantName)
	}
}

func TestBuild_EmptySelectionFails(t *testing.T) {
	p := Params{
		TxtDir:       t.TempDir(),
		OutDir:       t.TempDir(),
		Words:        100,
		MinCitations: 0,
	}
	if _, err := Build(p, wordCounter{}, &bytes.Buffer{}); err == nil {
		t.Fatal("Build() expected error for empty selection")
	}
}

func TestBuild_SkipEncodedInName(t *testing.T) {
	txtDir := t.TempDir()
	for _, name := range []string{
		"2026_20260101_00001_A.txt",
		"2026_20260102_00001_B.txt",
		"2026_20260103_00001_C.txt",
		"2026_20260104_00001_D.txt",
	} {
		writeTxt(t, txtDir, name, "some words")
	}

	p := Params{
		TxtDir:         txtDir,
		OutDir:         t.TempDir(),
		Words:          5,
		SkipPercentage: 50,
		Seed:           99,
	}

	result, err := Build(p, wordCounter{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.Kept != 2 {
		t.Errorf("Build() kept %d papers, want 2", result.Kept)
	}
	if !strings.Contains(filepath.Base(result.Path), "_skip50pct_2papers_") {
		t.Errorf("output name %q does not encode the skip", filepath.Base(result.Path))
	}
}
