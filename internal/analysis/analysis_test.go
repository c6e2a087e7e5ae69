package analysis

import (
	"testing"
	"time"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

func records(t *testing.T, notation string, origins []string, gaps []int64) []storage.MoveRecord {
	t.Helper()
	moves, err := cube.ParseMoves(notation)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]storage.MoveRecord, len(moves))
	ts := int64(10_000)
	for i, m := range moves {
		if i > 0 {
			ts += gaps[i-1]
		}
		out[i] = storage.MoveRecord{
			MoveIndex: i,
			TsMs:      ts,
			Axis:      m.Axis.String(),
			Layer:     m.Layer,
			Dir:       int(m.Dir),
			Notation:  m.Notation(),
			Origin:    origins[i%len(origins)],
		}
	}
	return out
}

func TestOptimizeMoves(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"x0 x0'", ""},
		{"x0 y1 y1' x0'", ""},
		{"x0 x0' x0", "x0"},
		{"x0 x1'", "x0 x1'"},
		{"z2 z2", "z2 z2"},
		{"z2' z2'", "z2 z2"},
		{"z2 z2 z2", "z2'"},
		{"y0' y0' y0'", "y0"},
		{"x0 x0 x0 x0", ""},
	}

	for _, tt := range tests {
		moves, _ := cube.ParseMoves(tt.in)
		if got := cube.FormatMoves(OptimizeMoves(moves)); got != tt.want {
			t.Errorf("OptimizeMoves(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAnalyzeRepetitions(t *testing.T) {
	moves, _ := cube.ParseMoves("x0 x0' y1 y1 y1 z0 x2 z0 x2 z0 x2")
	rep := AnalyzeRepetitions(moves)

	if len(rep.ImmediateCancellations) != 1 || rep.ImmediateCancellations[0].Index1 != 0 {
		t.Errorf("cancellations = %+v", rep.ImmediateCancellations)
	}
	if len(rep.MergeOpportunities) != 1 {
		t.Fatalf("merges = %+v", rep.MergeOpportunities)
	}
	if mo := rep.MergeOpportunities[0]; mo.StartIndex != 2 || mo.EndIndex != 4 || len(mo.Merged) != 1 || mo.Merged[0] != "y1'" {
		t.Errorf("merge = %+v", mo)
	}
	if len(rep.BackAndForthPatterns) != 1 {
		t.Fatalf("patterns = %+v", rep.BackAndForthPatterns)
	}
	if p := rep.BackAndForthPatterns[0]; p.StartIndex != 5 || p.Count != 3 || p.Pattern[0] != "z0" {
		t.Errorf("pattern = %+v", p)
	}
	if rep.TotalWastedMoves != 4 {
		t.Errorf("wasted = %d, want 4", rep.TotalWastedMoves)
	}
}

func TestSummarize(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ended := started.Add(4 * time.Second)
	notes := "practice"
	s := &storage.Session{
		SessionID: "s1",
		StartedAt: started,
		EndedAt:   &ended,
		Size:      cube.Size{W: 3, H: 3, D: 3},
		Notes:     &notes,
	}
	recs := records(t, "x0 y1 y1' z2",
		[]string{"manual", "gesture", "undo", "manual"},
		[]int64{200, 2000, 300})

	sum := Summarize(s, recs)

	if sum.TotalMoves != 4 || sum.OptimizedMoves != 2 || sum.Cancellations != 1 || sum.WastedMoves != 2 {
		t.Errorf("moves = %d optimized %d cancelled %d wasted %d",
			sum.TotalMoves, sum.OptimizedMoves, sum.Cancellations, sum.WastedMoves)
	}
	if sum.Efficiency != 0.5 {
		t.Errorf("efficiency = %v", sum.Efficiency)
	}
	if sum.ByOrigin["manual"] != 2 || sum.ByOrigin["gesture"] != 1 || sum.ByOrigin["undo"] != 1 {
		t.Errorf("ByOrigin = %v", sum.ByOrigin)
	}
	if sum.ByAxis["y"] != 2 || sum.ByAxis["x"] != 1 || sum.ByAxis["z"] != 1 {
		t.Errorf("ByAxis = %v", sum.ByAxis)
	}
	if sum.DurationMs != 4000 || sum.TPSOverall != 1 {
		t.Errorf("duration %d tps %v", sum.DurationMs, sum.TPSOverall)
	}
	if sum.LongestPauseMs != 2000 || sum.PauseCountOver1500 != 1 {
		t.Errorf("pause %d count %d", sum.LongestPauseMs, sum.PauseCountOver1500)
	}
	if sum.AvgMoveGapMs != 2500.0/3 {
		t.Errorf("avg gap = %v", sum.AvgMoveGapMs)
	}
	if sum.Size != "3x3x3" || sum.Notes != "practice" || sum.EndedAt == "" {
		t.Errorf("summary = %+v", sum)
	}
}

func TestSummarizeOpenSessionUsesMoveSpan(t *testing.T) {
	s := &storage.Session{SessionID: "open", StartedAt: time.Now()}
	recs := records(t, "x0 x1 x2", []string{"play"}, []int64{500, 500})

	sum := Summarize(s, recs)
	if sum.DurationMs != 1000 || sum.TPSOverall != 3 {
		t.Errorf("duration %d tps %v", sum.DurationMs, sum.TPSOverall)
	}
}

func TestAnalyzePauses(t *testing.T) {
	recs := records(t, "x0 x1 x2 x0", []string{"manual"}, []int64{1500, 100, 3000})
	pauses := AnalyzePauses(recs, 1500)
	if len(pauses) != 2 {
		t.Fatalf("pauses = %+v", pauses)
	}
	if pauses[0].AfterMoveIndex != 0 || pauses[1].AfterMoveIndex != 2 || pauses[1].DurationMs != 3000 {
		t.Errorf("pauses = %+v", pauses)
	}
}

func TestMineNGrams(t *testing.T) {
	moves, _ := cube.ParseMoves("x0 y1 x0 y1 z2 x0 y1 z2")
	report := MineNGrams(moves, 2, 3, 5)

	pairs := report.TopNGrams[2]
	if len(pairs) == 0 {
		t.Fatal("no 2-grams")
	}
	top := pairs[0]
	if top.Count != 3 || top.Sequence[0] != "x0" || top.Sequence[1] != "y1" {
		t.Errorf("top 2-gram = %+v", top)
	}
	if len(top.Occurrences) != 3 || top.Occurrences[2].StartIndex != 5 {
		t.Errorf("occurrences = %+v", top.Occurrences)
	}

	triples := report.TopNGrams[3]
	if len(triples) != 1 || triples[0].Count != 2 {
		t.Errorf("3-grams = %+v", triples)
	}
}

func TestMineNGramsSeparatesDirections(t *testing.T) {
	moves, _ := cube.ParseMoves("x0 x0' x0 x0'")
	report := MineNGrams(moves, 2, 2, 5)
	for _, ng := range report.TopNGrams[2] {
		if ng.Sequence[0] == ng.Sequence[1] {
			t.Errorf("mixed directions merged: %+v", ng)
		}
	}
}

func TestMineAcrossSessions(t *testing.T) {
	a, _ := cube.ParseMoves("x0 y1 x0 y1")
	b, _ := cube.ParseMoves("x0 y1 z0 x0 y1")
	reports := map[string]*NGramReport{
		"a": MineNGrams(a, 2, 2, 5),
		"b": MineNGrams(b, 2, 2, 5),
	}

	agg := MineNGramsAcrossSessions(reports, 1)
	top := agg.TopNGrams[2]
	if len(top) != 1 || top[0].Count != 4 {
		t.Fatalf("aggregate = %+v", top)
	}
	if top[0].Occurrences[0].SessionID != "a" {
		t.Errorf("first occurrence from %q", top[0].Occurrences[0].SessionID)
	}
}

func TestRanked(t *testing.T) {
	got := Ranked(map[string]int{"y": 2, "x": 2, "z": 5})
	want := []string{"z", "x", "y"}
	for i, c := range got {
		if c.Key != want[i] {
			t.Errorf("Ranked[%d] = %q, want %q", i, c.Key, want[i])
		}
	}
}
