package analysis

import (
	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// Cancellation represents a turn immediately undone by its inverse.
type Cancellation struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Move1  string `json:"move1"`
	Move2  string `json:"move2"`
}

// MergeOpportunity represents a run of turns on one layer that could be
// written with fewer turns.
type MergeOpportunity struct {
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	Moves      []string `json:"moves"`
	Merged     []string `json:"merged"`
}

// BackAndForthPattern represents alternating moves (e.g., x0 y1 x0 y1 x0 y1).
type BackAndForthPattern struct {
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	Pattern    []string `json:"pattern"`
	Count      int      `json:"count"`
}

// RepetitionReport contains all repetition analysis results.
type RepetitionReport struct {
	ImmediateCancellations []Cancellation        `json:"immediate_cancellations"`
	MergeOpportunities     []MergeOpportunity    `json:"merge_opportunities"`
	BackAndForthPatterns   []BackAndForthPattern `json:"back_and_forth_patterns"`
	TotalWastedMoves       int                   `json:"total_wasted_moves"`
}

// AnalyzeRepetitions analyzes a move sequence for repetitions and wasted motion.
func AnalyzeRepetitions(moves []cube.Move) *RepetitionReport {
	report := &RepetitionReport{
		ImmediateCancellations: []Cancellation{},
		MergeOpportunities:     []MergeOpportunity{},
		BackAndForthPatterns:   []BackAndForthPattern{},
	}

	for i := 0; i+1 < len(moves); i++ {
		if m1, m2 := moves[i], moves[i+1]; m2 == m1.Inverse() {
			report.ImmediateCancellations = append(report.ImmediateCancellations, Cancellation{
				Index1: i,
				Index2: i + 1,
				Move1:  m1.Notation(),
				Move2:  m2.Notation(),
			})
			report.TotalWastedMoves += 2
		}
	}

	// Runs of same-direction turns on one layer: three make one inverse,
	// four make nothing.
	for i := 0; i < len(moves); {
		j := i + 1
		for j < len(moves) && moves[j] == moves[i] {
			j++
		}
		if n := j - i; n >= 3 {
			merged := OptimizeMoves(moves[i:j])
			report.MergeOpportunities = append(report.MergeOpportunities, MergeOpportunity{
				StartIndex: i,
				EndIndex:   j - 1,
				Moves:      notations(moves[i:j]),
				Merged:     notations(merged),
			})
			report.TotalWastedMoves += n - len(merged)
		}
		i = j
	}

	report.BackAndForthPatterns = findBackAndForth(moves)

	return report
}

// findBackAndForth finds alternating move patterns like x0 y1 x0 y1 x0 y1.
func findBackAndForth(moves []cube.Move) []BackAndForthPattern {
	var patterns []BackAndForthPattern

	i := 0
	for i < len(moves)-3 {
		a, b := moves[i], moves[i+1]
		if a == b {
			i++
			continue
		}

		count := 1
		j := i + 2
		for j < len(moves)-1 && moves[j] == a && moves[j+1] == b {
			count++
			j += 2
		}

		// Require at least 3 repetitions to be noteworthy
		if count >= 3 {
			patterns = append(patterns, BackAndForthPattern{
				StartIndex: i,
				EndIndex:   i + count*2 - 1,
				Pattern:    []string{a.Notation(), b.Notation()},
				Count:      count,
			})
			i = j
		} else {
			i++
		}
	}

	return patterns
}

type layerRun struct {
	axis    cube.Axis
	layer   int
	quarter int // net CCW quarter turns, 1 to 3
}

// OptimizeMoves folds consecutive turns of the same layer into their net
// turn and drops turns that cancel, including cancellations exposed by
// earlier ones. A net half turn is written as two CCW quarter turns.
func OptimizeMoves(moves []cube.Move) []cube.Move {
	runs := make([]layerRun, 0, len(moves))

	for _, m := range moves {
		q := 1
		if m.Dir == cube.CW {
			q = 3
		}
		if n := len(runs); n > 0 && runs[n-1].axis == m.Axis && runs[n-1].layer == m.Layer {
			runs[n-1].quarter = (runs[n-1].quarter + q) % 4
			if runs[n-1].quarter == 0 {
				runs = runs[:n-1]
			}
			continue
		}
		runs = append(runs, layerRun{axis: m.Axis, layer: m.Layer, quarter: q})
	}

	result := make([]cube.Move, 0, len(runs))
	for _, r := range runs {
		m := cube.Move{Axis: r.axis, Layer: r.layer, Dir: cube.CCW}
		switch r.quarter {
		case 1:
			result = append(result, m)
		case 2:
			result = append(result, m, m)
		case 3:
			result = append(result, m.Inverse())
		}
	}
	return result
}

// CalculateEfficiency calculates the efficiency ratio (optimized/original).
func CalculateEfficiency(original, optimized []cube.Move) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(optimized)) / float64(len(original))
}

func notations(moves []cube.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation()
	}
	return out
}
