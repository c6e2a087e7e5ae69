// Package analysis summarizes journaled simulator sessions.
package analysis

import (
	"sort"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// DefaultPauseThresholdMs is the gap counted as a pause in summaries.
const DefaultPauseThresholdMs = 1500

// SessionSummary contains statistics for a single session.
type SessionSummary struct {
	SessionID          string         `json:"session_id"`
	Size               string         `json:"size"`
	StartedAt          string         `json:"started_at"`
	EndedAt            string         `json:"ended_at,omitempty"`
	DurationMs         int64          `json:"duration_ms"`
	TotalMoves         int            `json:"total_moves"`
	OptimizedMoves     int            `json:"optimized_moves"`
	Efficiency         float64        `json:"efficiency"`
	Cancellations      int            `json:"cancellations"`
	WastedMoves        int            `json:"wasted_moves"`
	ByOrigin           map[string]int `json:"by_origin"`
	ByAxis             map[string]int `json:"by_axis"`
	TPSOverall         float64        `json:"tps_overall"`
	LongestPauseMs     int64          `json:"longest_pause_ms"`
	PauseCountOver1500 int            `json:"pause_count_over_1500ms"`
	AvgMoveGapMs       float64        `json:"avg_move_gap_ms"`
	Notes              string         `json:"notes,omitempty"`
}

// PauseInfo represents a pause between two turns.
type PauseInfo struct {
	AfterMoveIndex int   `json:"after_move_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// Summarize builds the summary of a session from its journaled moves.
// Records that fail to decode still count toward totals and timing.
func Summarize(s *storage.Session, records []storage.MoveRecord) *SessionSummary {
	sum := &SessionSummary{
		SessionID:  s.SessionID,
		Size:       s.Size.String(),
		StartedAt:  s.StartedAt.Format("2006-01-02 15:04:05"),
		DurationMs: s.Duration().Milliseconds(),
		TotalMoves: len(records),
		ByOrigin:   make(map[string]int),
		ByAxis:     make(map[string]int),
	}
	if s.EndedAt != nil {
		sum.EndedAt = s.EndedAt.Format("2006-01-02 15:04:05")
	}
	if s.Notes != nil {
		sum.Notes = *s.Notes
	}

	var moves []cube.Move
	for _, r := range records {
		sum.ByOrigin[r.Origin]++
		sum.ByAxis[r.Axis]++
		if m, err := r.Move(); err == nil {
			moves = append(moves, m)
		}
	}

	optimized := OptimizeMoves(moves)
	sum.OptimizedMoves = len(optimized)
	sum.Efficiency = CalculateEfficiency(moves, optimized)
	rep := AnalyzeRepetitions(moves)
	sum.Cancellations = len(rep.ImmediateCancellations)
	sum.WastedMoves = rep.TotalWastedMoves

	if sum.DurationMs <= 0 && len(records) > 1 {
		sum.DurationMs = records[len(records)-1].TsMs - records[0].TsMs
	}
	sum.TPSOverall = CalculateTPS(len(records), sum.DurationMs)
	sum.LongestPauseMs = FindLongestPause(records)
	sum.PauseCountOver1500 = CountPausesOver(records, DefaultPauseThresholdMs)
	sum.AvgMoveGapMs = CalculateAvgMoveGap(records)

	return sum
}

// AnalyzePauses finds all gaps of at least thresholdMs.
func AnalyzePauses(records []storage.MoveRecord, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo

	for i := 1; i < len(records); i++ {
		gap := records[i].TsMs - records[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterMoveIndex: records[i-1].MoveIndex,
				DurationMs:     gap,
				TsMs:           records[i-1].TsMs,
			})
		}
	}

	return pauses
}

// CalculateTPS calculates turns per second.
func CalculateTPS(moves int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(moves) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveGap calculates the average time between turns.
func CalculateAvgMoveGap(records []storage.MoveRecord) float64 {
	if len(records) < 2 {
		return 0
	}

	totalGap := records[len(records)-1].TsMs - records[0].TsMs
	return float64(totalGap) / float64(len(records)-1)
}

// FindLongestPause finds the longest gap between turns.
func FindLongestPause(records []storage.MoveRecord) int64 {
	var longest int64

	for i := 1; i < len(records); i++ {
		gap := records[i].TsMs - records[i-1].TsMs
		if gap > longest {
			longest = gap
		}
	}

	return longest
}

// CountPausesOver counts gaps longer than thresholdMs.
func CountPausesOver(records []storage.MoveRecord, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(records); i++ {
		gap := records[i].TsMs - records[i-1].TsMs
		if gap > thresholdMs {
			count++
		}
	}
	return count
}

// Count is a key with its frequency.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Ranked returns the entries of counts ordered by frequency, then key.
func Ranked(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for k, n := range counts {
		out = append(out, Count{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
