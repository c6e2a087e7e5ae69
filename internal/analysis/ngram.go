package analysis

import (
	"sort"
	"strings"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// NGram represents a repeated move sequence.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence represents where an n-gram was found.
type NGramOccurrence struct {
	SessionID  string `json:"session_id,omitempty"`
	StartIndex int    `json:"start_index"`
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // Keyed by n
}

const maxOccurrences = 10

// moveToken packs a move into one comparable value. Layers up to 2^20
// fit, far past any grid the simulator builds.
func moveToken(m cube.Move) uint32 {
	dir := uint32(0)
	if m.Dir == cube.CW {
		dir = 1
	}
	return uint32(m.Layer)<<3 | uint32(m.Axis)<<1 | dir
}

// RollingHash implements a Rabin-Karp rolling hash over move tokens.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint32
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   1_000_003,
		n:      n,
		window: make([]uint32, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint32) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)

	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

type ngramEntry struct {
	start       int
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the top-K most frequent repeated n-grams for each n in
// [minN, maxN]. Sequences seen only once are left out.
func MineNGrams(moves []cube.Move, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	tokens := make([]uint32, len(moves))
	for i, m := range moves {
		tokens[i] = moveToken(m)
	}

	for n := max(minN, 1); n <= maxN && n <= len(moves); n++ {
		if ngrams := mineNGramsForN(tokens, moves, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

func mineNGramsForN(tokens []uint32, moves []cube.Move, n, topK int) []NGram {
	// Several windows may share a hash; each bucket holds distinct sequences.
	buckets := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, tok := range tokens {
		rh.Roll(tok)
		if !rh.Ready() {
			continue
		}
		start := i - n + 1
		occ := NGramOccurrence{StartIndex: start}

		h := rh.Hash()
		var found *ngramEntry
		for _, e := range buckets[h] {
			if tokensEqual(tokens[e.start:e.start+n], tokens[start:start+n]) {
				found = e
				break
			}
		}
		if found == nil {
			found = &ngramEntry{start: start}
			buckets[h] = append(buckets[h], found)
			order = append(order, found)
		}
		found.count++
		if len(found.occurrences) < maxOccurrences {
			found.occurrences = append(found.occurrences, occ)
		}
	}

	var entries []*ngramEntry
	for _, e := range order {
		if e.count >= 2 {
			entries = append(entries, e)
		}
	}

	// Stable keeps first-seen order among equal counts.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})
	if len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]NGram, len(entries))
	for i, e := range entries {
		seq := make([]string, n)
		for j := range seq {
			seq[j] = moves[e.start+j].Notation()
		}
		result[i] = NGram{N: n, Sequence: seq, Count: e.count, Occurrences: e.occurrences}
	}
	return result
}

func tokensEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MineNGramsAcrossSessions aggregates per-session reports by sequence.
func MineNGramsAcrossSessions(reports map[string]*NGramReport, topK int) *NGramReport {
	out := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	ids := make([]string, 0, len(reports))
	for id := range reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	byN := make(map[int]map[string]*NGram)
	for _, id := range ids {
		for n, ngrams := range reports[id].TopNGrams {
			agg := byN[n]
			if agg == nil {
				agg = make(map[string]*NGram)
				byN[n] = agg
			}
			for _, ng := range ngrams {
				key := strings.Join(ng.Sequence, " ")
				existing, ok := agg[key]
				if !ok {
					existing = &NGram{N: ng.N, Sequence: ng.Sequence}
					agg[key] = existing
				}
				existing.Count += ng.Count
				for _, occ := range ng.Occurrences {
					if len(existing.Occurrences) < maxOccurrences {
						occ.SessionID = id
						existing.Occurrences = append(existing.Occurrences, occ)
					}
				}
			}
		}
	}

	for n, agg := range byN {
		ngrams := make([]NGram, 0, len(agg))
		for _, ng := range agg {
			ngrams = append(ngrams, *ng)
		}
		sort.Slice(ngrams, func(i, j int) bool {
			if ngrams[i].Count != ngrams[j].Count {
				return ngrams[i].Count > ngrams[j].Count
			}
			return strings.Join(ngrams[i].Sequence, " ") < strings.Join(ngrams[j].Sequence, " ")
		})
		if len(ngrams) > topK {
			ngrams = ngrams[:topK]
		}
		out.TopNGrams[n] = ngrams
	}

	return out
}
