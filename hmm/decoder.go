package hmm

import (
	"github.com/pkg/errors"

	"github.com/teatak/pos/util"
)

// Decoder finds the most likely tag sequence for a sentence.
// It only reads the Model, so one Model may back many decoders.
type Decoder struct {
	Model *Model
	// UnseenPenalty replaces the observation score of a word never seen
	// with the candidate tag.
	UnseenPenalty float64
}

// NewDecoder creates a decoder using DefaultUnseenPenalty.
func NewDecoder(m *Model) *Decoder {
	return &Decoder{Model: m, UnseenPenalty: DefaultUnseenPenalty}
}

// Decode is shorthand for NewDecoder(m).Decode(words).
func (m *Model) Decode(words []string) ([]Tag, error) {
	return NewDecoder(m).Decode(words)
}

// Decode performs Viterbi decoding and returns one tag per word.
//
// Tags are visited in interned order (Start, then lexicographic) and a
// candidate replaces the current best only if strictly greater, so ties go
// to the lexicographically smallest tag. An empty sentence yields an empty
// tag slice and no error.
func (d *Decoder) Decode(words []string) ([]Tag, error) {
	n := len(words)
	if n == 0 {
		return []Tag{}, nil
	}
	m := d.Model
	k := len(m.tags)

	// score[tag] = best cumulative score of a path ending in tag
	score := make([]float64, k)
	alive := make([]bool, k)
	alive[startID] = true

	next := make([]float64, k)
	nextAlive := make([]bool, k)

	// path[i][tag] = tag at i-1 that gave the best score for tag at i
	path := make([][]int, n)

	for i, w := range words {
		word := util.NormalizeWord(w)
		back := make([]int, k)
		clear(nextAlive)
		reached := false

		for prev := 0; prev < k; prev++ {
			if !alive[prev] {
				continue
			}
			for _, a := range m.trans[prev] {
				s := score[prev] + a.logp + d.emission(a.to, word)
				if !nextAlive[a.to] || s > next[a.to] {
					next[a.to] = s
					nextAlive[a.to] = true
					back[a.to] = prev
					reached = true
				}
			}
		}
		if !reached {
			return nil, errors.Wrapf(ErrNoViablePath, "position %d (%q)", i, w)
		}

		path[i] = back
		score, next = next, score
		alive, nextAlive = nextAlive, alive
	}

	// Termination
	best := -1
	for tag := 0; tag < k; tag++ {
		if alive[tag] && (best < 0 || score[tag] > score[best]) {
			best = tag
		}
	}

	// Backtrack
	tags := make([]Tag, n)
	cur := best
	for i := n - 1; i >= 0; i-- {
		tags[i] = m.tags[cur]
		cur = path[i][cur]
	}
	return tags, nil
}

func (d *Decoder) emission(tag int, word string) float64 {
	if p, ok := d.Model.obs[tag][word]; ok {
		return p
	}
	return d.UnseenPenalty
}
