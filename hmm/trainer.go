package hmm

import (
	"math"

	"github.com/pkg/errors"

	"github.com/teatak/pos/util"
)

// Sentence is a training sentence with its golden tags.
type Sentence struct {
	Words []string
	Tags  []Tag
}

// counts[row][key] = number of times key followed (or was emitted by) row
type counts[K comparable] map[Tag]map[K]int

func (c counts[K]) add(row Tag, key K) {
	r, ok := c[row]
	if !ok {
		r = make(map[K]int)
		c[row] = r
	}
	r[key]++
}

// Train counts transitions and observations over the corpus and turns each
// row into natural-log probabilities.
//
// The whole batch is rejected if any sentence has mismatched word and tag
// counts or uses the Start tag. Words are normalized before counting.
func Train(sentences []Sentence) (*Model, error) {
	if len(sentences) == 0 {
		return nil, errors.WithStack(ErrEmptyCorpus)
	}

	trans := counts[Tag]{}
	obs := counts[string]{}
	for i, s := range sentences {
		if len(s.Words) != len(s.Tags) {
			return nil, errors.Wrapf(ErrCorpusMismatch, "sentence %d: %d words, %d tags", i, len(s.Words), len(s.Tags))
		}
		prev := Start
		for j, tag := range s.Tags {
			if tag == Start {
				return nil, errors.Wrapf(ErrReservedTag, "sentence %d, position %d: %q", i, j, tag)
			}
			trans.add(prev, tag)
			obs.add(tag, util.NormalizeWord(s.Words[j]))
			prev = tag
		}
	}
	if len(trans) == 0 {
		return nil, errors.Wrap(ErrEmptyCorpus, "no tagged words")
	}

	return newModel(logNormalize(trans), logNormalize(obs)), nil
}

// logNormalize divides every count by its row total and takes the natural
// log. Totals are summed over the raw integer counts.
func logNormalize[K comparable](c counts[K]) map[Tag]map[K]float64 {
	out := make(map[Tag]map[K]float64, len(c))
	for tag, row := range c {
		total := 0
		for _, n := range row {
			total += n
		}
		probs := make(map[K]float64, len(row))
		for key, n := range row {
			probs[key] = math.Log(float64(n) / float64(total))
		}
		out[tag] = probs
	}
	return out
}
