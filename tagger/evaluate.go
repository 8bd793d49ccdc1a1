package tagger

import (
	"github.com/pkg/errors"

	"github.com/teatak/pos/hmm"
	"github.com/teatak/pos/util"
)

// Score holds per-token accuracy counts.
type Score struct {
	Correct int
	Wrong   int
	// PassThrough counts period tokens tagged without the model, and
	// PassThroughCorrect those among them that matched the gold tag. Both
	// are included in Correct and Wrong.
	PassThrough        int
	PassThroughCorrect int
	// Failed counts sentences with no viable path; their tokens are Wrong.
	Failed int
}

// Total returns the number of scored tokens.
func (s Score) Total() int {
	return s.Correct + s.Wrong
}

// Accuracy returns Correct / Total, or 0 when nothing was scored.
func (s Score) Accuracy() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total())
}

// ModelAccuracy is Accuracy restricted to the tokens the model decoded.
func (s Score) ModelAccuracy() float64 {
	n := s.Total() - s.PassThrough
	if n == 0 {
		return 0
	}
	return float64(s.Correct-s.PassThroughCorrect) / float64(n)
}

// Evaluate tags every sentence and compares the result with its gold tags.
func (t *Tagger) Evaluate(sentences []hmm.Sentence) (Score, error) {
	var score Score
	for i, s := range sentences {
		if len(s.Words) != len(s.Tags) {
			return score, errors.Wrapf(hmm.ErrCorpusMismatch, "sentence %d: %d words, %d tags", i, len(s.Words), len(s.Tags))
		}
		pred, err := t.Tag(s.Words)
		if errors.Is(err, hmm.ErrNoViablePath) {
			score.Failed++
			score.Wrong += len(s.Words)
			continue
		}
		if err != nil {
			return score, errors.Wrapf(err, "sentence %d", i)
		}

		for j, gold := range s.Tags {
			passThrough := t.Policy == PeriodPassThrough && util.IsPeriod(s.Words[j])
			if passThrough {
				score.PassThrough++
			}
			if pred[j] == gold {
				score.Correct++
				if passThrough {
					score.PassThroughCorrect++
				}
			} else {
				score.Wrong++
			}
		}
	}
	return score, nil
}
