package tagger

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/teatak/pos/hmm"
	"github.com/teatak/pos/util"
)

// PeriodPolicy defines how tokens made only of periods are tagged.
type PeriodPolicy int

const (
	PeriodModel       PeriodPolicy = iota // PeriodModel tags periods with the model like any other word.
	PeriodPassThrough                     // PeriodPassThrough keeps periods out of the model and tags them PeriodTag.
)

// DefaultPeriodTag is the tag the Brown corpus gives to a full stop.
const DefaultPeriodTag hmm.Tag = "."

func (p PeriodPolicy) String() string {
	switch p {
	case PeriodModel:
		return "model"
	case PeriodPassThrough:
		return "passthrough"
	}
	return "unknown"
}

// ParsePeriodPolicy parses the String form of a policy.
func ParsePeriodPolicy(s string) (PeriodPolicy, error) {
	switch s {
	case "model", "":
		return PeriodModel, nil
	case "passthrough":
		return PeriodPassThrough, nil
	}
	return 0, errors.Errorf("unknown period policy %q", s)
}

// Options configures a Tagger.
type Options struct {
	Policy        PeriodPolicy
	PeriodTag     hmm.Tag
	UnseenPenalty float64
}

// DefaultOptions returns the model policy with the default unseen penalty.
func DefaultOptions() Options {
	return Options{
		Policy:        PeriodModel,
		PeriodTag:     DefaultPeriodTag,
		UnseenPenalty: hmm.DefaultUnseenPenalty,
	}
}

// Tagger applies the punctuation policy around a Viterbi decoder.
type Tagger struct {
	Decoder   *hmm.Decoder
	Policy    PeriodPolicy
	PeriodTag hmm.Tag
}

// New wraps a trained model.
func New(m *hmm.Model, opts Options) *Tagger {
	d := hmm.NewDecoder(m)
	d.UnseenPenalty = opts.UnseenPenalty
	return &Tagger{Decoder: d, Policy: opts.Policy, PeriodTag: opts.PeriodTag}
}

// Train builds a model from the corpus. Under PeriodPassThrough the period
// positions are removed from every sentence before counting.
func Train(sentences []hmm.Sentence, opts Options) (*Tagger, error) {
	if opts.Policy == PeriodPassThrough {
		sentences = dropPeriods(sentences)
	}
	m, err := hmm.Train(sentences)
	if err != nil {
		return nil, err
	}
	return New(m, opts), nil
}

func dropPeriods(sentences []hmm.Sentence) []hmm.Sentence {
	out := make([]hmm.Sentence, len(sentences))
	for i, s := range sentences {
		if len(s.Words) != len(s.Tags) {
			// Left for hmm.Train to reject.
			out[i] = s
			continue
		}
		var kept hmm.Sentence
		for j, w := range s.Words {
			if util.IsPeriod(w) {
				continue
			}
			kept.Words = append(kept.Words, w)
			kept.Tags = append(kept.Tags, s.Tags[j])
		}
		out[i] = kept
	}
	return out
}

// Model returns the model behind the tagger.
func (t *Tagger) Model() *hmm.Model {
	return t.Decoder.Model
}

// Tokenize splits a raw line into words on white space.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// Tag returns one tag per word.
func (t *Tagger) Tag(words []string) ([]hmm.Tag, error) {
	if t.Policy != PeriodPassThrough {
		return t.Decoder.Decode(words)
	}

	var kept []string
	var idx []int
	for i, w := range words {
		if !util.IsPeriod(w) {
			kept = append(kept, w)
			idx = append(idx, i)
		}
	}
	decoded, err := t.Decoder.Decode(kept)
	if err != nil {
		return nil, err
	}

	tags := make([]hmm.Tag, len(words))
	for i := range tags {
		tags[i] = t.PeriodTag
	}
	for k, i := range idx {
		tags[i] = decoded[k]
	}
	return tags, nil
}

// TagText tokenizes text and tags the tokens.
func (t *Tagger) TagText(text string) ([]string, []hmm.Tag, error) {
	words := Tokenize(text)
	tags, err := t.Tag(words)
	if err != nil {
		return nil, nil, err
	}
	return words, tags, nil
}
