package hmm

import (
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sentence(words, tags string) Sentence {
	s := Sentence{Words: strings.Fields(words)}
	for _, t := range strings.Fields(tags) {
		s.Tags = append(s.Tags, Tag(t))
	}
	return s
}

func toyCorpus() []Sentence {
	return []Sentence{sentence("dog watch dog watch chase", "N V N V NP")}
}

// A small corpus with shared words across tags and a trailing period.
func brownishCorpus() []Sentence {
	return []Sentence{
		sentence("The dog saw the cat .", "DET N V DET N ."),
		sentence("A cat can watch the dog .", "DET N MOD V DET N ."),
		sentence("Dogs watch cats .", "NP V NP ."),
		sentence("The watch is old .", "DET N V ADJ ."),
		sentence("I saw a saw .", "PRO V DET N ."),
		sentence("Watch the dog", "V DET N"),
	}
}

func TestTrain_ToyTables(t *testing.T) {
	m, err := Train(toyCorpus())
	require.NoError(t, err)

	trans := m.Transitions()
	assert.Equal(t, map[Tag]map[Tag]float64{
		Start: {"N": 0},
		"N":   {"V": 0},
		"V":   {"N": math.Log(0.5), "NP": math.Log(0.5)},
	}, trans)
	assert.InDelta(t, -0.693, trans["V"]["N"], 1e-3)

	assert.Equal(t, map[Tag]map[string]float64{
		"N":  {"dog": 0},
		"V":  {"watch": 0},
		"NP": {"chase": 0},
	}, m.Observations())

	assert.Equal(t, []Tag{"N", "NP", "V"}, m.Tags())

	p, ok := m.Transition("V", "NP")
	assert.True(t, ok)
	assert.InDelta(t, math.Log(0.5), p, 1e-12)
	_, ok = m.Transition("NP", "N")
	assert.False(t, ok, "NP is never followed by anything")
	_, ok = m.Transition("X", "N")
	assert.False(t, ok)

	p, ok = m.Observation("N", "DOG")
	assert.True(t, ok, "lookups are case-insensitive on words")
	assert.Equal(t, 0.0, p)
	_, ok = m.Observation("n", "dog")
	assert.False(t, ok, "tags are case-sensitive")
}

func TestTrain_Normalized(t *testing.T) {
	m, err := Train(brownishCorpus())
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	for prev, row := range m.Transitions() {
		sum := 0.0
		for _, p := range row {
			assert.LessOrEqual(t, p, 0.0)
			sum += math.Exp(p)
		}
		assert.InDelta(t, 1.0, sum, NormTolerance, "transition row %q", prev)
	}
	for tag, row := range m.Observations() {
		sum := 0.0
		for _, p := range row {
			sum += math.Exp(p)
		}
		assert.InDelta(t, 1.0, sum, NormTolerance, "observation row %q", tag)
	}
}

func TestTrain_Counts(t *testing.T) {
	m, err := Train(brownishCorpus())
	require.NoError(t, err)

	// Start is followed by DET x3, NP, PRO, V.
	p, ok := m.Transition(Start, "DET")
	require.True(t, ok)
	assert.InDelta(t, math.Log(3.0/6.0), p, 1e-12)

	// "The" and "the" are one word: DET emits the x5, a x2.
	p, ok = m.Observation("DET", "the")
	require.True(t, ok)
	assert.InDelta(t, math.Log(5.0/7.0), p, 1e-12)

	// "saw" is seen as V and as N.
	_, ok = m.Observation("V", "saw")
	assert.True(t, ok)
	_, ok = m.Observation("N", "saw")
	assert.True(t, ok)
}

func TestTrain_Idempotent(t *testing.T) {
	a, err := Train(brownishCorpus())
	require.NoError(t, err)
	b, err := Train(brownishCorpus())
	require.NoError(t, err)

	assert.Equal(t, a.Transitions(), b.Transitions())
	assert.Equal(t, a.Observations(), b.Observations())
	assert.Equal(t, a.Tags(), b.Tags())
}

func TestTrain_Errors(t *testing.T) {
	tests := []struct {
		name      string
		sentences []Sentence
		want      error
	}{
		{"nil corpus", nil, ErrEmptyCorpus},
		{"no sentences", []Sentence{}, ErrEmptyCorpus},
		{"only empty sentences", []Sentence{{}, {}}, ErrEmptyCorpus},
		{"more words", []Sentence{sentence("dog watch", "N")}, ErrCorpusMismatch},
		{"more tags", []Sentence{
			sentence("dog watch", "N V"),
			sentence("dog", "N V"),
		}, ErrCorpusMismatch},
		{"start tag", []Sentence{sentence("dog hash", "N #")}, ErrReservedTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Train(tt.sentences)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestTrain_MismatchNamesSentence(t *testing.T) {
	_, err := Train([]Sentence{
		sentence("dog", "N"),
		sentence("dog watch", "N"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sentence 1: 2 words, 1 tags")
}
