package hmm

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tags(s string) []Tag {
	out := []Tag{}
	for _, t := range strings.Fields(s) {
		out = append(out, Tag(t))
	}
	return out
}

func TestDecode_Toy(t *testing.T) {
	m, err := Train(toyCorpus())
	require.NoError(t, err)

	got, err := m.Decode(strings.Fields("dog watch dog watch chase"))
	require.NoError(t, err)
	assert.Equal(t, tags("N V N V NP"), got)
}

func TestDecode_UnseenWord(t *testing.T) {
	m, err := Train(toyCorpus())
	require.NoError(t, err)

	got, err := m.Decode([]string{"dog", "bark"})
	require.NoError(t, err)
	assert.Equal(t, tags("N V"), got)
}

func TestDecode_UnseenPenalty(t *testing.T) {
	// B is a likelier successor, but only A has seen "x".
	m, err := NewModel(
		map[Tag]map[Tag]float64{Start: {"A": math.Log(0.1), "B": math.Log(0.9)}},
		map[Tag]map[string]float64{"A": {"x": 0}, "B": {"y": 0}},
	)
	require.NoError(t, err)

	d := NewDecoder(m)
	got, err := d.Decode([]string{"x"})
	require.NoError(t, err)
	assert.Equal(t, tags("A"), got)

	d.UnseenPenalty = 0
	got, err = d.Decode([]string{"x"})
	require.NoError(t, err)
	assert.Equal(t, tags("B"), got)
}

func TestDecode_SingleWord(t *testing.T) {
	m, err := Train(brownishCorpus())
	require.NoError(t, err)

	for _, word := range []string{"the", "dogs", "watch", "unheard"} {
		got, err := m.Decode([]string{word})
		require.NoError(t, err)
		require.Len(t, got, 1)

		// Reference: argmax over transition(Start, tag) + observation(tag, word).
		var want Tag
		best := math.Inf(-1)
		for _, tag := range m.Tags() {
			tp, ok := m.Transition(Start, tag)
			if !ok {
				continue
			}
			op, ok := m.Observation(tag, word)
			if !ok {
				op = DefaultUnseenPenalty
			}
			if tp+op > best {
				best = tp + op
				want = tag
			}
		}
		assert.Equal(t, want, got[0], "word %q", word)
	}
}

func TestDecode_Brownish(t *testing.T) {
	m, err := Train(brownishCorpus())
	require.NoError(t, err)

	tests := []struct {
		text string
		want string
	}{
		{"The dog saw the cat .", "DET N V DET N ."},
		{"I saw a saw .", "PRO V DET N ."},
		{"the cat can watch the dog", "DET N MOD V DET N"},
	}
	for _, tt := range tests {
		got, err := m.Decode(strings.Fields(tt.text))
		require.NoError(t, err)
		assert.Equal(t, tags(tt.want), got, "Decode(%q)", tt.text)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	m, err := Train(toyCorpus())
	require.NoError(t, err)

	for _, words := range [][]string{nil, {}} {
		got, err := m.Decode(words)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestDecode_NoViablePath(t *testing.T) {
	// N is never followed by anything, so a second word has nowhere to go.
	m, err := Train([]Sentence{sentence("dog", "N")})
	require.NoError(t, err)

	got, err := m.Decode([]string{"dog"})
	require.NoError(t, err)
	assert.Equal(t, tags("N"), got)

	got, err = m.Decode([]string{"dog", "dog"})
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrNoViablePath), "got %v", err)
	assert.Contains(t, err.Error(), "position 1")
}

func TestDecode_TieBreak(t *testing.T) {
	half := math.Log(0.5)

	// Equal final scores: the smallest tag wins.
	m, err := NewModel(
		map[Tag]map[Tag]float64{Start: {"B": half, "A": half}},
		map[Tag]map[string]float64{"A": {"x": 0}, "B": {"x": 0}},
	)
	require.NoError(t, err)
	got, err := m.Decode([]string{"x"})
	require.NoError(t, err)
	assert.Equal(t, tags("A"), got)

	// Equal predecessors: the smallest predecessor is kept.
	m, err = NewModel(
		map[Tag]map[Tag]float64{
			Start: {"Z": half, "A": half},
			"A":   {"C": 0},
			"Z":   {"C": 0},
		},
		map[Tag]map[string]float64{"A": {"x": 0}, "Z": {"x": 0}, "C": {"y": 0}},
	)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		got, err = m.Decode([]string{"x", "y"})
		require.NoError(t, err)
		assert.Equal(t, tags("A C"), got)
	}
}

func TestDecode_Deterministic(t *testing.T) {
	m, err := Train(brownishCorpus())
	require.NoError(t, err)

	words := strings.Fields("a dog can saw the old watch .")
	first, err := m.Decode(words)
	require.NoError(t, err)
	assert.Len(t, first, len(words))

	for i := 0; i < 10; i++ {
		again, err := m.Decode(words)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDecode_LengthInvariant(t *testing.T) {
	m, err := Train(brownishCorpus())
	require.NoError(t, err)

	vocab := strings.Fields("the dog saw a cat watch is old i can dogs cats . zebra")
	for n := 1; n <= 12; n++ {
		words := make([]string, n)
		for i := range words {
			words[i] = vocab[(i*7+n)%len(vocab)]
		}
		got, err := m.Decode(words)
		require.NoError(t, err)
		assert.Len(t, got, n)
	}
}

func TestDecode_Concurrent(t *testing.T) {
	m, err := Train(brownishCorpus())
	require.NoError(t, err)

	words := strings.Fields("The dog saw the cat .")
	want, err := m.Decode(words)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]Tag, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = NewDecoder(m).Decode(words)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}
