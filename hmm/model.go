package hmm

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"

	"github.com/teatak/pos/util"
)

// Tag is a part-of-speech label. Tags compare case-sensitively.
type Tag string

// Start is the sentinel state that precedes the first word of every sentence.
const Start Tag = "#"

// DefaultUnseenPenalty is the score used in place of an observation
// log-probability for a word never seen with a tag during training.
const DefaultUnseenPenalty = -100.0

// NormTolerance bounds |sum(exp(row)) - 1| for a normalized row.
const NormTolerance = 1e-9

const startID = 0

type arc struct {
	to   int
	logp float64
}

// Model is a Hidden Markov Model over interned tags.
// A Model never changes after construction and may be shared by
// concurrent decoders.
type Model struct {
	// tags[0] is Start, the rest are sorted.
	tags  []Tag
	index map[Tag]int
	// trans[from] lists successors sorted by tag id.
	trans [][]arc
	// obs[tag] maps normalized words to log-probabilities. obs[startID] is nil.
	obs []map[string]float64
}

// NewModel builds a Model from explicit tables.
// Observation words are normalized with util.NormalizeWord.
// Rows are not required to be normalized; use Validate to check that.
func NewModel(trans map[Tag]map[Tag]float64, obs map[Tag]map[string]float64) (*Model, error) {
	for prev, row := range trans {
		for next, p := range row {
			if next == Start {
				return nil, errors.Wrapf(ErrReservedTag, "transition %q -> %q", prev, next)
			}
			if err := checkScore(p); err != nil {
				return nil, errors.Wrapf(err, "transition %q -> %q", prev, next)
			}
		}
	}

	normObs := make(map[Tag]map[string]float64, len(obs))
	for tag, row := range obs {
		if tag == Start {
			return nil, errors.Wrapf(ErrReservedTag, "observation row %q", tag)
		}
		normRow := make(map[string]float64, len(row))
		for word, p := range row {
			if err := checkScore(p); err != nil {
				return nil, errors.Wrapf(err, "observation %q -> %q", tag, word)
			}
			w := util.NormalizeWord(word)
			if _, dup := normRow[w]; dup {
				return nil, errors.Errorf("observation %q: duplicate word %q after normalization", tag, w)
			}
			normRow[w] = p
		}
		normObs[tag] = normRow
	}
	return newModel(trans, normObs), nil
}

func checkScore(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p > 0 {
		return errors.Wrapf(ErrInvalidScore, "%v", p)
	}
	return nil
}

// newModel interns the tags of already checked tables.
func newModel(trans map[Tag]map[Tag]float64, obs map[Tag]map[string]float64) *Model {
	seen := map[Tag]bool{}
	for prev, row := range trans {
		seen[prev] = true
		for next := range row {
			seen[next] = true
		}
	}
	for tag := range obs {
		seen[tag] = true
	}
	delete(seen, Start)

	m := &Model{
		tags:  make([]Tag, 0, len(seen)+1),
		index: make(map[Tag]int, len(seen)+1),
	}
	m.tags = append(m.tags, Start)
	sorted := make([]Tag, 0, len(seen))
	for t := range seen {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	m.tags = append(m.tags, sorted...)
	for i, t := range m.tags {
		m.index[t] = i
	}

	m.trans = make([][]arc, len(m.tags))
	for prev, row := range trans {
		arcs := make([]arc, 0, len(row))
		for next, p := range row {
			arcs = append(arcs, arc{to: m.index[next], logp: p})
		}
		sort.Slice(arcs, func(i, j int) bool { return arcs[i].to < arcs[j].to })
		m.trans[m.index[prev]] = arcs
	}

	m.obs = make([]map[string]float64, len(m.tags))
	for tag, row := range obs {
		cp := make(map[string]float64, len(row))
		for w, p := range row {
			cp[w] = p
		}
		m.obs[m.index[tag]] = cp
	}
	return m
}

// Tags returns the model's tags in sorted order, without Start.
func (m *Model) Tags() []Tag {
	return append([]Tag(nil), m.tags[1:]...)
}

// Transition returns the log-probability of moving from prev to next.
// The second result is false for an unseen pair.
func (m *Model) Transition(prev, next Tag) (float64, bool) {
	from, ok := m.index[prev]
	if !ok {
		return 0, false
	}
	to, ok := m.index[next]
	if !ok {
		return 0, false
	}
	arcs := m.trans[from]
	i := sort.Search(len(arcs), func(i int) bool { return arcs[i].to >= to })
	if i < len(arcs) && arcs[i].to == to {
		return arcs[i].logp, true
	}
	return 0, false
}

// Observation returns the log-probability of tag emitting word.
// The second result is false if the pair was never seen.
func (m *Model) Observation(tag Tag, word string) (float64, bool) {
	id, ok := m.index[tag]
	if !ok {
		return 0, false
	}
	p, ok := m.obs[id][util.NormalizeWord(word)]
	return p, ok
}

// Transitions returns a copy of the transition table.
func (m *Model) Transitions() map[Tag]map[Tag]float64 {
	out := make(map[Tag]map[Tag]float64)
	for from, arcs := range m.trans {
		if len(arcs) == 0 {
			continue
		}
		row := make(map[Tag]float64, len(arcs))
		for _, a := range arcs {
			row[m.tags[a.to]] = a.logp
		}
		out[m.tags[from]] = row
	}
	return out
}

// Observations returns a copy of the observation table.
func (m *Model) Observations() map[Tag]map[string]float64 {
	out := make(map[Tag]map[string]float64)
	for id, row := range m.obs {
		if row == nil {
			continue
		}
		cp := make(map[string]float64, len(row))
		for w, p := range row {
			cp[w] = p
		}
		out[m.tags[id]] = cp
	}
	return out
}

// Validate reports every row of either table whose probabilities do not
// sum to one within NormTolerance.
func (m *Model) Validate() error {
	var err error
	for from, arcs := range m.trans {
		if len(arcs) == 0 {
			continue
		}
		scores := make([]float64, len(arcs))
		for i, a := range arcs {
			scores[i] = a.logp
		}
		err = multierr.Append(err, checkRow("transition", m.tags[from], scores))
	}
	for id, row := range m.obs {
		if len(row) == 0 {
			continue
		}
		scores := make([]float64, 0, len(row))
		for _, p := range row {
			scores = append(scores, p)
		}
		err = multierr.Append(err, checkRow("observation", m.tags[id], scores))
	}
	return err
}

func checkRow(table string, tag Tag, scores []float64) error {
	sum := math.Exp(floats.LogSumExp(scores))
	if math.Abs(sum-1) > NormTolerance {
		return errors.Wrapf(ErrNotNormalized, "%s row %q sums to %v", table, tag, sum)
	}
	return nil
}
