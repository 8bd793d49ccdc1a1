package hmm

import "github.com/pkg/errors"

var (
	// ErrCorpusMismatch is returned when a training sentence has a different
	// number of words and tags.
	ErrCorpusMismatch = errors.New("corpus mismatch: word and tag counts differ")
	// ErrEmptyCorpus is returned when training is given no sentences.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrReservedTag is returned when the start sentinel appears as a real tag.
	ErrReservedTag = errors.New("reserved tag")
	// ErrNoViablePath is returned when every candidate path dies before the
	// end of the sentence.
	ErrNoViablePath = errors.New("no viable path")
	// ErrInvalidScore is returned by NewModel for NaN, infinite or positive
	// log-probabilities.
	ErrInvalidScore = errors.New("invalid log-probability")
	// ErrNotNormalized is reported by Validate for rows whose probabilities
	// do not sum to one.
	ErrNotNormalized = errors.New("row not normalized")
)
