// Package pipeline wires corpus files, training and evaluation together
// for the commands.
package pipeline

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/teatak/pos/config"
	"github.com/teatak/pos/corpus"
	"github.com/teatak/pos/hmm"
	"github.com/teatak/pos/tagger"
)

// Train loads the training corpus from cfg and builds a tagger.
func Train(cfg *config.Config, logger *zap.Logger) (*tagger.Tagger, error) {
	opts, err := cfg.TaggerOptions()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sentences, err := corpus.Load(cfg.Train.Text, cfg.Train.Tags)
	if err != nil {
		return nil, errors.Wrap(err, "load training corpus")
	}
	logger.Info("loaded training corpus",
		zap.String("text", cfg.Train.Text),
		zap.String("tags", cfg.Train.Tags),
		zap.Int("sentences", len(sentences)),
		zap.Int("tokens", countTokens(sentences)))

	t, err := tagger.Train(sentences, opts)
	if err != nil {
		return nil, errors.Wrap(err, "train")
	}
	if err := t.Model().Validate(); err != nil {
		return nil, errors.Wrap(err, "trained model")
	}
	logger.Info("trained model",
		zap.Int("tags", len(t.Model().Tags())),
		zap.Stringer("period_policy", opts.Policy),
		zap.Float64("unseen_penalty", opts.UnseenPenalty),
		zap.Duration("elapsed", time.Since(start)))
	return t, nil
}

// Evaluate loads the test corpus from cfg and scores t against it.
func Evaluate(t *tagger.Tagger, cfg *config.Config, logger *zap.Logger) (tagger.Score, error) {
	sentences, err := corpus.Load(cfg.Test.Text, cfg.Test.Tags)
	if err != nil {
		return tagger.Score{}, errors.Wrap(err, "load test corpus")
	}

	score, err := t.Evaluate(sentences)
	if err != nil {
		return score, errors.Wrap(err, "evaluate")
	}
	if score.Failed > 0 {
		logger.Warn("sentences without a viable path", zap.Int("count", score.Failed))
	}
	logger.Info("evaluated",
		zap.Int("sentences", len(sentences)),
		zap.Int("correct", score.Correct),
		zap.Int("wrong", score.Wrong),
		zap.Int("pass_through", score.PassThrough),
		zap.Float64("accuracy", score.Accuracy()),
		zap.Float64("model_accuracy", score.ModelAccuracy()))
	return score, nil
}

func countTokens(sentences []hmm.Sentence) int {
	n := 0
	for _, s := range sentences {
		n += len(s.Words)
	}
	return n
}
