// Package config loads tagger settings from a YAML file.
package config

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/teatak/pos/hmm"
	"github.com/teatak/pos/tagger"
)

// Default data locations, relative to the working directory.
const (
	DefaultPath = "postag.yaml"

	TrainText = "data/brown-train-sentences.txt"
	TrainTags = "data/brown-train-tags.txt"
	TestText  = "data/brown-test-sentences.txt"
	TestTags  = "data/brown-test-tags.txt"
)

// Corpus names a sentence file and its tag file.
type Corpus struct {
	Text string `yaml:"text"`
	Tags string `yaml:"tags"`
}

// Decoder holds decoding settings.
type Decoder struct {
	UnseenPenalty float64 `yaml:"unseen_penalty"`
}

// Punctuation holds the period policy.
type Punctuation struct {
	PeriodPolicy string `yaml:"period_policy"`
	PeriodTag    string `yaml:"period_tag"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Server configures cmd/server.
type Server struct {
	Addr string `yaml:"addr"`
}

// Config is the whole configuration file.
type Config struct {
	Train       Corpus      `yaml:"train"`
	Test        Corpus      `yaml:"test"`
	Decoder     Decoder     `yaml:"decoder"`
	Punctuation Punctuation `yaml:"punctuation"`
	Log         Log         `yaml:"log"`
	Server      Server      `yaml:"server"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Train:   Corpus{Text: TrainText, Tags: TrainTags},
		Test:    Corpus{Text: TestText, Tags: TestTags},
		Decoder: Decoder{UnseenPenalty: hmm.DefaultUnseenPenalty},
		Punctuation: Punctuation{
			PeriodPolicy: tagger.PeriodModel.String(),
			PeriodTag:    string(tagger.DefaultPeriodTag),
		},
		Log:    Log{Level: "info"},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Train.Text == "" || c.Train.Tags == "" {
		return errors.New("train.text and train.tags are required")
	}
	p := c.Decoder.UnseenPenalty
	if math.IsNaN(p) || math.IsInf(p, 0) || p > 0 {
		return errors.Errorf("decoder.unseen_penalty must be finite and <= 0, got %v", p)
	}
	if _, err := tagger.ParsePeriodPolicy(c.Punctuation.PeriodPolicy); err != nil {
		return err
	}
	if c.Punctuation.PeriodTag == "" || hmm.Tag(c.Punctuation.PeriodTag) == hmm.Start {
		return errors.Errorf("punctuation.period_tag %q is not a usable tag", c.Punctuation.PeriodTag)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

// TaggerOptions converts the decoder and punctuation sections.
func (c *Config) TaggerOptions() (tagger.Options, error) {
	policy, err := tagger.ParsePeriodPolicy(c.Punctuation.PeriodPolicy)
	if err != nil {
		return tagger.Options{}, err
	}
	return tagger.Options{
		Policy:        policy,
		PeriodTag:     hmm.Tag(c.Punctuation.PeriodTag),
		UnseenPenalty: c.Decoder.UnseenPenalty,
	}, nil
}

// Logger builds a zap logger from the log section.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log.level")
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
