package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teatak/pos/config"
	"github.com/teatak/pos/pipeline"
	"github.com/teatak/pos/tagger"
	"github.com/teatak/pos/util"
)

type rootFlags struct {
	configPath    string
	trainText     string
	trainTags     string
	policy        string
	unseenPenalty float64
	logLevel      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "postag",
		Short:         "Part-of-speech tagging with a Hidden Markov Model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Path to a YAML config file (default "+config.DefaultPath+" if present)")
	pf.StringVar(&f.trainText, "train-text", "", "Training sentences file (overrides config)")
	pf.StringVar(&f.trainTags, "train-tags", "", "Training tags file (overrides config)")
	pf.StringVar(&f.policy, "period-policy", "", "Period handling: model or passthrough (overrides config)")
	pf.Float64Var(&f.unseenPenalty, "unseen-penalty", 0, "Score for words never seen with a tag (overrides config)")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level (overrides config)")

	cmd.AddCommand(newTagCmd(f), newEvalCmd(f), newInspectCmd(f))
	return cmd
}

// load resolves the configuration, builds the logger and trains a tagger.
func (f *rootFlags) load(cmd *cobra.Command) (*config.Config, *zap.Logger, *tagger.Tagger, error) {
	cfg := config.Default()
	path := f.configPath
	if path == "" && util.FileExists(config.DefaultPath) {
		path = config.DefaultPath
	}
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, nil, nil, err
		}
	}
	if f.trainText != "" {
		cfg.Train.Text = f.trainText
	}
	if f.trainTags != "" {
		cfg.Train.Tags = f.trainTags
	}
	if f.policy != "" {
		cfg.Punctuation.PeriodPolicy = f.policy
	}
	if cmd.Flags().Changed("unseen-penalty") {
		cfg.Decoder.UnseenPenalty = f.unseenPenalty
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := pipeline.Train(cfg, logger)
	if err != nil {
		logger.Error("training failed", zap.Error(err))
		logger.Debug("training failed", zap.String("trace", fmt.Sprintf("%+v", err)))
		_ = logger.Sync()
		return nil, nil, nil, err
	}
	return cfg, logger, t, nil
}
