package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teatak/pos/config"
	"github.com/teatak/pos/hmm"
	"github.com/teatak/pos/pipeline"
	"github.com/teatak/pos/tagger"
	"github.com/teatak/pos/util"
)

func main() {
	var configPath, addr string
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Serve part-of-speech tagging over HTTP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath == "" && util.FileExists(config.DefaultPath) {
				configPath = config.DefaultPath
			}
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	// The model is trained once and shared read-only by every request.
	t, err := pipeline.Train(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newHandler(t, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", cfg.Server.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Request/Response types
type TagRequest struct {
	Text string `json:"text"`
}

type TagResponse struct {
	Tokens []string  `json:"tokens"`
	Tags   []hmm.Tag `json:"tags"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newHandler(t *tagger.Tagger, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tag", func(w http.ResponseWriter, r *http.Request) {
		handleTag(w, r, t, logger)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	return mux
}

func handleTag(w http.ResponseWriter, r *http.Request, t *tagger.Tagger, logger *zap.Logger) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{"method not allowed"})
		return
	}

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	tokens, tags, err := t.TagText(req.Text)
	if errors.Is(err, hmm.ErrNoViablePath) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{err.Error()})
		return
	}
	if err != nil {
		logger.Error("tagging failed", zap.String("text", req.Text), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{"internal error"})
		return
	}
	writeJSON(w, http.StatusOK, TagResponse{Tokens: tokens, Tags: tags})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
