// Command research runs the podcast keyword pipeline: it loads the
// transcript corpus, extracts and filters keywords, and writes the JSON
// artifacts the site consumes.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"

	"github.com/inajob/inajob-podcast-research/internal/analyzer"
	"github.com/inajob/inajob-podcast-research/internal/config"
	"github.com/inajob/inajob-podcast-research/internal/corpus"
	"github.com/inajob/inajob-podcast-research/internal/results"
	"github.com/inajob/inajob-podcast-research/internal/tokencache"
	"github.com/inajob/inajob-podcast-research/internal/tokenize"
)

const version = "0.2.0"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "research",
	Short: "Keyword extraction over podcast transcripts",
	Long: `research chunks Japanese podcast transcripts into phrases, collects
keyword candidates, and filters them into the keyword maps published
alongside the transcripts.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyzeCmd.RunE(cmd, args)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis and write the JSON artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("research %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.json", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalyze() error {
	log := newLogger(verbose)

	fsys, err := workingDirFS()
	if err != nil {
		return err
	}

	cfg, err := config.Load(fsys, cfgFile)
	if err != nil {
		return err
	}

	docs, err := corpus.Load(fsys, cfg.TranscriptsDir)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	log.Info("corpus loaded", "documents", len(docs))

	curated, err := corpus.LoadCuratedKeywords(fsys, cfg.KeywordsFile)
	if err != nil {
		log.Warn("curated keywords unavailable", "error", err)
		curated = nil
	}

	tok, err := tokenize.NewKagome()
	if err != nil {
		return fmt.Errorf("initializing tokenizer: %w", err)
	}

	var cache analyzer.TokenCache
	if cfg.CachePath != "" {
		store, err := tokencache.Open(cfg.CachePath)
		if err != nil {
			log.Warn("token cache unavailable", "path", cfg.CachePath, "error", err)
		} else {
			defer store.Close()
			cache = store
		}
	}

	a := analyzer.New(tok, analyzer.Options{
		Cache:     cache,
		Logger:    log,
		Workers:   cfg.Workers,
		BatchSize: cfg.BatchSize,
		Filter:    cfg.FilterConfig(),
	})
	res := a.Run(docs, curated)

	transcripts := make(map[string]results.Transcript, len(docs))
	for _, doc := range docs {
		transcripts[doc.ID] = results.Transcript{Title: doc.Title, Content: doc.Content}
	}

	artifacts := results.Artifacts{
		KeywordToEpisodes: res.KeywordToEpisodes,
		EpisodeToKeywords: res.EpisodeToKeywords,
		Transcripts:       transcripts,
		CuratedKeywords:   res.CuratedSurvivors,
	}
	if err := results.Write(fsys, cfg.OutputDir, artifacts); err != nil {
		return fmt.Errorf("writing artifacts: %w", err)
	}

	log.Info("analysis complete", "keywords", len(res.KeywordToEpisodes), "output", cfg.OutputDir)
	return nil
}

// workingDirFS roots an FS at the current working directory so config
// paths stay relative.
func workingDirFS() (hackpadfs.FS, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	base := osfs.NewFS()
	sub, err := base.FromOSPath(wd)
	if err != nil {
		return nil, fmt.Errorf("resolving working dir: %w", err)
	}
	return hackpadfs.Sub(base, sub)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
