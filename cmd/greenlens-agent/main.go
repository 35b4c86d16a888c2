// GreenLens Agent - Climate Disclosure Validation Agent
//
// Evaluates extracted climate disclosure records against internal
// consistency rules, external registries (SBTi, CDP) and press coverage,
// and renders a graded report.
//
// Usage:
//
//	greenlens-agent -input disclosure.json
//	greenlens-agent -config config.yaml -input disclosures.json -format table
//	cat disclosure.json | greenlens-agent -format json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/greenlens/sdk/pkg/adapters"
	"github.com/greenlens/sdk/pkg/cache"
	"github.com/greenlens/sdk/pkg/config"
	"github.com/greenlens/sdk/pkg/core"
	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/evaluator"
	"github.com/greenlens/sdk/pkg/events"
	"github.com/greenlens/sdk/pkg/llm"
	"github.com/greenlens/sdk/pkg/metrics"
	"github.com/greenlens/sdk/pkg/news"
	"github.com/greenlens/sdk/pkg/newscheck"
	"github.com/greenlens/sdk/pkg/options"
	"github.com/greenlens/sdk/pkg/report"
	"github.com/greenlens/sdk/pkg/scoring"
	"github.com/greenlens/sdk/pkg/validation"
	"github.com/greenlens/sdk/pkg/validators"
)

const (
	appName    = "greenlens-agent"
	appVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	input := flag.String("input", "-", "Disclosure record JSON file, or - for stdin")
	format := flag.String("format", "text", "Output format: text, json, table")
	output := flag.String("output", "", "Output file path (default stdout)")
	noNews := flag.Bool("no-news", false, "Disable the news cross-referencing adapter")
	noCrossVal := flag.Bool("no-crossval", false, "Disable all external cross-validation")
	verbose := flag.Bool("verbose", false, "Verbose output")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", appName, appVersion)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("load config: %v", err)
	}

	level := core.LogLevelWarn
	if *verbose || cfg.Verbose {
		level = core.LogLevelDebug
	}
	logger := core.NewDefaultLogger(appName, level)

	records, err := readRecords(*input)
	if err != nil {
		fatal("read input: %v", err)
	}
	if len(records) == 0 {
		fatal("no disclosure records in input")
	}

	var collector metrics.Collector = &metrics.NopCollector{}
	if cfg.Metrics.Enabled {
		prom := metrics.NewPrometheusCollector(&metrics.PrometheusConfig{RegisterDefaultMetrics: true})
		collector = prom
		go serveMetrics(cfg.Metrics.Listen, prom, logger)
	}

	store := openCache(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	eval, err := buildEvaluator(cfg, logger, collector, store, *noNews, *noCrossVal)
	if err != nil {
		fatal("%v", err)
	}

	ctx := context.Background()
	results, err := eval.EvaluateBatch(ctx, records)
	if err != nil {
		logger.Error("batch evaluation: %v", err)
	}

	evaluated := make([]*scoring.AggregatedResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			evaluated = append(evaluated, r)
		}
	}
	if len(evaluated) == 0 {
		fatal("no records could be evaluated")
	}

	rendered, err := render(*format, evaluated)
	if err != nil {
		fatal("%v", err)
	}
	if err := write(*output, rendered); err != nil {
		fatal("write output: %v", err)
	}
}

// readRecords parses the input as either a single record object or an
// array of records.
func readRecords(path string) ([]*disclosure.Record, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var records []*disclosure.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse record array: %w", err)
		}
		return records, nil
	}

	var record disclosure.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return []*disclosure.Record{&record}, nil
}

func openCache(cfg *config.Config, logger core.Logger) *cache.Store {
	if !cfg.Cache.Enabled {
		return nil
	}
	store, err := cache.NewStore(&cache.Config{
		DatabasePath: cfg.Cache.DatabasePath,
		TTL:          cfg.Cache.TTL,
	})
	if err != nil {
		logger.Warn("cache disabled: %v", err)
		return nil
	}
	return store
}

func buildEvaluator(cfg *config.Config, logger core.Logger, collector metrics.Collector, store *cache.Store, noNews, noCrossVal bool) (*evaluator.Evaluator, error) {
	opts := []options.EvaluatorOption{
		options.WithLogger(logger),
		options.WithMetrics(collector),
	}

	if len(cfg.Validators) > 0 {
		picked, err := pickValidators(cfg.Validators)
		if err != nil {
			return nil, err
		}
		opts = append(opts, options.WithValidators(picked...))
	}

	if cfg.Weights != nil {
		opts = append(opts, options.WithWeights(cfg.Weights))
	}

	if noCrossVal {
		opts = append(opts, options.WithCrossValidation(false))
		return evaluator.New(opts...), nil
	}

	sbti := adapters.NewSBTi(adapterOptions(cfg)...)
	if cfg.Adapters.SBTiPath != "" {
		if err := sbti.LoadCSV(cfg.Adapters.SBTiPath); err != nil {
			return nil, fmt.Errorf("load sbti data: %w", err)
		}
	}
	cdp := adapters.NewCDP(adapterOptions(cfg)...)
	if cfg.Adapters.CDPPath != "" {
		if err := cdp.LoadCSV(cfg.Adapters.CDPPath); err != nil {
			return nil, fmt.Errorf("load cdp data: %w", err)
		}
	}
	opts = append(opts, options.WithAdapters(sbti, cdp))

	if !noNews {
		opts = append(opts, options.WithAdapters(buildNewsAdapter(cfg, logger, collector, store)))
	}

	return evaluator.New(opts...), nil
}

func pickValidators(names []string) ([]validation.Validator, error) {
	registry := validators.NewRegistry()
	picked := make([]validation.Validator, 0, len(names))
	for _, name := range names {
		v := registry.GetValidator(name)
		if v == nil {
			return nil, fmt.Errorf("unknown validator %q (available: %s)",
				name, strings.Join(registry.ListValidators(), ", "))
		}
		picked = append(picked, v)
	}
	return picked, nil
}

func adapterOptions(cfg *config.Config) []adapters.Option {
	var opts []adapters.Option
	if cfg.Adapters.MatchCutoff > 0 {
		opts = append(opts, adapters.WithMatchCutoff(cfg.Adapters.MatchCutoff))
	}
	return opts
}

// buildNewsAdapter assembles search sources, the LLM extractor and the
// cache into the news adapter. Missing API keys leave the corresponding
// dependency nil; the adapter then reports no-data and is skipped.
func buildNewsAdapter(cfg *config.Config, logger core.Logger, collector metrics.Collector, store *cache.Store) *newscheck.Adapter {
	var sources []news.Source
	add := func(name string, source news.Source, err error) {
		if err != nil {
			logger.Debug("news source %s unavailable: %v", name, err)
			return
		}
		sources = append(sources, source)
	}

	brave, err := news.NewBrave(cfg.News.BraveAPIKey)
	add("brave", brave, err)
	napi, err := news.NewNewsAPI(cfg.News.NewsAPIKey)
	add("newsapi", napi, err)
	bing, err := news.NewBing(cfg.News.BingAPIKey)
	add("bing", bing, err)

	var searcher newscheck.Searcher
	if len(sources) > 0 {
		searcher = news.NewManager(sources,
			news.WithPreferred(cfg.News.Provider),
			news.WithLogger(logger),
			news.WithCollector(collector))
	}

	var extractor newscheck.EventExtractor
	if client, err := llm.NewClient(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}); err == nil {
		extractor = events.NewExtractor(client, events.WithLogger(logger))
	} else {
		logger.Debug("event extraction unavailable: %v", err)
	}

	newsOpts := []newscheck.Option{
		newscheck.WithLogger(logger),
		newscheck.WithMetrics(collector),
		newscheck.WithKeywords(cfg.News.Keywords),
		newscheck.WithMaxResults(cfg.News.MaxResults),
	}
	if store != nil {
		newsOpts = append(newsOpts, newscheck.WithCache(store))
	}
	return newscheck.New(searcher, extractor, newsOpts...)
}

func render(format string, results []*scoring.AggregatedResult) ([]byte, error) {
	switch format {
	case "text":
		var b strings.Builder
		for i, r := range results {
			if i > 0 {
				b.WriteString("\n---\n\n")
			}
			b.WriteString(report.Text(r))
		}
		return []byte(b.String()), nil
	case "json":
		if len(results) == 1 {
			return report.JSON(results[0])
		}
		return json.MarshalIndent(results, "", "  ")
	case "table":
		return []byte(report.Table(results...)), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func write(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func serveMetrics(listen string, collector metrics.Collector, logger core.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	server := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("metrics endpoint listening on %s/metrics", listen)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics endpoint: %v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, appName+": "+format+"\n", args...)
	os.Exit(1)
}
