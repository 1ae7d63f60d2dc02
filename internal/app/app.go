package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/language"

	"github.com/NivBraz/wordtally/internal/config"
	"github.com/NivBraz/wordtally/internal/models"
	"github.com/NivBraz/wordtally/pkg/fetcher"
	"github.com/NivBraz/wordtally/pkg/parser"
	"github.com/NivBraz/wordtally/pkg/wordbank"
	"github.com/NivBraz/wordtally/pkg/words"
)

// App reads every configured source and tallies its words
type App struct {
	config    *config.Config
	fetcher   *fetcher.Fetcher
	parser    *parser.Parser
	stopWords *wordbank.WordBank
	locale    language.Tag
	log       zerolog.Logger
	progress  io.Writer
}

// Option customizes an App
type Option func(*App)

// WithProgressOutput sets where progress bars are drawn. Defaults to stderr.
func WithProgressOutput(w io.Writer) Option {
	return func(a *App) {
		a.progress = w
	}
}

// New creates a new instance of the application
func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	locale, err := cfg.LocaleTag()
	if err != nil {
		return nil, err
	}

	f := fetcher.New(fetcher.FetcherConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		Timeout:           time.Duration(cfg.HTTPClient.Timeout) * time.Second,
		UserAgent:         cfg.HTTPClient.UserAgent,
		MaxRetries:        cfg.HTTPClient.MaxRetries,
		InitialBackoff:    time.Duration(cfg.HTTPClient.RetryDelay) * time.Second,
		MaxJitter:         time.Duration(cfg.HTTPClient.MaxJitter) * time.Millisecond,
	}, logger)

	a := &App{
		config:    cfg,
		fetcher:   f,
		parser:    parser.New(),
		stopWords: wordbank.New(locale),
		locale:    locale,
		log:       logger.With().Str("component", "app").Logger(),
		progress:  os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	if path := cfg.WordProcessing.StopWordsFile; path != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.loadStopWords(ctx, path); err != nil {
			return nil, fmt.Errorf("failed to load stop words: %w", err)
		}
		a.log.Info().Str("source", path).Int("count", a.stopWords.Len()).Msg("stop words loaded")
	}

	return a, nil
}

// Run executes the main application logic
func (a *App) Run(ctx context.Context) (*models.Result, error) {
	startTime := time.Now()
	sources := a.config.AllSources

	sentenceChan := make(chan string, 1000)
	errChan := make(chan error, len(sources))

	var fetchWg sync.WaitGroup
	var processWg sync.WaitGroup

	counter := words.NewCounter(words.WithLocale(a.locale))

	var processedSources int32

	bar := progressbar.NewOptions(len(sources),
		progressbar.OptionSetWriter(a.progress),
		progressbar.OptionSetDescription("Processing sources..."),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// The counter is only touched by this goroutine
	processWg.Add(1)
	go func() {
		defer processWg.Done()
		for sentence := range sentenceChan {
			counter.AddSentence(a.stopWords.Strip(sentence))
		}
	}()

	semaphore := make(chan struct{}, a.config.Concurrency)
	for _, src := range sources {
		fetchWg.Add(1)
		go func(src string) {
			defer fetchWg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := a.processSource(ctx, src, sentenceChan); err != nil {
				a.log.Error().Err(err).Str("source", src).Msg("failed to process source")
				errChan <- fmt.Errorf("failed to process %s: %w", src, err)
			} else {
				a.log.Debug().Str("source", src).Msg("source processed")
			}

			atomic.AddInt32(&processedSources, 1)
			bar.Add(1)
		}(src)
	}

	go func() {
		fetchWg.Wait()
		bar.Finish()
		close(sentenceChan)
		close(errChan)
	}()

	processWg.Wait()

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}

	result := a.buildResult(counter)
	if a.config.Output.IncludeStats {
		result.Stats = &models.Stats{
			DistinctWords:    counter.Len(),
			TotalWords:       counter.Total(),
			SourcesProcessed: int(atomic.LoadInt32(&processedSources)) - len(errs),
			SourcesFailed:    len(errs),
			TimeElapsed:      int(time.Since(startTime).Milliseconds()),
		}
	}

	a.log.Info().
		Int("sources", len(sources)).
		Int("failed", len(errs)).
		Int("distinct_words", counter.Len()).
		Dur("elapsed", time.Since(startTime)).
		Msg("run completed")

	if len(errs) > 0 {
		return result, fmt.Errorf("encountered %d errors during processing", len(errs))
	}

	return result, nil
}

// processSource loads, parses and forwards the sentences of a single source
func (a *App) processSource(ctx context.Context, src string, sentenceChan chan<- string) error {
	content, err := a.load(ctx, src)
	if err != nil {
		return err
	}

	sentences, err := a.parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse source: %w", err)
	}

	for _, sentence := range sentences {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sentenceChan <- sentence:
		}
	}

	return nil
}

func (a *App) parse(content []byte) ([]string, error) {
	if a.config.Input.Format != config.FormatHTML {
		return a.parser.ParseSentences(content), nil
	}
	if a.config.Input.Selector != "" {
		return a.parser.ParseHTMLSelection(content, a.config.Input.Selector)
	}
	return a.parser.ParseHTML(content)
}

// load fetches http(s) sources and reads everything else from disk
func (a *App) load(ctx context.Context, src string) ([]byte, error) {
	if isURL(src) {
		content, err := a.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch source: %w", err)
		}
		return content, nil
	}
	content, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return content, nil
}

func (a *App) loadStopWords(ctx context.Context, src string) error {
	content, err := a.load(ctx, src)
	if err != nil {
		return err
	}
	for _, w := range a.parser.ParseWordList(content) {
		a.stopWords.Add(w)
	}
	return nil
}

func (a *App) buildResult(counter *words.Counter) *models.Result {
	result := &models.Result{
		Words: toWordCounts(counter.WordsMap().Entries()),
	}
	if n := a.config.Output.TopWordsCount; n > 0 {
		result.TopWords = toWordCounts(counter.Top(n))
	}
	for _, q := range a.config.Queries {
		result.Queries = append(result.Queries, models.QueryResult{
			Word:          q.Word,
			CaseSensitive: q.CaseSensitive,
			Count:         counter.WordCount(q.Word, q.CaseSensitive),
		})
	}
	return result
}

// Helper functions

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func toWordCounts(entries []words.Entry) []models.WordCount {
	out := make([]models.WordCount, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.WordCount{Word: e.Word, Count: e.Count})
	}
	return out
}
