// Package holidays acquires the holiday list for a year: cached snapshot
// first, then the remote model, then the fixed fallback.
package holidays

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/joshuadavidthomas/bihucal/internal/gemini"
	"github.com/joshuadavidthomas/bihucal/internal/logging"
	"github.com/joshuadavidthomas/bihucal/internal/models"
)

// Cache is the snapshot store the provider reads before going remote.
// Implementations swallow their own faults.
type Cache interface {
	Read(ctx context.Context, year int) ([]models.Holiday, bool)
	Write(ctx context.Context, year int, holidays []models.Holiday)
}

// Generator produces constrained JSON text from a prompt.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *gemini.Schema) (string, error)
}

// Source says where an Outcome's holidays came from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Outcome is the result of a lookup. Holidays is never nil. Err is set only
// when Source is SourceFallback.
type Outcome struct {
	Year     int
	Holidays []models.Holiday
	Source   Source
	Err      error
}

type LookupOptions struct {
	// Refresh skips the cache read. A successful fetch is still written.
	Refresh bool
}

type Provider struct {
	cache     Cache
	generator Generator
	group     singleflight.Group
}

func NewProvider(cache Cache, generator Generator) *Provider {
	if cache == nil {
		cache = noCache{}
	}
	return &Provider{cache: cache, generator: generator}
}

// Fetch returns the holidays for year. It always succeeds.
func (p *Provider) Fetch(ctx context.Context, year int) []models.Holiday {
	return p.Lookup(ctx, year, LookupOptions{}).Holidays
}

// Lookup is Fetch with provenance. Concurrent misses for the same year share
// one remote call.
func (p *Provider) Lookup(ctx context.Context, year int, opts LookupOptions) Outcome {
	logger := logging.FromContext(ctx)

	if !opts.Refresh {
		if list, ok := p.cache.Read(ctx, year); ok {
			logger.Debug("holidays from cache", "year", year, "count", len(list))
			return Outcome{Year: year, Holidays: list, Source: SourceCache}
		}
	}

	// The shared call outlives any one caller; the generator's own timeout bounds it.
	shareCtx := context.WithoutCancel(ctx)
	v, err, shared := p.group.Do(strconv.Itoa(year), func() (any, error) {
		list, err := p.fetchRemote(shareCtx, year)
		if err != nil {
			return nil, err
		}
		p.cache.Write(shareCtx, year, list)
		return list, nil
	})
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			logger.Warn("holiday fetch failed, using fallback", "year", year, "stage", fe.Stage, "err", fe.Err)
		} else {
			logger.Warn("holiday fetch failed, using fallback", "year", year, "err", err)
		}
		return Outcome{Year: year, Holidays: Fallback(year), Source: SourceFallback, Err: err}
	}

	list := v.([]models.Holiday)
	if shared {
		logger.Debug("joined in-flight fetch", "year", year)
		list = append([]models.Holiday(nil), list...)
	}
	return Outcome{Year: year, Holidays: list, Source: SourceRemote}
}

// fetchRemote asks the generator for year and returns the normalized list.
// Every failure comes back as a *FetchError.
func (p *Provider) fetchRemote(ctx context.Context, year int) ([]models.Holiday, error) {
	logger := logging.FromContext(ctx)

	if p.generator == nil {
		return nil, &FetchError{Year: year, Stage: StageRequest, Err: gemini.ErrNoAPIKey}
	}

	logger.Debug("requesting holidays", "year", year)
	text, err := p.generator.GenerateJSON(ctx, Prompt(year), ResponseSchema())
	if err != nil {
		return nil, &FetchError{Year: year, Stage: StageRequest, Err: err}
	}
	raw, err := decode(text)
	if err != nil {
		return nil, &FetchError{Year: year, Stage: StageDecode, Err: err}
	}
	list, err := normalize(logger, raw)
	if err != nil {
		return nil, &FetchError{Year: year, Stage: StageNormalize, Err: err}
	}
	logger.Debug("fetched holidays", "year", year, "count", len(list))
	return list, nil
}

// Prefetch looks up every year concurrently, at most maxConcurrent at a time.
// onComplete, if set, is called as each lookup finishes.
func (p *Provider) Prefetch(ctx context.Context, years []int, opts LookupOptions, maxConcurrent int, onComplete func(Outcome)) map[int]Outcome {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	outcomes := make(map[int]Outcome, len(years))
	var mu sync.Mutex
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for _, y := range years {
		wg.Add(1)
		go func(year int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcome := p.Lookup(ctx, year, opts)

			mu.Lock()
			outcomes[year] = outcome
			mu.Unlock()

			if onComplete != nil {
				onComplete(outcome)
			}
		}(y)
	}

	wg.Wait()
	return outcomes
}

type noCache struct{}

func (noCache) Read(context.Context, int) ([]models.Holiday, bool) { return nil, false }
func (noCache) Write(context.Context, int, []models.Holiday)       {}
