package loadgen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
)

const percentageMultiplier = 100

type replayJob struct {
	requester int
	attempt   int
}

type replayResult struct {
	resp MatchResponse
	err  error
}

// Run replays selections for the first cfg.Requesters users against the
// whole population, cfg.Repeat times each, and checks every ranking for
// validity and every repeat for equality with the first answer.
func Run(ctx context.Context, cfg *Config, pop Population) (*Stats, error) {
	if err := validateConfig(cfg, pop); err != nil {
		return nil, err
	}
	log := logger.Get().Named("loadgen")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting selection replay",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("population", len(pop.Users)),
		logger.Int("requesters", cfg.Requesters),
		logger.Int("repeat", cfg.Repeat),
		logger.Int("workers", cfg.Workers),
		logger.Int("limit", cfg.Limit),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	results := replay(ctx, cfg, client, pop)
	stats.RequestsSent = cfg.Requesters * cfg.Repeat

	ids := make(map[string]struct{}, len(pop.Users))
	for _, u := range pop.Users {
		ids[u.ID] = struct{}{}
	}
	for r, attempts := range results {
		requesterID := pop.Users[r].ID
		var first *MatchResponse
		for a := range attempts {
			res := attempts[a]
			if res.err != nil {
				stats.RequestsFailed++
				log.Warn(ctx, "selection failed", logger.String("requester", requesterID), logger.Error(res.err))
				continue
			}
			stats.RequestsSuccessful++
			if err := VerifyRanking(res.resp.Matches, requesterID, ids); err != nil {
				stats.InvalidRankings++
				log.Warn(ctx, "invalid ranking", logger.String("requester", requesterID), logger.Error(err))
			}
			if first == nil {
				first = &res.resp
				continue
			}
			if !SameRanking(first.Matches, res.resp.Matches) {
				stats.Mismatches++
				log.Warn(ctx, "ranking changed between identical requests",
					logger.String("requester", requesterID), logger.Int("attempt", a))
			}
		}
		if cfg.Verbose && first != nil {
			log.Info(ctx, "ranking", logger.String("requester", requesterID), logger.Int("matches", len(first.Matches)))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	switch {
	case stats.RequestsFailed > 0:
		return stats, fmt.Errorf("%w: %d of %d requests", ErrRequestFailed, stats.RequestsFailed, stats.RequestsSent)
	case stats.InvalidRankings > 0:
		return stats, fmt.Errorf("%w: %d rankings", ErrInvalidRanking, stats.InvalidRankings)
	case stats.Mismatches > 0:
		return stats, fmt.Errorf("%w: %d mismatches", ErrNondeterministic, stats.Mismatches)
	}
	return stats, nil
}

func validateConfig(cfg *Config, pop Population) error {
	switch {
	case cfg == nil:
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	case cfg.BaseURL == "":
		return fmt.Errorf("%w: base url is required", ErrInvalidConfig)
	case cfg.Workers < 1:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case cfg.Repeat < 1:
		return fmt.Errorf("%w: repeat must be positive", ErrInvalidConfig)
	case cfg.Requesters < 1 || cfg.Requesters > len(pop.Users):
		return fmt.Errorf("%w: requesters must be between 1 and %d", ErrInvalidConfig, len(pop.Users))
	case cfg.Limit < 0:
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidConfig)
	}
	return nil
}

// replay fans the requests out over cfg.Workers goroutines. Each result is
// written to its own slot.
func replay(ctx context.Context, cfg *Config, client *Client, pop Population) [][]replayResult {
	results := make([][]replayResult, cfg.Requesters)
	for r := range results {
		results[r] = make([]replayResult, cfg.Repeat)
	}

	jobs := make(chan replayJob, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results[j.requester][j.attempt] = replayResult{err: err}
					continue
				}
				resp, err := client.Matches(ctx, pop.Users[j.requester], pop.Users, cfg.Limit)
				results[j.requester][j.attempt] = replayResult{resp: resp, err: err}
			}
		}()
	}

	for r := 0; r < cfg.Requesters; r++ {
		for a := 0; a < cfg.Repeat; a++ {
			jobs <- replayJob{requester: r, attempt: a}
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

// displayFinalStats logs the final replay statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, requestsPerSecond float64
	if stats.RequestsSent > 0 {
		successRate = float64(stats.RequestsSuccessful) / float64(stats.RequestsSent) * percentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSent) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("requestsSent", stats.RequestsSent),
		logger.Int("requestsSuccessful", stats.RequestsSuccessful),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("invalidRankings", stats.InvalidRankings),
		logger.Int("mismatches", stats.Mismatches),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond),
	)
}
