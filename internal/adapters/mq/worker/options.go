package worker

import (
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkerCount sets the number of scoring goroutines. Values below 1 keep
// the CPU-count default.
func WithWorkerCount(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.size = n
		}
	}
}

// WithLogger sets a custom logger for the pool and its workers.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
