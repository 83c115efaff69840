// Package loadgen builds synthetic user populations and replays selection
// requests against a running server to check that rankings are stable.
package loadgen

import (
	"time"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/types"
)

// Config holds configuration for a replay run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Requesters int           // Number of population members used as requesters
	Repeat     int           // Times each selection is sent
	Workers    int           // Number of concurrent HTTP workers
	Limit      int           // Matches requested per selection; 0 uses the server default
	Timeout    time.Duration // HTTP request timeout
	Verbose    bool          // Log every response
}

// Population is the fixture written by Generate and read by Run.
type Population struct {
	Seed  int64        `yaml:"seed"`
	Users []model.User `yaml:"users"`
}

// MatchResponse is the part of the POST /v1/matches body the replay checks.
type MatchResponse struct {
	Matches []types.Match `json:"matches"`
}

// Stats holds replay statistics.
type Stats struct {
	RequestsSent       int
	RequestsSuccessful int
	RequestsFailed     int
	Mismatches         int
	InvalidRankings    int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
