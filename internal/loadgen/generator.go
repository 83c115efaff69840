package loadgen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
)

// Ranges for generated attributes.
const (
	minAdultAge       = 18
	ageSpan           = 48
	maxSwipes         = 40
	maxBinge          = 12
	maxFavorites      = 3
	swipeWindowDays   = 60
	likePercent       = 65
	coordinatePercent = 70
	regionPercent     = 20
	unknownAgePercent = 5
	radiusPercent     = 50
	coordJitter       = 0.5
	percentBase       = 100
)

type city struct {
	region   string
	lat, lon float64
}

//nolint:gochecknoglobals // fixed generator vocabularies
var (
	cities = []city{
		{"new york", 40.7128, -74.0060},
		{"los angeles", 34.0522, -118.2437},
		{"chicago", 41.8781, -87.6298},
		{"austin", 30.2672, -97.7431},
	}
	genders       = []string{"woman", "man", "non-binary"}
	orientations  = []string{"straight", "gay", "bisexual", "pansexual"}
	services      = []string{"netflix", "hulu", "max", "prime", "disney+"}
	moods         = []string{"", "happy", "cozy", "intense", "dark", "thoughtful", "curious", "romantic"}
	movieGenreIDs = []int{28, 12, 16, 35, 80, 99, 18, 10751, 14, 36, 27, 10402, 9648, 10749, 878, 53}
	tvGenreIDs    = []int{10759, 10762, 10764, 10765, 10766}
	quizKeys      = []string{
		model.CategoryViewingHabits, model.CategoryBingeTendency, model.CategoryGenreDiversity,
		model.CategorySocialViewing, model.CategoryCriticalAnalysis, model.CategoryEmotionalEngagement,
		model.CategoryRewatching, model.CategoryDiscovery, model.CategoryCollecting, model.CategoryEngagement,
	}
)

// Generate builds n synthetic users. The same seed and now always give the
// same population, ids included.
func Generate(n int, seed int64, now time.Time) (Population, error) {
	if n < 0 {
		return Population{}, fmt.Errorf("%w: population size %d", ErrInvalidConfig, n)
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible fixtures, not secrets
	users := make([]model.User, 0, n)
	for i := 0; i < n; i++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return Population{}, fmt.Errorf("generate id %d: %w", i, err)
		}
		users = append(users, generateUser(rng, id.String(), now))
	}
	return Population{Seed: seed, Users: users}, nil
}

func generateUser(rng *rand.Rand, id string, now time.Time) model.User {
	u := model.User{
		ID:                id,
		Gender:            pick(rng, genders),
		SexualOrientation: pick(rng, orientations),
		Location:          generateLocation(rng),
		QuizScores:        model.CategoryScores{},
		BingeCount:        rng.Intn(maxBinge + 1),
		Mood:              pick(rng, moods),
	}
	if rng.Intn(percentBase) >= unknownAgePercent {
		u.Age = minAdultAge + rng.Intn(ageSpan)
	}

	for _, k := range quizKeys {
		if rng.Intn(2) == 0 {
			u.QuizScores[k] = rng.Intn(percentBase + 1)
		}
	}
	for _, s := range services {
		if rng.Intn(2) == 0 {
			u.StreamingServices = append(u.StreamingServices, s)
		}
	}
	for i := rng.Intn(maxFavorites + 1); i > 0; i-- {
		u.FavoriteGenres = append(u.FavoriteGenres, pick(rng, movieGenreIDs))
	}

	swipes := rng.Intn(maxSwipes + 1)
	u.Swipes = make([]model.SwipeEvent, 0, swipes)
	for i := 0; i < swipes; i++ {
		u.Swipes = append(u.Swipes, generateSwipe(rng, i, now))
	}

	u.Preferences = generatePreferences(rng, u.Age)
	return u
}

func generateSwipe(rng *rand.Rand, i int, now time.Time) model.SwipeEvent {
	ev := model.SwipeEvent{
		Action:   model.ActionDislike,
		SwipedAt: now.Add(-time.Duration(rng.Int63n(int64(swipeWindowDays * 24 * time.Hour)))).UTC(),
	}
	if rng.Intn(percentBase) < likePercent {
		ev.Action = model.ActionLike
	}
	if rng.Intn(3) == 0 {
		ev.ContentID = fmt.Sprintf("tv-%d", i)
		ev.GenreIDs = []int{pick(rng, tvGenreIDs)}
	} else {
		ev.ContentID = fmt.Sprintf("movie-%d", i)
		ev.GenreIDs = []int{pick(rng, movieGenreIDs)}
		if rng.Intn(2) == 0 {
			ev.GenreIDs = append(ev.GenreIDs, pick(rng, movieGenreIDs))
		}
	}
	return ev
}

func generateLocation(rng *rand.Rand) *model.Location {
	c := cities[rng.Intn(len(cities))]
	roll := rng.Intn(percentBase)
	switch {
	case roll < coordinatePercent:
		lat := c.lat + (rng.Float64()*2-1)*coordJitter
		lon := c.lon + (rng.Float64()*2-1)*coordJitter
		return &model.Location{Latitude: &lat, Longitude: &lon, Region: c.region}
	case roll < coordinatePercent+regionPercent:
		return &model.Location{Region: c.region}
	default:
		return nil
	}
}

func generatePreferences(rng *rand.Rand, age int) model.Preferences {
	var p model.Preferences
	if age > 0 {
		p.MinAge = max(minAdultAge, age-5-rng.Intn(5))
		p.MaxAge = age + 5 + rng.Intn(10)
	}
	if rng.Intn(percentBase) < radiusPercent {
		p.LocationRadius = 25 * (1 + rng.Intn(20))
	}
	if rng.Intn(2) == 0 {
		p.GenderPreference = []string{pick(rng, genders)}
	}
	return p
}

func pick[T any](rng *rand.Rand, from []T) T {
	return from[rng.Intn(len(from))]
}
