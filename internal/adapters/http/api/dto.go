package api

import (
	"fmt"
	"time"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/taxonomy"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/validation"
)

type validatable interface {
	validate() error
}

// swipeEventRequest is the wire shape of a swipe. Genres may arrive as ids,
// numeric strings, names or {id, name} objects.
type swipeEventRequest struct {
	ContentID string              `json:"contentId" validate:"required"`
	Genres    []taxonomy.GenreRef `json:"genreIds"`
	Action    string              `json:"action" validate:"required"`
	SwipedAt  time.Time           `json:"swipedAt"`
}

func (e swipeEventRequest) toModel() (model.SwipeEvent, error) {
	action, err := model.ParseAction(e.Action)
	if err != nil {
		return model.SwipeEvent{}, fmt.Errorf("content %s: %w", e.ContentID, err)
	}
	ids, err := taxonomy.ResolveAll(e.Genres)
	if err != nil {
		return model.SwipeEvent{}, fmt.Errorf("content %s: %w", e.ContentID, err)
	}
	return model.SwipeEvent{
		ContentID: e.ContentID,
		GenreIDs:  ids,
		Action:    action,
		SwipedAt:  e.SwipedAt,
	}, nil
}

func toEvents(in []swipeEventRequest) ([]model.SwipeEvent, error) {
	out := make([]model.SwipeEvent, 0, len(in))
	for _, e := range in {
		ev, err := e.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

type userRequest struct {
	ID                string               `json:"id" validate:"required"`
	Age               int                  `json:"age" validate:"gte=0,lte=130"`
	Gender            string               `json:"gender"`
	SexualOrientation string               `json:"sexualOrientation"`
	Location          *model.Location      `json:"location"`
	Preferences       model.Preferences    `json:"preferences"`
	QuizScores        model.CategoryScores `json:"quizScores"`
	Swipes            []swipeEventRequest  `json:"swipes" validate:"dive"`
	StreamingServices []string             `json:"streamingServices"`
	BingeCount        int                  `json:"bingeCount" validate:"gte=0"`
	Mood              string               `json:"mood"`
	FavoriteGenres    []taxonomy.GenreRef  `json:"favoriteGenres"`
}

func (u userRequest) toModel() (model.User, error) {
	swipes, err := toEvents(u.Swipes)
	if err != nil {
		return model.User{}, fmt.Errorf("user %s: %w", u.ID, err)
	}
	favorites, err := taxonomy.ResolveAll(u.FavoriteGenres)
	if err != nil {
		return model.User{}, fmt.Errorf("user %s: %w", u.ID, err)
	}
	return model.User{
		ID:                u.ID,
		Age:               u.Age,
		Gender:            u.Gender,
		SexualOrientation: u.SexualOrientation,
		Location:          u.Location,
		Preferences:       u.Preferences,
		QuizScores:        u.QuizScores,
		Swipes:            swipes,
		StreamingServices: u.StreamingServices,
		BingeCount:        u.BingeCount,
		Mood:              u.Mood,
		FavoriteGenres:    favorites,
	}, nil
}

// toCandidate validates and converts one population member on its own, so a
// bad record can be dropped without failing the selection.
func (u userRequest) toCandidate() (model.User, error) {
	if err := validation.Struct(&u); err != nil {
		return model.User{}, err
	}
	return u.toModel()
}

type analyzeRequest struct {
	Events []swipeEventRequest `json:"events" validate:"dive"`
}

func (r *analyzeRequest) validate() error { return validation.Struct(r) }

type classifyRequest struct {
	Scores model.CategoryScores `json:"scores"`
	Events []swipeEventRequest  `json:"events" validate:"dive"`
}

func (r *classifyRequest) validate() error { return validation.Struct(r) }

type compatibilityRequest struct {
	A userRequest `json:"a"`
	B userRequest `json:"b"`
}

func (r *compatibilityRequest) validate() error { return validation.Struct(r) }

type matchRequest struct {
	Requester  userRequest   `json:"requester"`
	Candidates []userRequest `json:"candidates"`
}

func (r *matchRequest) validate() error { return validation.Struct(r) }
