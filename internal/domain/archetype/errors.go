package archetype

import (
	"errors"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
)

// Sentinel errors for the classifier.
var (
	ErrInvalidWeightTable = errors.New("invalid archetype weight table")
	ErrScoreOutOfRange    = model.ErrScoreOutOfRange
)
