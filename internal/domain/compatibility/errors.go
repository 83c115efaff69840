package compatibility

import "github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"

// ErrScoreOutOfRange is returned when a quiz score is outside [0,100].
var ErrScoreOutOfRange = model.ErrScoreOutOfRange
