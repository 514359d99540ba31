package rating

import "errors"

var (
	// ErrInvalidTrack — неизвестное имя рейтингового трека.
	ErrInvalidTrack = errors.New("invalid rating track")

	// ErrInvalidScore is returned when a game outcome does not map to
	// one of the score values 1, 0.5, 0.
	ErrInvalidScore = errors.New("invalid game score")

	// ErrUnknownOpponent is returned by the head-to-head delta source
	// when a result references an opponent missing from the roster.
	ErrUnknownOpponent = errors.New("opponent not found in roster")

	// ErrMissingRatingChange is returned by the precomputed delta
	// source when a result row carries no rating change.
	ErrMissingRatingChange = errors.New("result has no precomputed rating change")
)
