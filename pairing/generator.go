package pairing

import (
	"context"

	"github.com/chessfed/chess-rating-system/models"
)

// Pairing is one board of one round. BlackID is nil for a bye.
type Pairing struct {
	Round   int  `json:"round"`
	Board   int  `json:"board"`
	WhiteID int  `json:"white_id"`
	BlackID *int `json:"black_id,omitempty"`
}

type GenerateParams struct {
	Tournament   *models.Tournament
	Participants []*models.Participant
}

type Generator interface {
	Generate(ctx context.Context, params GenerateParams) ([]Pairing, error)

	Name() string
}
