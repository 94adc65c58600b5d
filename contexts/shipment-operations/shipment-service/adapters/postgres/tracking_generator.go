package postgresadapter

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// TrackingGenerator produces "SHP-" plus ten uppercase hex characters.
// Uniqueness is enforced by the tracking_number index; the create use case
// retries on collision.
type TrackingGenerator struct{}

func (TrackingGenerator) NewTrackingNumber(_ context.Context) (string, error) {
	id := uuid.New()
	return "SHP-" + strings.ToUpper(hex.EncodeToString(id[:5])), nil
}
