package feedback

import (
	"time"

	"github.com/Vinuka-CS/seed-to-stream/internal/media"
)

// Record is one star rating, snapshotting the item attributes that weight
// aggregation needs.
type Record struct {
	ItemID    int64
	MediaType media.MediaType
	Rating    float64 // 1-5 stars
	RatedAt   time.Time
	GenreIDs  []int64
	CastNames []string
	CrewNames []string
}
