package auction

import (
	"fmt"
	"time"

	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/models"
)

// Status of an auction. It is derived from the end time whenever it is read, never stored.
type Status string

const (
	StatusOpen  Status = "open"
	StatusEnded Status = "ended"
)

// StatusAt returns the status of a at now
func StatusAt(a models.Auction, now time.Time) Status {
	if a.EndTime.After(now) {
		return StatusOpen
	}
	return StatusEnded
}

// TimeLeft renders the remaining time until end as "2d 5h left", "5h left" or "Ended"
func TimeLeft(end, now time.Time) string {
	if !end.After(now) {
		return "Ended"
	}
	left := end.Sub(now)
	days := int(left / (24 * time.Hour))
	hours := int((left % (24 * time.Hour)) / time.Hour)
	if days > 0 {
		return fmt.Sprintf("%dd %dh left", days, hours)
	}
	return fmt.Sprintf("%dh left", hours)
}

// DetermineWinner returns the highest bid. Ties go to the earliest bid, then the lowest id.
func DetermineWinner(bids []models.Bid) (models.Bid, error) {
	if len(bids) == 0 {
		return models.Bid{}, biddingerrors.ErrNoBids
	}

	winning := bids[0]
	for _, b := range bids[1:] {
		switch {
		case b.Amount > winning.Amount:
			winning = b
		case b.Amount < winning.Amount:
		case b.BidTime.Before(winning.BidTime):
			winning = b
		case b.BidTime.Equal(winning.BidTime) && b.ID < winning.ID:
			winning = b
		}
	}
	return winning, nil
}
