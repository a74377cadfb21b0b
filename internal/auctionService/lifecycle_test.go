package auction

import (
	"testing"
	"time"

	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/models"

	"github.com/stretchr/testify/require"
)

func TestStatusAt(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.Equal(t, StatusOpen, StatusAt(models.Auction{EndTime: now.Add(time.Nanosecond)}, now))
	require.Equal(t, StatusEnded, StatusAt(models.Auction{EndTime: now}, now))
	require.Equal(t, StatusEnded, StatusAt(models.Auction{EndTime: now.Add(-time.Hour)}, now))
}

func TestTimeLeft(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want string
	}{
		{name: "days_and_hours", end: now.Add(2*24*time.Hour + 5*time.Hour + 30*time.Minute), want: "2d 5h left"},
		{name: "exact_day", end: now.Add(24 * time.Hour), want: "1d 0h left"},
		{name: "hours_only", end: now.Add(5*time.Hour + 59*time.Minute), want: "5h left"},
		{name: "under_an_hour", end: now.Add(10 * time.Minute), want: "0h left"},
		{name: "ends_now", end: now, want: "Ended"},
		{name: "ended", end: now.Add(-time.Minute), want: "Ended"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, TimeLeft(tc.end, now))
		})
	}
}

func TestDetermineWinner(t *testing.T) {
	t.Parallel()
	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t2.Add(time.Minute)

	tests := []struct {
		name       string
		bids       []models.Bid
		wantUserID int64
	}{
		{
			name: "tie_goes_to_earliest",
			bids: []models.Bid{
				{ID: 1, UserID: 1, Amount: 100, BidTime: t1},
				{ID: 2, UserID: 2, Amount: 150, BidTime: t2},
				{ID: 3, UserID: 3, Amount: 150, BidTime: t3},
			},
			wantUserID: 2,
		},
		{
			name: "order_independent",
			bids: []models.Bid{
				{ID: 3, UserID: 3, Amount: 150, BidTime: t3},
				{ID: 1, UserID: 1, Amount: 100, BidTime: t1},
				{ID: 2, UserID: 2, Amount: 150, BidTime: t2},
			},
			wantUserID: 2,
		},
		{
			name: "same_time_lowest_id",
			bids: []models.Bid{
				{ID: 8, UserID: 4, Amount: 90, BidTime: t1},
				{ID: 7, UserID: 5, Amount: 90, BidTime: t1},
			},
			wantUserID: 5,
		},
		{
			name:       "single_bid",
			bids:       []models.Bid{{ID: 1, UserID: 9, Amount: 10, BidTime: t1}},
			wantUserID: 9,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			winner, err := DetermineWinner(tc.bids)
			require.NoError(t, err)
			require.Equal(t, tc.wantUserID, winner.UserID)
		})
	}

	_, err := DetermineWinner(nil)
	require.ErrorIs(t, err, biddingerrors.ErrNoBids)
}
