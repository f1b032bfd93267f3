package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestResolveWinner_Integration(t *testing.T) {
	bids := []Bid{
		{ID: "bid_a_001", Price: 2.50, Info: BidInformation{Seat: "seat_a"}},
		{ID: "bid_b_001", Price: 2.25, Info: BidInformation{Seat: "seat_b"}},
		{ID: "bid_c_001", Price: 2.75, Info: BidInformation{Seat: "seat_c"}},
	}

	winner := ResolveWinner(bids, nil)

	check.Equal(t, "bid_c_001", winner.ID)
	check.Equal(t, "seat_c", winner.Seat())
}

func TestResolveWinner_SingleBid(t *testing.T) {
	bids := []Bid{{ID: "bid1", Price: 2.00}}

	check.Equal(t, "bid1", ResolveWinner(bids, nil).ID)
}

func TestResolveWinner_Ties(t *testing.T) {
	tests := []struct {
		name     string
		bids     []Bid
		expected string
	}{
		{
			name: "two-way tie at the top",
			bids: []Bid{
				{ID: "bid1", Price: 2.50},
				{ID: "bid2", Price: 2.50},
				{ID: "bid3", Price: 1.00},
			},
			expected: "bid1",
		},
		{
			name: "tie after a lower bid",
			bids: []Bid{
				{ID: "bid1", Price: 1.00},
				{ID: "bid2", Price: 5.00},
				{ID: "bid3", Price: 5.00},
				{ID: "bid4", Price: 5.00},
			},
			expected: "bid2",
		},
		{
			name: "sub-cent difference still ranks",
			bids: []Bid{
				{ID: "bid1", Price: 1.001},
				{ID: "bid2", Price: 1.002},
			},
			expected: "bid2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check.Equal(t, tt.expected, ResolveWinner(tt.bids, nil).ID)
		})
	}
}

func TestResolveWinner_ConvertedPrices(t *testing.T) {
	snapshot := &ConversionSnapshot{
		Conversions: map[string]map[string]float64{
			"EUR": {"USD": 1.10},
			"JPY": {"USD": 0.0067},
		},
	}

	bids := []Bid{
		{ID: "bid_usd", Price: 1.05, Info: BidInformation{Currency: "USD"}},
		{ID: "bid_eur", Price: 1.00, Info: BidInformation{Currency: "EUR"}},
		{ID: "bid_jpy", Price: 150, Info: BidInformation{Currency: "JPY"}},
	}

	// 1.05 USD, 1.10 USD, 1.005 USD
	check.Equal(t, "bid_eur", ResolveWinner(bids, snapshot).ID)

	// Without a snapshot the raw JPY amount dominates
	check.Equal(t, "bid_jpy", ResolveWinner(bids, nil).ID)
}

func TestResolveWinner_PanicsOnEmpty(t *testing.T) {
	defer func() {
		check.NotNil(t, recover())
	}()

	ResolveWinner([]Bid{}, nil)
}
