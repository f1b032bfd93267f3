package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestExtractBids(t *testing.T) {
	resp := &BidResponse{
		ID:  "resp_1",
		Cur: "EUR",
		SeatBid: []SeatBid{
			{
				Seat: "seat_a",
				Bid: []RawBid{
					{ID: "bid1", ImpID: "impid-1", Price: 1.5, LossURL: "https://a.example/loss"},
					{ID: "bid2", ImpID: "impid-3", Price: 9.0},
				},
			},
			{
				Seat: "seat_b",
				Bid: []RawBid{
					{ID: "bid3", ImpID: "impid-2", Price: 2.0},
				},
			},
		},
	}

	bids := ExtractBids(resp, []string{"impid-1", "impid-2"})

	check.Equal(t, []Bid{
		{
			ID:      "bid1",
			ItemID:  "impid-1",
			Price:   1.5,
			LossURL: "https://a.example/loss",
			Info:    BidInformation{Currency: "EUR", Seat: "seat_a", Version: OpenRTBVersion26},
		},
		{
			ID:     "bid3",
			ItemID: "impid-2",
			Price:  2.0,
			Info:   BidInformation{Currency: "EUR", Seat: "seat_b", Version: OpenRTBVersion26},
		},
	}, bids)
}

func TestExtractBids_DefaultCurrency(t *testing.T) {
	resp := &BidResponse{
		SeatBid: []SeatBid{
			{Seat: "seat_a", Bid: []RawBid{{ID: "bid1", ImpID: "impid-1", Price: 1}}},
		},
	}

	bids := ExtractBids(resp, []string{"impid-1"})

	check.Equal(t, 1, len(bids))
	check.Equal(t, DefaultCurrency, bids[0].Currency())
	check.Equal(t, "seat_a", bids[0].Seat())
}

func TestExtractBids_Empty(t *testing.T) {
	tests := []struct {
		name string
		resp *BidResponse
	}{
		{"nil response", nil},
		{"no seat groups", &BidResponse{Cur: "USD"}},
		{"seat group without bids", &BidResponse{SeatBid: []SeatBid{{Seat: "seat_a"}}}},
		{"only out of scope bids", &BidResponse{SeatBid: []SeatBid{
			{Seat: "seat_a", Bid: []RawBid{{ID: "bid1", ImpID: "impid-9", Price: 1}}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bids := ExtractBids(tt.resp, []string{"impid-1"})
			check.NotNil(t, bids)
			check.Equal(t, 0, len(bids))
		})
	}
}

func TestExtractBids_DoesNotModifyResponse(t *testing.T) {
	resp := &BidResponse{
		SeatBid: []SeatBid{
			{Seat: "seat_a", Bid: []RawBid{{ID: "bid1", ImpID: "impid-1", Price: 1}}},
		},
	}

	_ = ExtractBids(resp, []string{"impid-1"})

	check.Equal(t, "", resp.Cur)
	check.Equal(t, RawBid{ID: "bid1", ImpID: "impid-1", Price: 1}, resp.SeatBid[0].Bid[0])
}
