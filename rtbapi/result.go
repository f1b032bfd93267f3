package rtbapi

import (
	"github.com/cloudx-io/rtbauction/core"
)

// ResultBid is a bid as reported in an auction result.
type ResultBid struct {
	ID       string  `json:"id"`
	ItemID   string  `json:"item_id"`
	Seat     string  `json:"seat,omitempty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// AuctionResult is the operator-facing summary of a closed auction.
type AuctionResult struct {
	AuctionID  string      `json:"auction_id"`
	ItemIDs    []string    `json:"item_ids"`
	Status     core.Status `json:"status"`
	Winner     *ResultBid  `json:"winner,omitempty"`
	LosingBids []ResultBid `json:"losing_bids"`
}

// NewAuctionResult summarises an auction in any state.
func NewAuctionResult(auction *core.Auction) AuctionResult {
	result := AuctionResult{
		AuctionID:  auction.ID(),
		ItemIDs:    auction.ItemIDs(),
		Status:     auction.Status(),
		LosingBids: make([]ResultBid, 0),
	}

	if winner, ok := auction.Winner(); ok {
		w := toResultBid(winner)
		result.Winner = &w
	}
	for _, bid := range auction.LosingBids() {
		result.LosingBids = append(result.LosingBids, toResultBid(bid))
	}

	return result
}

func toResultBid(bid core.Bid) ResultBid {
	return ResultBid{
		ID:       bid.ID,
		ItemID:   bid.ItemID,
		Seat:     bid.Seat(),
		Price:    bid.Price,
		Currency: bid.Currency(),
	}
}
