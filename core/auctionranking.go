package core

import "fmt"

// ResolveWinner returns the bid with the highest normalized price.
// A candidate only displaces the running highest bid when strictly greater,
// so on exact ties the earliest submitted bid wins.
// Panics if bids is empty (programmer error); Auction.End guards against it.
func ResolveWinner(bids []Bid, snapshot *ConversionSnapshot) Bid {
	if len(bids) == 0 {
		panic(fmt.Sprintf("ResolveWinner: bids must not be empty, got %d", len(bids)))
	}

	highest := bids[0]
	highestPrice := NormalizePrice(highest, snapshot)

	for _, bid := range bids[1:] {
		price := NormalizePrice(bid, snapshot)
		if price.GreaterThan(highestPrice) {
			highest = bid
			highestPrice = price
		}
	}

	return highest
}
