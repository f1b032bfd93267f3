package core

import "slices"

// ExtractBids returns the bids of resp that target one of itemIDs.
// Bids for other items are dropped: a single response may cover several auctions.
func ExtractBids(resp *BidResponse, itemIDs []string) []Bid {
	if resp == nil || len(resp.SeatBid) == 0 {
		return []Bid{}
	}

	currency := resp.Cur
	if currency == "" {
		currency = DefaultCurrency
	}

	bids := make([]Bid, 0)
	for _, seatBid := range resp.SeatBid {
		for _, raw := range seatBid.Bid {
			if !slices.Contains(itemIDs, raw.ImpID) {
				continue
			}

			bids = append(bids, Bid{
				ID:      raw.ID,
				ItemID:  raw.ImpID,
				Price:   raw.Price,
				LossURL: raw.LossURL,
				Info: BidInformation{
					Currency: currency,
					Seat:     seatBid.Seat,
					Version:  OpenRTBVersion26,
				},
			})
		}
	}

	return bids
}
