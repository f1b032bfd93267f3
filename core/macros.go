package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Loss notification URL macros.
const (
	MacroAuctionPrice    = "${AUCTION_PRICE}"
	MacroAuctionMinToWin = "${AUCTION_MIN_TO_WIN}"
	MacroAuctionLoss     = "${AUCTION_LOSS}"
)

// LossReasonLostToHigherBid is the OpenRTB loss reason code for "lost to higher bid".
const LossReasonLostToHigherBid = 102

var minimumIncrement = decimal.New(1, -2) // 0.01

// ExpandLossURL substitutes the auction macros in a loss notification URL.
// Macros it does not know are left untouched.
func ExpandLossURL(template string, winner Bid) string {
	price := decimalFromFloat(winner.Price)

	replacer := strings.NewReplacer(
		MacroAuctionPrice, price.StringFixed(2),
		MacroAuctionMinToWin, price.Add(minimumIncrement).StringFixed(2),
		MacroAuctionLoss, strconv.Itoa(LossReasonLostToHigherBid),
	)
	return replacer.Replace(template)
}
