package core

// DefaultCurrency is assumed when a bid response does not carry a currency code.
const DefaultCurrency = "USD"

// OpenRTBVersion26 tags bids extracted from OpenRTB 2.6 bid responses.
const OpenRTBVersion26 = "2.6"

// BidInformation holds the per-bid context captured at ingestion time.
type BidInformation struct {
	Currency string `json:"currency"`
	Seat     string `json:"seat,omitempty"`
	Version  string `json:"version"`
}

// Bid represents a single seat's offer for one item in an auction.
// Bids are values and are never modified once extracted.
type Bid struct {
	ID      string         `json:"id"`
	ItemID  string         `json:"item_id"`
	Price   float64        `json:"price"`
	LossURL string         `json:"lurl,omitempty"`
	Info    BidInformation `json:"info"`
}

// Currency returns the currency the bid was priced in.
func (b Bid) Currency() string {
	if b.Info.Currency == "" {
		return DefaultCurrency
	}
	return b.Info.Currency
}

// Seat returns the seat that submitted the bid.
func (b Bid) Seat() string {
	return b.Info.Seat
}

// RawBid is a bid entry as it arrives inside a seat group.
type RawBid struct {
	ID      string  `json:"id" cbor:"id"`
	ImpID   string  `json:"impid" cbor:"impid"`
	Price   float64 `json:"price" cbor:"price"`
	LossURL string  `json:"lurl,omitempty" cbor:"lurl,omitempty"`
}

// SeatBid groups the bids of one seat.
type SeatBid struct {
	Seat string   `json:"seat,omitempty" cbor:"seat,omitempty"`
	Bid  []RawBid `json:"bid" cbor:"bid"`
}

// BidResponse is the OpenRTB 2.6 shaped payload accepted by an auction.
type BidResponse struct {
	ID      string    `json:"id,omitempty" cbor:"id,omitempty"`
	Cur     string    `json:"cur,omitempty" cbor:"cur,omitempty"`
	SeatBid []SeatBid `json:"seatbid,omitempty" cbor:"seatbid,omitempty"`
}

// ConversionSnapshot is a point-in-time table of currency rates.
// Conversions maps a source currency to target currency rates.
type ConversionSnapshot struct {
	DataAsOf    string                        `json:"dataAsOf"`
	GeneratedAt string                        `json:"generatedAt"`
	Conversions map[string]map[string]float64 `json:"conversions"`
}

// Rate returns the multiplicative rate from one currency to another.
func (s *ConversionSnapshot) Rate(from, to string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	rates, ok := s.Conversions[from]
	if !ok {
		return 0, false
	}
	rate, ok := rates[to]
	return rate, ok
}
