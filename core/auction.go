package core

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cloudx-io/rtbauction/notify"
)

// Status is the lifecycle state of an auction.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

//go:generate mockgen -source=auction.go -destination=mock_lossnotifier_test.go -package=core

// LossNotifier delivers loss notification beacons.
// Notify must not block: delivery is fire-and-forget and its outcome is never reported back.
type LossNotifier interface {
	Notify(url string)
}

type auctionOptions struct {
	id             string
	lossProcessing bool
	snapshot       *ConversionSnapshot
	notifier       LossNotifier
	logger         logrus.FieldLogger
}

// Option configures an Auction.
type Option func(*auctionOptions)

// WithLossProcessing enables or disables loss notifications. Enabled by default.
func WithLossProcessing(enabled bool) Option {
	return func(o *auctionOptions) { o.lossProcessing = enabled }
}

// WithConversionSnapshot makes the auction rank bids by converted price.
func WithConversionSnapshot(snapshot *ConversionSnapshot) Option {
	return func(o *auctionOptions) { o.snapshot = snapshot }
}

// WithLossNotifier sets the notifier used for losing bids.
// Defaults to the shared notify.Default dispatcher.
func WithLossNotifier(notifier LossNotifier) Option {
	return func(o *auctionOptions) { o.notifier = notifier }
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *auctionOptions) { o.logger = logger }
}

// WithID overrides the generated auction ID.
func WithID(id string) Option {
	return func(o *auctionOptions) { o.id = id }
}

// Auction resolves a single auction over one or more items.
//
// An Auction is not safe for concurrent use. Callers must serialize
// PlaceBidResponse and End on the same instance.
type Auction struct {
	id         string
	itemIDs    []string
	status     Status
	options    auctionOptions
	bids       []Bid
	losingBids []Bid
	winner     *Bid
	logger     logrus.FieldLogger
}

// NewAuction creates an open auction scoped to itemIDs.
func NewAuction(itemIDs []string, opts ...Option) *Auction {
	options := auctionOptions{
		lossProcessing: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.id == "" {
		options.id = uuid.NewString()
	}
	if options.logger == nil {
		options.logger = logrus.StandardLogger()
	}

	return &Auction{
		id:         options.id,
		itemIDs:    slices.Clone(itemIDs),
		status:     StatusOpen,
		options:    options,
		bids:       make([]Bid, 0),
		losingBids: make([]Bid, 0),
		logger:     options.logger.WithField("auction_id", options.id),
	}
}

// NewAuctionForItem creates an open auction scoped to a single item.
func NewAuctionForItem(itemID string, opts ...Option) *Auction {
	return NewAuction([]string{itemID}, opts...)
}

// ID returns the auction ID.
func (a *Auction) ID() string { return a.id }

// ItemIDs returns the item IDs the auction is scoped to.
func (a *Auction) ItemIDs() []string { return slices.Clone(a.itemIDs) }

// Status returns the current lifecycle state.
func (a *Auction) Status() Status { return a.status }

// Bids returns the accepted bids in submission order.
func (a *Auction) Bids() []Bid { return slices.Clone(a.bids) }

// LosingBids returns the bids that lost, in submission order.
// Empty until the auction has ended.
func (a *Auction) LosingBids() []Bid { return slices.Clone(a.losingBids) }

// Winner returns the winning bid once the auction has ended.
func (a *Auction) Winner() (Bid, bool) {
	if a.winner == nil {
		return Bid{}, false
	}
	return *a.winner, true
}

// PlaceBidResponse accepts the in-scope bids of resp and returns how many were accepted.
// Responses placed after End are rejected with ErrAlreadyEnded.
func (a *Auction) PlaceBidResponse(resp *BidResponse) (int, error) {
	if a.status != StatusOpen {
		return 0, fmt.Errorf("place bid response: %w", ErrAlreadyEnded)
	}

	bids := ExtractBids(resp, a.itemIDs)
	a.bids = append(a.bids, bids...)

	a.logger.WithFields(logrus.Fields{
		"accepted": len(bids),
		"total":    len(a.bids),
	}).Debug("Bid response placed")

	return len(bids), nil
}

// End closes the auction and returns the winning bid.
//
// Processing flow:
//  1. Reject auctions that already ended or have no bids
//  2. Resolve the winner (converted prices when a snapshot is configured)
//  3. Record every other bid as losing, by bid ID
//  4. Close the auction and record the winner
//  5. Fire loss notifications for losing bids carrying a loss URL
//
// Notifications are handed to the LossNotifier and never awaited.
func (a *Auction) End() (Bid, error) {
	if a.status != StatusOpen {
		return Bid{}, ErrAlreadyEnded
	}
	if len(a.bids) == 0 {
		return Bid{}, ErrNoBids
	}

	winner := ResolveWinner(a.bids, a.options.snapshot)

	a.losingBids = losingBids(a.bids, winner)
	a.status = StatusClosed
	a.winner = &winner

	a.handleLossBids(winner)

	a.logger.WithFields(logrus.Fields{
		"winner_id":   winner.ID,
		"seat":        winner.Seat(),
		"price":       winner.Price,
		"currency":    winner.Currency(),
		"losing_bids": len(a.losingBids),
	}).Info("Auction complete")

	return winner, nil
}

func losingBids(bids []Bid, winner Bid) []Bid {
	losers := make([]Bid, 0, len(bids))
	for _, bid := range bids {
		if bid.ID != winner.ID {
			losers = append(losers, bid)
		}
	}
	return losers
}

func (a *Auction) handleLossBids(winner Bid) {
	if !a.options.lossProcessing {
		return
	}
	notifier := a.options.notifier
	if notifier == nil {
		notifier = notify.Default()
	}

	for _, bid := range a.losingBids {
		if bid.LossURL == "" {
			continue
		}
		notifier.Notify(ExpandLossURL(bid.LossURL, winner))
	}
}
