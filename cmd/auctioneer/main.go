package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cloudx-io/rtbauction/core"
	"github.com/cloudx-io/rtbauction/notify"
	"github.com/cloudx-io/rtbauction/rtbapi"
)

// Exit codes
const (
	exitOK           = 0
	exitAuctionVoid  = 1
	exitInvalidInput = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(arguments []string, stdout, stderr io.Writer) int {
	args, flags, err := ParseArgs(arguments)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		showUsage(stderr, flags.FlagUsages())
		return exitInvalidInput
	}
	if args.Help {
		showUsage(stdout, flags.FlagUsages())
		return exitOK
	}
	if err := args.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		showUsage(stderr, flags.FlagUsages())
		return exitInvalidInput
	}

	logger, err := newLogger(args.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalidInput
	}

	opts := []core.Option{
		core.WithLossProcessing(args.LossProcessing),
		core.WithLogger(logger),
	}

	if args.CurrencySnapshot != "" {
		snapshot, err := loadConversionSnapshot(args.CurrencySnapshot, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading currency snapshot: %v\n", err)
			return exitInvalidInput
		}
		opts = append(opts, core.WithConversionSnapshot(snapshot))
	}

	var dispatcher *notify.Dispatcher
	if args.LossProcessing {
		dispatcher = notify.New(args.Dispatch, notify.WithLogger(logger))
		opts = append(opts, core.WithLossNotifier(dispatcher))
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), args.DrainTimeout)
			defer cancel()
			if err := dispatcher.Close(ctx); err != nil {
				logger.WithError(err).Warn("Loss notifications still pending at exit")
			}
		}()
	}

	auction := core.NewAuction(args.ItemIDs, opts...)

	for _, path := range args.BidResponses {
		resp, err := loadBidResponse(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading bid response %s: %v\n", path, err)
			return exitInvalidInput
		}
		accepted, err := auction.PlaceBidResponse(resp)
		if err != nil {
			fmt.Fprintf(stderr, "Error placing bid response %s: %v\n", path, err)
			return exitInvalidInput
		}
		logger.WithFields(logrus.Fields{
			"file":     path,
			"accepted": accepted,
		}).Info("Bid response placed")
	}

	_, err = auction.End()
	exitCode := exitOK
	if err != nil {
		if !errors.Is(err, core.ErrNoBids) {
			fmt.Fprintf(stderr, "Auction error: %v\n", err)
			return exitInvalidInput
		}
		logger.WithField("auction_id", auction.ID()).Warn("Auction void: no bids for the requested items")
		exitCode = exitAuctionVoid
	}

	result := rtbapi.NewAuctionResult(auction)
	if args.Format == "json" {
		if err := outputJSON(stdout, result); err != nil {
			fmt.Fprintf(stderr, "Error marshaling JSON: %v\n", err)
			return exitInvalidInput
		}
	} else {
		outputText(stdout, result)
	}

	return exitCode
}

func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	return logger, nil
}

func loadBidResponse(path string) (*core.BidResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return rtbapi.DecodeBidResponse(data, rtbapi.FormatFromPath(path))
}

func loadConversionSnapshot(path string, logger logrus.FieldLogger) (*core.ConversionSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snapshot, err := rtbapi.DecodeConversionSnapshot(data)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"data_as_of":   snapshot.DataAsOf,
		"generated_at": snapshot.GeneratedAt,
		"currencies":   len(snapshot.Conversions),
	}
	if _, err := rtbapi.ParseSnapshotTime(snapshot.DataAsOf); err != nil {
		logger.WithFields(fields).WithError(err).Warn("Currency snapshot has an unreadable dataAsOf")
	} else {
		logger.WithFields(fields).Info("Using currency snapshot")
	}

	return snapshot, nil
}

func outputText(w io.Writer, result rtbapi.AuctionResult) {
	fmt.Fprintln(w, "Auction Result")
	fmt.Fprintln(w, "==============")
	fmt.Fprintf(w, "  Auction ID:  %s\n", result.AuctionID)
	fmt.Fprintf(w, "  Items:       %v\n", result.ItemIDs)
	fmt.Fprintf(w, "  Status:      %s\n", result.Status)
	fmt.Fprintln(w)

	if result.Winner == nil {
		fmt.Fprintln(w, "Winner: none (no bids)")
		return
	}

	fmt.Fprintln(w, "Winner:")
	fmt.Fprintf(w, "  %s  seat=%s  item=%s  %.2f %s\n",
		result.Winner.ID, result.Winner.Seat, result.Winner.ItemID, result.Winner.Price, result.Winner.Currency)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Losing Bids (%d):\n", len(result.LosingBids))
	for _, bid := range result.LosingBids {
		fmt.Fprintf(w, "  - %s  seat=%s  item=%s  %.2f %s\n", bid.ID, bid.Seat, bid.ItemID, bid.Price, bid.Currency)
	}
}

func outputJSON(w io.Writer, result rtbapi.AuctionResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func showUsage(w io.Writer, flagUsages string) {
	fmt.Fprintln(w, "Auctioneer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Runs a single auction over OpenRTB 2.6 bid responses and reports the winner.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  auctioneer --item <id> --bid-response <file> [--bid-response <file> ...] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flagUsages)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Every flag can also be set through AUCTIONEER_<FLAG> (dashes become underscores).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit Codes:")
	fmt.Fprintln(w, "  0 - Auction closed with a winner")
	fmt.Fprintln(w, "  1 - Auction void (no bids for the requested items)")
	fmt.Fprintln(w, "  2 - Invalid input or runtime error")
}
