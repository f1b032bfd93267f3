package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cloudx-io/rtbauction/notify"
)

// Args is the resolved CLI configuration.
type Args struct {
	ItemIDs          []string
	BidResponses     []string
	CurrencySnapshot string
	LossProcessing   bool
	Dispatch         notify.Config
	DrainTimeout     time.Duration
	Format           string
	LogLevel         string
	Help             bool
}

// ParseArgs reads flags, falling back to AUCTIONEER_* environment variables.
func ParseArgs(arguments []string) (Args, *pflag.FlagSet, error) {
	flags := pflag.NewFlagSet("auctioneer", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}

	flags.StringSlice("item", nil, "Item (impression) ID the auction is scoped to; repeatable")
	flags.StringSlice("bid-response", nil, "Bid response file (.json or .cbor); repeatable, placed in order")
	flags.String("currency-snapshot", "", "Currency conversion snapshot JSON file")
	flags.Bool("loss-processing", true, "Send loss notifications to losing bids")
	flags.Int("dispatch-workers", notify.DefaultWorkers, "Concurrent loss notification requests")
	flags.Duration("dispatch-timeout", notify.DefaultTimeout, "Timeout for a single loss notification")
	flags.Duration("drain-timeout", 5*time.Second, "How long to wait for queued loss notifications before exit")
	flags.String("format", "text", "Output format: text or json")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.Bool("help", false, "Show usage information")

	if err := flags.Parse(arguments); err != nil {
		return Args{}, flags, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return Args{}, flags, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix("AUCTIONEER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	args := Args{
		ItemIDs:          stringSlice(v, "item"),
		BidResponses:     stringSlice(v, "bid-response"),
		CurrencySnapshot: v.GetString("currency-snapshot"),
		LossProcessing:   v.GetBool("loss-processing"),
		Dispatch: notify.Config{
			Workers: v.GetInt("dispatch-workers"),
			Timeout: v.GetDuration("dispatch-timeout"),
		},
		DrainTimeout: v.GetDuration("drain-timeout"),
		Format:       v.GetString("format"),
		LogLevel:     v.GetString("log-level"),
		Help:         v.GetBool("help"),
	}

	return args, flags, nil
}

// stringSlice reads a repeatable flag. Environment values arrive as one string
// and are split on commas, the same as the flag form.
func stringSlice(v *viper.Viper, key string) []string {
	values := make([]string, 0)
	for _, value := range v.GetStringSlice(key) {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}

// Validate reports the first configuration problem.
func (a Args) Validate() error {
	if len(a.ItemIDs) == 0 {
		return fmt.Errorf("at least one --item is required")
	}
	if len(a.BidResponses) == 0 {
		return fmt.Errorf("at least one --bid-response is required")
	}
	if a.Format != "text" && a.Format != "json" {
		return fmt.Errorf("invalid --format %q (must be text or json)", a.Format)
	}
	if a.Dispatch.Workers < 0 {
		return fmt.Errorf("invalid --dispatch-workers %d (must not be negative)", a.Dispatch.Workers)
	}
	return nil
}
