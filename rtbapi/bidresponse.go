// Package rtbapi holds the wire formats exchanged with sellers and operators.
package rtbapi

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/cloudx-io/rtbauction/core"
)

// Format identifies a payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// FormatFromPath picks the encoding from a file extension. Anything that is
// not .cbor is treated as JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		return FormatCBOR
	}
	return FormatJSON
}

// DecodeBidResponse parses an OpenRTB 2.6 bid response.
func DecodeBidResponse(data []byte, format Format) (*core.BidResponse, error) {
	var resp core.BidResponse

	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode bid response json: %w", err)
		}
	case FormatCBOR:
		if err := cbor.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode bid response cbor: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported bid response format %q", format)
	}

	if err := validateBidResponse(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EncodeBidResponseCBOR encodes a bid response as CBOR.
func EncodeBidResponseCBOR(resp *core.BidResponse) ([]byte, error) {
	data, err := cbor.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode bid response cbor: %w", err)
	}
	return data, nil
}

func validateBidResponse(resp *core.BidResponse) error {
	for i, seatBid := range resp.SeatBid {
		for j, bid := range seatBid.Bid {
			if math.IsNaN(bid.Price) || math.IsInf(bid.Price, 0) {
				return fmt.Errorf("invalid non-finite price %v for bid %q (seatbid %d, bid %d)", bid.Price, bid.ID, i, j)
			}
			if bid.Price < 0 {
				return fmt.Errorf("invalid negative price %.4f for bid %q (seatbid %d, bid %d)", bid.Price, bid.ID, i, j)
			}
		}
	}
	return nil
}
