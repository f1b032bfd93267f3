package rtbapi

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/cloudx-io/rtbauction/core"
)

// snapshotDateLayouts are the layouts accepted for dataAsOf and generatedAt.
var snapshotDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// DecodeConversionSnapshot parses a currency conversion snapshot of the form
// {"dataAsOf": "...", "generatedAt": "...", "conversions": {"JPY": {"USD": 0.0067}}}.
func DecodeConversionSnapshot(data []byte) (*core.ConversionSnapshot, error) {
	var snapshot core.ConversionSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode conversion snapshot: %w", err)
	}

	for from, rates := range snapshot.Conversions {
		for to, rate := range rates {
			if math.IsNaN(rate) || math.IsInf(rate, 0) {
				return nil, fmt.Errorf("invalid non-finite rate %v for %s->%s", rate, from, to)
			}
			if rate < 0 {
				return nil, fmt.Errorf("invalid negative rate %f for %s->%s", rate, from, to)
			}
		}
	}

	return &snapshot, nil
}

// ParseSnapshotTime parses a dataAsOf or generatedAt value.
func ParseSnapshotTime(value string) (time.Time, error) {
	for _, layout := range snapshotDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised snapshot time %q", value)
}
