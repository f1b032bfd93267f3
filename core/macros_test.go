package core

import (
	"math"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestExpandLossURL(t *testing.T) {
	winner := Bid{ID: "winner", Price: 20}

	tests := []struct {
		name     string
		template string
		winner   Bid
		expected string
	}{
		{
			name:     "auction price",
			template: "https://ssp.example/win?price=${AUCTION_PRICE}",
			winner:   winner,
			expected: "https://ssp.example/win?price=20.00",
		},
		{
			name:     "minimum to win",
			template: "https://ssp.example/loss?min=${AUCTION_MIN_TO_WIN}",
			winner:   Bid{Price: 1.999},
			expected: "https://ssp.example/loss?min=2.01",
		},
		{
			name:     "loss reason",
			template: "https://ssp.example/loss?r=${AUCTION_LOSS}",
			winner:   winner,
			expected: "https://ssp.example/loss?r=102",
		},
		{
			name:     "repeated macros",
			template: "https://ssp.example/loss?a=${AUCTION_PRICE}&b=${AUCTION_PRICE}",
			winner:   Bid{Price: 3.5},
			expected: "https://ssp.example/loss?a=3.50&b=3.50",
		},
		{
			name:     "unknown macros are kept",
			template: "https://ssp.example/loss?id=${AUCTION_ID}&p=${AUCTION_PRICE}",
			winner:   winner,
			expected: "https://ssp.example/loss?id=${AUCTION_ID}&p=20.00",
		},
		{
			name:     "non-finite price expands as zero",
			template: "https://ssp.example/loss?p=${AUCTION_PRICE}",
			winner:   Bid{Price: math.Inf(1)},
			expected: "https://ssp.example/loss?p=0.00",
		},
		{
			name:     "no macros",
			template: "https://ssp.example/loss",
			winner:   winner,
			expected: "https://ssp.example/loss",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check.Equal(t, tt.expected, ExpandLossURL(tt.template, tt.winner))
		})
	}
}
