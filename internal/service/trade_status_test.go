package service

import (
	"testing"

	"github.com/tradeboard/internal/constants"
)

func TestNormalizeTradeStatus(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"korean pending", constants.TradeStatusPendingKo, constants.TradeStatusPending},
		{"korean processing", constants.TradeStatusProcessingKo, constants.TradeStatusProcessing},
		{"korean completed", constants.TradeStatusCompletedKo, constants.TradeStatusCompleted},
		{"korean cancelled", constants.TradeStatusCancelledKo, constants.TradeStatusCancelled},
		{"canonical passthrough", "pending", "pending"},
		{"canonical uppercase", "Completed", "completed"},
		{"padded korean", "  거래완료  ", "completed"},
		{"unknown kept as is", "on hold", "on hold"},
		{"empty stays empty", "", ""},
		{"blank trims to empty", "   ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTradeStatus(tc.input); got != tc.want {
				t.Fatalf("normalize %q want %q got %q", tc.input, tc.want, got)
			}
		})
	}
}
