package trade

import (
	"github.com/shopspring/decimal"

	"tradenotify/pkg/errors"
)

// Side defines the direction of a completed trade leg
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Valid checks if trade side is valid
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// String returns string representation
func (s Side) String() string {
	return string(s)
}

// Record represents one completed trade leg reported by the execution engine.
// It is built from untrusted request input, validated, formatted once into a
// notification and discarded; nothing is persisted.
type Record struct {
	Side   Side   `json:"side"`
	Crypto string `json:"crypto"`

	// Amounts
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	FeePercentage decimal.Decimal `json:"binance_fee_percentage"`
	FeeAmount     decimal.Decimal `json:"binance_fee_amount"`
	NetTotal      decimal.Decimal `json:"net_total"`

	OrderID string `json:"binance_order_id"`

	// Sell accounting, required when Side is SELL
	ProfitLossPercentage *decimal.Decimal `json:"profit_loss_percentage"`
	ProfitLossUSDT       *decimal.Decimal `json:"profit_loss_usdt"`
	AvgBuyPrice          *decimal.Decimal `json:"avg_buy_price"`
	SellPrice            *decimal.Decimal `json:"sell_price"`
}

// Validate checks field-level rules and the SELL-completeness invariant.
// The first violation found is returned; no formatting happens before this passes.
func (r *Record) Validate() error {
	if !r.Side.Valid() {
		return errors.NewValidationError("side", "must be BUY or SELL")
	}
	if len(r.Crypto) == 0 {
		return errors.NewValidationError("crypto", "must not be empty")
	}

	positives := []struct {
		field string
		value decimal.Decimal
	}{
		{"price", r.Price},
		{"quantity", r.Quantity},
		{"total_cost", r.TotalCost},
		{"binance_fee_percentage", r.FeePercentage},
		{"binance_fee_amount", r.FeeAmount},
		{"net_total", r.NetTotal},
	}
	for _, p := range positives {
		if !p.value.IsPositive() {
			return errors.NewValidationError(p.field, "must be a positive number")
		}
	}

	if r.Side == SideSell {
		required := []struct {
			field string
			value *decimal.Decimal
		}{
			{"profit_loss_percentage", r.ProfitLossPercentage},
			{"profit_loss_usdt", r.ProfitLossUSDT},
			{"avg_buy_price", r.AvgBuyPrice},
			{"sell_price", r.SellPrice},
		}
		for _, p := range required {
			if p.value == nil {
				return errors.NewValidationError(p.field, "required for SELL transactions")
			}
		}
	}

	return nil
}
