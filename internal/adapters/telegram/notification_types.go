package telegram

import (
	"github.com/shopspring/decimal"

	"tradenotify/internal/domain/trade"
)

// tradeMessageData is the view model handed to the trade_execution template.
// Optional sell fields are dereferenced here; validation has already
// guaranteed they are present for SELL records.
type tradeMessageData struct {
	Side          string
	Crypto        string
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	TotalCost     decimal.Decimal
	FeePercentage decimal.Decimal
	FeeAmount     decimal.Decimal
	NetTotal      decimal.Decimal
	OrderID       string

	IsSell               bool
	ProfitLossPercentage decimal.Decimal
	ProfitLossUSDT       decimal.Decimal
	AvgBuyPrice          decimal.Decimal
	SellPrice            decimal.Decimal
}

func newTradeMessageData(r *trade.Record) tradeMessageData {
	data := tradeMessageData{
		Side:          r.Side.String(),
		Crypto:        r.Crypto,
		Price:         r.Price,
		Quantity:      r.Quantity,
		TotalCost:     r.TotalCost,
		FeePercentage: r.FeePercentage,
		FeeAmount:     r.FeeAmount,
		NetTotal:      r.NetTotal,
		OrderID:       r.OrderID,
		IsSell:        r.Side == trade.SideSell,
	}

	if data.IsSell {
		data.ProfitLossPercentage = *r.ProfitLossPercentage
		data.ProfitLossUSDT = *r.ProfitLossUSDT
		data.AvgBuyPrice = *r.AvgBuyPrice
		data.SellPrice = *r.SellPrice
	}

	return data
}
