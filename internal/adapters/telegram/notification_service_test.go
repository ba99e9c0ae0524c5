package telegram

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tradenotify/internal/domain/trade"
	"tradenotify/pkg/errors"
	"tradenotify/pkg/logger"
	tgpkg "tradenotify/pkg/telegram"
	"tradenotify/pkg/templates"
)

const testChatID int64 = 424242

// MockBot is a mock for telegram.Bot
type MockBot struct {
	mock.Mock
}

func (m *MockBot) SendMessage(ctx context.Context, chatID int64, text string, opts tgpkg.MessageOptions) error {
	args := m.Called(ctx, chatID, text, opts)
	return args.Error(0)
}

func (m *MockBot) Close() {
	m.Called()
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func buyRecord() *trade.Record {
	return &trade.Record{
		Side:          trade.SideBuy,
		Crypto:        "BTC",
		Price:         dec("50000"),
		Quantity:      dec("0.1"),
		TotalCost:     dec("5000"),
		FeePercentage: dec("0.1"),
		FeeAmount:     dec("5"),
		NetTotal:      dec("5005"),
		OrderID:       "abc123",
	}
}

func sellRecord() *trade.Record {
	r := buyRecord()
	r.Side = trade.SideSell
	r.ProfitLossPercentage = decPtr("5")
	r.ProfitLossUSDT = decPtr("250")
	r.AvgBuyPrice = decPtr("47500")
	r.SellPrice = decPtr("50000")
	return r
}

func newService(bot *MockBot) *NotificationService {
	return NewNotificationService(bot, templates.Get(), testChatID, logger.Get())
}

func capturedText(bot *MockBot) string {
	return bot.Calls[0].Arguments.String(2)
}

func TestSendTradeExecution_BuyMessage(t *testing.T) {
	bot := new(MockBot)
	bot.On("SendMessage", mock.Anything, testChatID, mock.Anything, mock.Anything).Return(nil)

	svc := newService(bot)
	require.NoError(t, svc.SendTradeExecution(context.Background(), buyRecord()))

	bot.AssertNumberOfCalls(t, "SendMessage", 1)
	text := capturedText(bot)

	assert.Contains(t, text, "Trade Execution Alert")
	assert.Contains(t, text, "BUY")
	assert.Contains(t, text, "BTC")
	assert.Contains(t, text, "$50,000.00")
	assert.Contains(t, text, "0.1 BTC")
	assert.Contains(t, text, "$5,000.00")
	assert.Contains(t, text, "Fee (0.1%)")
	assert.Contains(t, text, "$5,005.00")
	assert.Contains(t, text, "abc123")
	assert.NotContains(t, text, "Profit/Loss")

	opts := bot.Calls[0].Arguments.Get(3).(tgpkg.MessageOptions)
	assert.Equal(t, tgpkg.ParseModeHTML, opts.ParseMode)
}

func TestSendTradeExecution_SellMessageAppendsAccountingBlock(t *testing.T) {
	bot := new(MockBot)
	bot.On("SendMessage", mock.Anything, testChatID, mock.Anything, mock.Anything).Return(nil)

	svc := newService(bot)
	require.NoError(t, svc.SendTradeExecution(context.Background(), sellRecord()))

	text := capturedText(bot)
	assert.Contains(t, text, "SELL")
	assert.Contains(t, text, "Profit/Loss %:</b> 5.00%")
	assert.Contains(t, text, "$250.00")
	assert.Contains(t, text, "$47,500.00")
	assert.Contains(t, text, "Sell Price")
}

func TestSendTradeExecution_OutputIsTrimmed(t *testing.T) {
	bot := new(MockBot)
	bot.On("SendMessage", mock.Anything, testChatID, mock.Anything, mock.Anything).Return(nil)

	svc := newService(bot)
	require.NoError(t, svc.SendTradeExecution(context.Background(), buyRecord()))

	text := capturedText(bot)
	assert.NotEmpty(t, text)
	assert.Equal(t, strings.TrimSpace(text), text)
}

func TestSendTradeExecution_FormattingIsIdempotent(t *testing.T) {
	bot := new(MockBot)
	bot.On("SendMessage", mock.Anything, testChatID, mock.Anything, mock.Anything).Return(nil)

	svc := newService(bot)
	rec := sellRecord()
	require.NoError(t, svc.SendTradeExecution(context.Background(), rec))
	require.NoError(t, svc.SendTradeExecution(context.Background(), rec))

	bot.AssertNumberOfCalls(t, "SendMessage", 2)
	assert.Equal(t, bot.Calls[0].Arguments.String(2), bot.Calls[1].Arguments.String(2))
}

func TestSendTradeExecution_EscapesFreeStringFields(t *testing.T) {
	bot := new(MockBot)
	bot.On("SendMessage", mock.Anything, testChatID, mock.Anything, mock.Anything).Return(nil)

	svc := newService(bot)
	rec := buyRecord()
	rec.Crypto = "<i>BTC</i>"
	rec.OrderID = "a<b>c"
	require.NoError(t, svc.SendTradeExecution(context.Background(), rec))

	text := capturedText(bot)
	assert.Contains(t, text, "&lt;i&gt;BTC&lt;/i&gt;")
	assert.Contains(t, text, "a&lt;b&gt;c")
	assert.NotContains(t, text, "<i>")
}

func TestSendTradeExecution_PropagatesTransportError(t *testing.T) {
	bot := new(MockBot)
	bot.On("SendMessage", mock.Anything, testChatID, mock.Anything, mock.Anything).
		Return(errors.ErrSendFailed)

	svc := newService(bot)
	err := svc.SendTradeExecution(context.Background(), buyRecord())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSendFailed))
}

func TestSendText_EscapesMarkup(t *testing.T) {
	bot := new(MockBot)
	bot.On("SendMessage", mock.Anything, testChatID, mock.Anything, mock.Anything).Return(nil)

	svc := newService(bot)
	require.NoError(t, svc.SendText(context.Background(), `<script>alert("x")</script>`))

	text := capturedText(bot)
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, ">")
	assert.Contains(t, text, "&lt;script&gt;")
}

func TestSendText_PropagatesTransportError(t *testing.T) {
	bot := new(MockBot)
	bot.On("SendMessage", mock.Anything, testChatID, mock.Anything, mock.Anything).
		Return(errors.ErrSendFailed)

	svc := newService(bot)
	err := svc.SendText(context.Background(), "hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSendFailed))
}
