package notifier

import (
	"fmt"
	"html"
	"strings"

	"TradeBuddy/internal/model"
)

// FormatAnalysis formats an analysis result into a Telegram HTML message.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>TradeBuddy</b> | %s | %s\n\n",
		html.EscapeString(a.Symbol), a.AnalyzedAt.Format("2006-01-02 15:04")))

	if a.Decision == model.DecisionBlocked {
		b.WriteString(fmt.Sprintf("Current Price: ₹%.2f\n\n", a.CurrentPrice))
		b.WriteString(LowPriceWarning(a.MinimumPrice))
		return b.String()
	}

	// Position
	b.WriteString(fmt.Sprintf("Current Price: ₹%.2f\n", a.CurrentPrice))
	b.WriteString(fmt.Sprintf("Reference Price: ₹%.2f (%s)\n", a.Position.ReferencePrice,
		a.ReferenceSource.Time.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Quantity: %.2f\n", a.Quantity))
	b.WriteString(fmt.Sprintf("Current P/L: ₹%.2f (%+.2f%%)\n\n", a.ProfitLoss, a.ProfitLossPct))

	// Projection
	b.WriteString(fmt.Sprintf("📈 <b>%s</b> (%s)\n", modelLabel(a.Model), a.TrendLabel))
	b.WriteString(fmt.Sprintf("Expected Price after %d days: ₹%.2f\n", a.HoldingDays, a.ExpectedPrice))
	b.WriteString(fmt.Sprintf("Expected Profit: ₹%.2f\n\n", a.ExpectedProfitLoss))

	switch a.Decision {
	case model.DecisionFavorable:
		b.WriteString("✅ Based on recent trend, this trade may be profitable.")
	default:
		b.WriteString("⚠️ Trend indicates risk. Trade carefully.")
	}
	return b.String()
}

// LowPriceWarning is shown when the current price is under the minimum.
func LowPriceWarning(minPrice float64) string {
	return fmt.Sprintf("⚠️ Stock price is below ₹%.0f. TradeBuddy recommends avoiding low-priced stocks.", minPrice)
}

// FailureMessage turns an analysis error into a user-facing message.
func FailureMessage(err error) string {
	switch model.KindOf(err) {
	case model.KindNone:
		return ""
	case model.KindInvalidSymbol:
		return "❌ Unknown or malformed symbol. Send /symbols for the supported companies."
	case model.KindDataUnavailable:
		return "❌ Market data not available right now."
	case model.KindInvalidInput:
		return "❌ Invalid request: investment must be positive and holding period 1 to 30 days."
	case model.KindInsufficientData:
		return "❌ Not enough price history for this trend model. Try the linear model or a longer window."
	default:
		return "❌ Data source temporarily blocked. Please try again later."
	}
}

// FormatSymbols lists the supported company names and their tickers.
func FormatSymbols(names []string, lookup func(string) (string, bool)) string {
	var b strings.Builder
	b.WriteString("🏢 <b>Supported companies</b>\n\n")
	for _, name := range names {
		ticker, _ := lookup(name)
		b.WriteString(fmt.Sprintf("• %s (%s)\n", html.EscapeString(name), html.EscapeString(ticker)))
	}
	b.WriteString("\nAny other ticker such as <code>TCS.NS</code> is passed through as-is.")
	return b.String()
}

func modelLabel(m model.TrendModel) string {
	switch m {
	case model.ModelMovingAverageCrossover:
		return "Moving Average Crossover"
	default:
		return "Linear Trend"
	}
}
