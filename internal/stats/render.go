package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// WriteReport renders the aggregate as a boxed key/value table. Intended
// for CLI output; the HTTP API returns the raw struct instead.
func WriteReport(w io.Writer, title string, s HouseStats) error {
	keys := []string{"Total Spins", "Total Breaks", "Total Earnings"}
	rows := map[string]string{
		"Total Spins":    printer.Sprintf("%d", s.TotalSpins),
		"Total Breaks":   printer.Sprintf("%d", s.TotalBreaks),
		"Total Earnings": printer.Sprintf("%.2f", s.TotalEarnings),
	}

	if s.BestBreak != nil {
		keys = append(keys, "Best Break")
		rows["Best Break"] = formatBreak(*s.BestBreak)
	}
	if s.WorstBreak != nil {
		keys = append(keys, "Worst Break")
		rows["Worst Break"] = formatBreak(*s.WorstBreak)
	}

	// Prize histogram, most frequent first.
	names := make([]string, 0, len(s.PrizeDistribution))
	for name := range s.PrizeDistribution {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.PrizeDistribution[names[i]] != s.PrizeDistribution[names[j]] {
			return s.PrizeDistribution[names[i]] > s.PrizeDistribution[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		key := "  " + name
		keys = append(keys, key)
		rows[key] = printer.Sprintf("%d", s.PrizeDistribution[name])
	}

	_, err := io.WriteString(w, formatTable(title, keys, rows))
	return err
}

func formatBreak(b BreakOutcome) string {
	return printer.Sprintf("%.2f over %d spins (%.2f/spin)", b.TotalProfit, b.SpinCount, b.ProfitPerSpin())
}

// formatTable lays out a two-column box, sized by display width so grouped
// numbers and non-ASCII prize names stay aligned.
func formatTable(title string, keys []string, rows map[string]string) string {
	keyW, valW := 0, 0
	for _, k := range keys {
		if w := runewidth.StringWidth(k); w > keyW {
			keyW = w
		}
		if w := runewidth.StringWidth(rows[k]); w > valW {
			valW = w
		}
	}
	if w := runewidth.StringWidth(title); w > keyW+valW+3 {
		valW = w - keyW - 3
	}

	var b strings.Builder
	inner := keyW + valW + 5
	divider := "+" + strings.Repeat("-", inner) + "+\n"

	b.WriteString(divider)
	pad := inner - runewidth.StringWidth(title)
	left := pad / 2
	fmt.Fprintf(&b, "|%s%s%s|\n", blanks(left), title, blanks(pad-left))
	b.WriteString(divider)
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s%s | %s%s |\n",
			k, blanks(keyW-runewidth.StringWidth(k)),
			rows[k], blanks(valW-runewidth.StringWidth(rows[k])))
	}
	b.WriteString(divider)
	return b.String()
}

func blanks(n int) string {
	if n < 1 {
		return ""
	}
	return strings.Repeat(" ", n)
}
