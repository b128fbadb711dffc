package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AgusMolinaCode/Ticker_Api/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const emptyCell = "-"

// Separador de miles y decimales en formato en-US
var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney formatea un valor como moneda: $1,234.56
func FormatMoney(v models.Value) string {
	f := v.Float()
	if !v.Defined() || math.IsNaN(f) || math.IsInf(f, 0) {
		return emptyCell
	}

	amount := decimal.NewFromFloat(f).Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	return sign + "$" + moneyPrinter.Sprintf("%.2f", amount.InexactFloat64())
}

// jsRound redondea como Math.round: al entero más cercano, las mitades hacia +Inf
func jsRound(x float64) float64 {
	floor := math.Floor(x)
	if x-floor >= 0.5 {
		return floor + 1
	}
	return floor
}

// FormatPercent convierte la fracción a porcentaje entero (redondeo de
// Math.round) y devuelve el texto y el color: verde si es positivo, rojo si es
// negativo, sin color si es cero.
func FormatPercent(v models.Value) (text string, color string) {
	value := jsRound(v.Float() * 100)
	if math.IsNaN(value) {
		return "NaN%", ""
	}

	switch {
	case value > 0:
		color = models.ColorGreen
	case value < 0:
		color = models.ColorRed
	default:
		value = 0 // evita "-0%"
	}

	return strconv.FormatFloat(value, 'f', -1, 64) + "%", color
}

// FormatCoin decora el símbolo del par: moneda base, cotización e ícono
func FormatCoin(symbol models.Value) models.Cell {
	cell := models.Cell{Column: models.ColumnSymbol, Align: "left"}

	raw := symbol.String()
	if !symbol.Defined() || raw == "" {
		cell.Text = emptyCell
		return cell
	}

	base, quote, ok := splitPair(raw)
	if !ok {
		cell.Text = raw
		return cell
	}

	cell.Base = base
	cell.Quote = quote
	cell.Text = base + "/" + quote
	cell.Icon = coinIconURL(base)
	return cell
}

// splitPair separa tBTCUSD en BTC y USD; los pares largos vienen como tTESTBTC:TESTUSD
func splitPair(symbol string) (base, quote string, ok bool) {
	pair, found := strings.CutPrefix(symbol, symbolPrefix)
	if !found {
		return "", "", false
	}

	if base, quote, found := strings.Cut(pair, ":"); found {
		return base, quote, base != "" && quote != ""
	}

	if len(pair) < 4 {
		return "", "", false
	}
	return pair[:len(pair)-3], pair[len(pair)-3:], true
}

func coinIconURL(base string) string {
	return fmt.Sprintf("https://www.cryptocompare.com/media/37746251/%s.png", strings.ToLower(base))
}

// FormatRow arma las celdas de un registro en el orden de Columns
func FormatRow(record models.TickerRecord) []models.Cell {
	cells := make([]models.Cell, 0, len(Columns))

	for _, col := range Columns {
		value, _ := record.Field(col.ID)

		switch col.Kind {
		case models.CellCoin:
			cells = append(cells, FormatCoin(value))
		case models.CellPercent:
			text, color := FormatPercent(value)
			cells = append(cells, models.Cell{Column: col.ID, Text: text, Color: color, Align: col.Align})
		default:
			cells = append(cells, models.Cell{Column: col.ID, Text: FormatMoney(value), Align: col.Align})
		}
	}

	return cells
}
