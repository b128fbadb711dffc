package models

// Identificadores de columna, iguales a los campos JSON del registro
const (
	ColumnSymbol             = "symbol"
	ColumnBid                = "bid"
	ColumnAsk                = "ask"
	ColumnLast               = "last"
	ColumnDailyHigh          = "dailyHigh"
	ColumnDailyLow           = "dailyLow"
	ColumnDailyVolume        = "dailyVolume"
	ColumnDailyChangePercent = "dailyChangePercent"
)

// TickerRecord es la forma decodificada de una tupla del endpoint tickers
type TickerRecord struct {
	Symbol             Value `json:"symbol"`             // Par del exchange, ej. tBTCUSD
	Bid                Value `json:"bid"`                // Mejor precio de compra
	Ask                Value `json:"ask"`                // Mejor precio de venta
	Last               Value `json:"last"`               // Último precio operado
	DailyHigh          Value `json:"dailyHigh"`          // Máximo del día
	DailyLow           Value `json:"dailyLow"`           // Mínimo del día
	DailyVolume        Value `json:"dailyVolume"`        // Volumen del día
	DailyChangePercent Value `json:"dailyChangePercent"` // Cambio diario como fracción (0.05 = 5%)
}

// Field devuelve el valor de la columna indicada
func (r TickerRecord) Field(columnID string) (Value, bool) {
	switch columnID {
	case ColumnSymbol:
		return r.Symbol, true
	case ColumnBid:
		return r.Bid, true
	case ColumnAsk:
		return r.Ask, true
	case ColumnLast:
		return r.Last, true
	case ColumnDailyHigh:
		return r.DailyHigh, true
	case ColumnDailyLow:
		return r.DailyLow, true
	case ColumnDailyVolume:
		return r.DailyVolume, true
	case ColumnDailyChangePercent:
		return r.DailyChangePercent, true
	}
	return Value{}, false
}
