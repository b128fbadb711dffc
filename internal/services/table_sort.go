package services

import (
	"sort"

	"github.com/AgusMolinaCode/Ticker_Api/internal/models"
)

// Columns son las columnas de la tabla en orden de presentación
var Columns = []models.Column{
	{ID: models.ColumnSymbol, Header: "Symbol", Kind: models.CellCoin, Align: "left", Sortable: false},
	{ID: models.ColumnBid, Header: "Bid", Kind: models.CellMoney, Align: "right", Sortable: true},
	{ID: models.ColumnAsk, Header: "Ask", Kind: models.CellMoney, Align: "right", Sortable: true},
	{ID: models.ColumnLast, Header: "Last", Kind: models.CellMoney, Align: "right", Sortable: true},
	{ID: models.ColumnDailyHigh, Header: "Daily High", Kind: models.CellMoney, Align: "right", Sortable: true},
	{ID: models.ColumnDailyChangePercent, Header: "Change, %", Kind: models.CellPercent, Align: "right", Sortable: true},
	{ID: models.ColumnDailyLow, Header: "Daily Low", Kind: models.CellMoney, Align: "right", Sortable: true},
	{ID: models.ColumnDailyVolume, Header: "Volume", Kind: models.CellMoney, Align: "right", Sortable: true},
}

// FindColumn busca una columna por su identificador
func FindColumn(id string) (models.Column, bool) {
	for _, col := range Columns {
		if col.ID == id {
			return col, true
		}
	}
	return models.Column{}, false
}

// SortRows ordena una copia de rows por la columna indicada comparando
// Float(a) - Float(b), negado si dir es descendente. Devuelve el sentido para
// el próximo orden: el sentido es uno solo para todas las columnas y se
// invierte en cada orden. Con una columna desconocida, una columna que no se
// ordena (symbol) o sin filas no hace nada: devuelve rows y dir sin cambios y
// sorted en false.
func SortRows(rows []models.TickerRecord, columnID string, dir models.Direction) (result []models.TickerRecord, next models.Direction, sorted bool) {
	if col, ok := FindColumn(columnID); !ok || !col.Sortable || len(rows) == 0 {
		return rows, dir, false
	}

	result = make([]models.TickerRecord, len(rows))
	copy(result, rows)

	sort.Slice(result, func(i, j int) bool {
		a, _ := result[i].Field(columnID)
		b, _ := result[j].Field(columnID)
		res := a.Float() - b.Float()
		if dir == models.Descending {
			res = -res
		}
		// NaN no es menor ni mayor: el orden de esas filas queda indeterminado
		return res < 0
	})

	return result, dir.Toggle(), true
}
