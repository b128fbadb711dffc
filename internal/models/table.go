package models

import "time"

// Direction es el sentido de orden global de la tabla
type Direction int

const (
	Descending Direction = iota // sentido inicial
	Ascending
)

// Toggle devuelve el sentido opuesto
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func (d Direction) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Phase es la fase de carga de la tabla
type Phase string

const (
	PhaseEmpty   Phase = "empty"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// CellKind define cómo se formatea una columna
type CellKind string

const (
	CellCoin    CellKind = "coin"
	CellMoney   CellKind = "money"
	CellPercent CellKind = "percent"
)

// Colores usados por la celda de porcentaje
const (
	ColorGreen = "green"
	ColorRed   = "red"
)

// Column describe una columna de la tabla
type Column struct {
	ID     string   `json:"id"`
	Header string   `json:"header"`
	Kind   CellKind `json:"kind"`
	Align  string   `json:"align"`
	// Sortable en false: el encabezado no ordena ni invierte el sentido
	Sortable bool `json:"sortable"`
}

// Cell es el contenido ya formateado de una celda
type Cell struct {
	Column string `json:"column"`
	Text   string `json:"text"`
	Color  string `json:"color,omitempty"`
	Align  string `json:"align"`
	Icon   string `json:"icon,omitempty"`  // Solo celdas de moneda
	Base   string `json:"base,omitempty"`  // Solo celdas de moneda
	Quote  string `json:"quote,omitempty"` // Solo celdas de moneda
}

// TableView es una foto del estado de la tabla
type TableView struct {
	Phase          Phase          `json:"phase"`
	Direction      Direction      `json:"direction"`
	Sorted         bool           `json:"sorted"`
	SortedBy       string         `json:"sorted_by,omitempty"`
	Columns        []Column       `json:"columns"`
	Rows           []TickerRecord `json:"rows"`
	Cells          [][]Cell       `json:"cells"`
	ExplainerShown bool           `json:"explainer_shown"`
	Error          string         `json:"error,omitempty"`
	Sequence       uint64         `json:"sequence"`
	LoadedAt       *time.Time     `json:"loaded_at,omitempty"`
}
