package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Ticker_Api/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrStaleLoad indica que la respuesta llegó después de una carga más reciente y se descartó
var ErrStaleLoad = errors.New("respuesta descartada por una carga más reciente")

// TickerSource define lo que la tabla necesita del cliente de precios
type TickerSource interface {
	GetTickers(ctx context.Context, coins []string, quote string) ([]models.TickerRecord, error)
}

// ViewPublisher recibe cada transición de la tabla
type ViewPublisher interface {
	Publish(view models.TableView)
}

// rowsView es la vista de filas: sin ordenar (las filas recibidas) u ordenada.
// Una carga nueva siempre reemplaza la vista por unsortedView.
type rowsView interface {
	visible() []models.TickerRecord
	sortedBy() (string, bool)
}

type unsortedView struct {
	base []models.TickerRecord
}

func (v unsortedView) visible() []models.TickerRecord { return v.base }
func (v unsortedView) sortedBy() (string, bool)         { return "", false }

type sortedView struct {
	rows   []models.TickerRecord
	column string
}

func (v sortedView) visible() []models.TickerRecord { return v.rows }
func (v sortedView) sortedBy() (string, bool)         { return v.column, true }

// TableState es el estado de la tabla: fase de carga, filas, sentido de orden
// global y visibilidad del panel explicativo. Las únicas transiciones son
// Load (montaje y recarga), Sort y ToggleExplainer.
type TableState struct {
	source    TickerSource
	coins     []string
	quote     string
	publisher ViewPublisher
	log       *logrus.Logger

	mu        sync.Mutex
	phase     models.Phase
	view      rowsView // nil mientras no hay filas visibles
	direction models.Direction
	explainer bool
	lastErr   error
	sequence  uint64
	cancel    context.CancelFunc
	loadedAt  time.Time
}

// NewTableState crea la tabla vacía; publisher puede ser nil
func NewTableState(source TickerSource, coins []string, quote string, publisher ViewPublisher, log *logrus.Logger) *TableState {
	return &TableState{
		source:    source,
		coins:     coins,
		quote:     quote,
		publisher: publisher,
		log:       log,
		phase:     models.PhaseEmpty,
		direction: models.Descending,
	}
}

// Load pide los tickers y reemplaza las filas, descartando cualquier orden
// previo. Cada llamada cancela la petición anterior que siga en curso; si aun
// así una respuesta vieja llega tarde, se descarta y se devuelve ErrStaleLoad.
func (s *TableState) Load(ctx context.Context) (models.TableView, error) {
	ctx, seq, cancel := s.beginLoad(ctx)
	defer cancel()
	return s.finishLoad(ctx, seq)
}

// StartLoad pasa la tabla a Loading de inmediato y termina la carga en segundo plano
func (s *TableState) StartLoad(ctx context.Context) {
	ctx, seq, cancel := s.beginLoad(ctx)
	go func() {
		defer cancel()
		_, _ = s.finishLoad(ctx, seq)
	}()
}

func (s *TableState) beginLoad(parent context.Context) (context.Context, uint64, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel

	s.phase = models.PhaseLoading
	s.view = nil
	s.lastErr = nil
	s.publishLocked()

	s.log.WithFields(logrus.Fields{
		"sequence": s.sequence,
		"coins":    s.coins,
		"quote":    s.quote,
	}).Info("Cargando tickers")

	return ctx, s.sequence, cancel
}

func (s *TableState) finishLoad(ctx context.Context, seq uint64) (models.TableView, error) {
	rows, err := s.source.GetTickers(ctx, s.coins, s.quote)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.sequence {
		s.log.WithFields(logrus.Fields{
			"sequence": seq,
			"latest":   s.sequence,
		}).Info("Respuesta descartada: hay una carga más reciente")
		return s.snapshotLocked(), ErrStaleLoad
	}
	s.cancel = nil

	if err != nil {
		s.phase = models.PhaseFailed
		s.lastErr = err
		s.log.WithError(err).WithField("sequence", seq).Error("Error al cargar los tickers")
		s.publishLocked()
		return s.snapshotLocked(), err
	}

	s.phase = models.PhaseLoaded
	s.view = unsortedView{base: rows}
	s.loadedAt = time.Now()
	s.log.WithFields(logrus.Fields{
		"sequence": seq,
		"rows":     len(rows),
	}).Info("Tickers cargados")
	s.publishLocked()

	return s.snapshotLocked(), nil
}

// Sort reordena las filas visibles por la columna. Devuelve false sin tocar
// nada si la columna no existe o no hay filas.
func (s *TableState) Sort(columnID string) (models.TableView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == nil {
		return s.snapshotLocked(), false
	}

	rows, next, sorted := SortRows(s.view.visible(), columnID, s.direction)
	if !sorted {
		s.log.WithField("column", columnID).Debug("Orden ignorado: columna desconocida o no ordenable")
		return s.snapshotLocked(), false
	}

	s.log.WithFields(logrus.Fields{
		"column":    columnID,
		"direction": s.direction.String(),
	}).Debug("Tabla ordenada")

	s.view = sortedView{rows: rows, column: columnID}
	s.direction = next
	s.publishLocked()

	return s.snapshotLocked(), true
}

// ToggleExplainer muestra u oculta el panel explicativo
func (s *TableState) ToggleExplainer() models.TableView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.explainer = !s.explainer
	s.publishLocked()

	return s.snapshotLocked()
}

// View devuelve la foto actual de la tabla
func (s *TableState) View() models.TableView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *TableState) publishLocked() {
	if s.publisher != nil {
		s.publisher.Publish(s.snapshotLocked())
	}
}

func (s *TableState) snapshotLocked() models.TableView {
	view := models.TableView{
		Phase:          s.phase,
		Direction:      s.direction,
		Columns:        Columns,
		Rows:           []models.TickerRecord{},
		Cells:          [][]models.Cell{},
		ExplainerShown: s.explainer,
		Sequence:       s.sequence,
	}

	if s.lastErr != nil {
		view.Error = s.lastErr.Error()
	}
	if !s.loadedAt.IsZero() {
		loadedAt := s.loadedAt
		view.LoadedAt = &loadedAt
	}

	if s.view != nil {
		view.Rows = s.view.visible()
		view.SortedBy, view.Sorted = s.view.sortedBy()
		for _, row := range view.Rows {
			view.Cells = append(view.Cells, FormatRow(row))
		}
	}

	return view
}
