package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Ticker_Api/internal/models"
	"github.com/buger/jsonparser"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	tickersEndpoint = "tickers"
	symbolPrefix    = "t"

	// DefaultQuote es la moneda de cotización cuando no se indica otra
	DefaultQuote = "USD"
)

// Posiciones leídas de cada tupla del endpoint tickers; 2, 4, 5 y 8 se descartan.
// El servidor envía 11 elementos, por lo que dailyLow (11) normalmente no existe.
const (
	idxSymbol             = 0
	idxBid                = 1
	idxAsk                = 3
	idxDailyChangePercent = 6
	idxLast               = 7
	idxDailyVolume        = 9
	idxDailyHigh          = 10
	idxDailyLow           = 11
)

var (
	ErrInvalidJSON = errors.New("la respuesta no es JSON válido")
	ErrNotArray    = errors.New("la respuesta no es un arreglo JSON")
)

// TickerClient consulta el endpoint tickers de la API de precios
type TickerClient struct {
	apiBase    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewTickerClient crea un cliente para la API en apiBase (ej. https://api-pub.bitfinex.com/v2/)
func NewTickerClient(apiBase string, timeout time.Duration, log *logrus.Logger) *TickerClient {
	if !strings.HasSuffix(apiBase, "/") {
		apiBase += "/"
	}
	return &TickerClient{
		apiBase: apiBase,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// BuildSymbolsParam arma el parámetro symbols: "t" + moneda + cotización, separados por coma
func BuildSymbolsParam(coins []string, quote string) string {
	if quote == "" {
		quote = DefaultQuote
	}

	symbols := make([]string, len(coins))
	for i, coin := range coins {
		symbols[i] = symbolPrefix + strings.ToUpper(coin) + strings.ToUpper(quote)
	}
	return strings.Join(symbols, ",")
}

// GetTickers obtiene en una sola petición los tickers de todas las monedas
func (c *TickerClient) GetTickers(ctx context.Context, coins []string, quote string) ([]models.TickerRecord, error) {
	query := url.Values{}
	query.Set("symbols", BuildSymbolsParam(coins, quote))

	body, err := c.loadData(ctx, tickersEndpoint, query)
	if err != nil {
		return nil, err
	}

	records, err := DecodeTickers(body)
	if err != nil {
		c.logFailure(ctx, tickersEndpoint, err)
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"endpoint": tickersEndpoint,
		"count":    len(records),
	}).Debug("Tickers decodificados")

	return records, nil
}

// loadData hace el GET y verifica que el cuerpo sea JSON. El código HTTP no se
// evalúa: solo fallan la red y el parseo.
func (c *TickerClient) loadData(ctx context.Context, api string, query url.Values) ([]byte, error) {
	endpoint := c.apiBase + api + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logFailure(ctx, api, err)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logFailure(ctx, api, err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logFailure(ctx, api, err)
		return nil, err
	}

	if !json.Valid(body) {
		err := fmt.Errorf("%w (status %s)", ErrInvalidJSON, resp.Status)
		c.logFailure(ctx, api, err)
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"endpoint": api,
		"status":   resp.StatusCode,
		"bytes":    len(body),
	}).Debug("Datos cargados")

	return body, nil
}

func (c *TickerClient) logFailure(ctx context.Context, api string, err error) {
	entry := c.log.WithField("endpoint", api).WithError(err)
	// Una recarga más nueva canceló esta petición
	if ctx.Err() != nil {
		entry.Debug("Petición cancelada")
		return
	}
	entry.Errorf("No se pudieron cargar los datos de %s", api)
}

// DecodeTickers convierte la respuesta (arreglo de tuplas) en registros, en el mismo orden
func DecodeTickers(body []byte) ([]models.TickerRecord, error) {
	if !json.Valid(body) {
		return nil, ErrInvalidJSON
	}

	value, dataType, _, err := jsonparser.Get(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dataType != jsonparser.Array {
		return nil, ErrNotArray
	}

	records := []models.TickerRecord{}
	_, err = jsonparser.ArrayEach(value, func(tuple []byte, tupleType jsonparser.ValueType, _ int, _ error) {
		if tupleType != jsonparser.Array {
			records = append(records, models.TickerRecord{})
			return
		}
		records = append(records, DecodeTuple(tuple))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return records, nil
}

// DecodeTuple desestructura una tupla por posición. No valida el largo: las
// posiciones que faltan quedan sin definir. Si tuple no es un arreglo, todos
// los campos quedan sin definir.
func DecodeTuple(tuple []byte) models.TickerRecord {
	var values []models.Value
	_, err := jsonparser.ArrayEach(tuple, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		values = append(values, models.Value{Type: dataType, Raw: value})
	})
	if err != nil {
		values = nil
	}

	at := func(i int) models.Value {
		if i < len(values) {
			return values[i]
		}
		return models.Value{}
	}

	return models.TickerRecord{
		Symbol:             at(idxSymbol),
		Bid:                at(idxBid),
		Ask:                at(idxAsk),
		DailyChangePercent: at(idxDailyChangePercent),
		Last:               at(idxLast),
		DailyVolume:        at(idxDailyVolume),
		DailyHigh:          at(idxDailyHigh),
		DailyLow:           at(idxDailyLow),
	}
}
