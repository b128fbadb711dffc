package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/AgusMolinaCode/Ticker_Api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	tableState *services.TableState
	tableHub   *services.TableHub
	logger     *logrus.Logger
)

// InitTable establece las dependencias que usan los handlers de la tabla
func InitTable(state *services.TableState, hub *services.TableHub, log *logrus.Logger) {
	tableState = state
	tableHub = hub
	logger = log
}

// GetTickers devuelve el estado actual de la tabla
func GetTickers(c *gin.Context) {
	c.JSON(http.StatusOK, tableState.View())
}

// ReloadTickers vuelve a pedir los tickers y espera el resultado
func ReloadTickers(c *gin.Context) {
	// La carga no depende de que el cliente siga conectado
	view, err := tableState.Load(context.WithoutCancel(c.Request.Context()))
	if err != nil && !errors.Is(err, services.ErrStaleLoad) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Error al cargar los tickers",
			"view":  view,
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// SortTickers ordena la tabla por la columna indicada; una columna desconocida no cambia nada
func SortTickers(c *gin.Context) {
	view, _ := tableState.Sort(c.Param("column"))
	c.JSON(http.StatusOK, view)
}

// ToggleExplainer muestra u oculta el panel explicativo
func ToggleExplainer(c *gin.Context) {
	c.JSON(http.StatusOK, tableState.ToggleExplainer())
}

// Health responde si el servicio está vivo
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
