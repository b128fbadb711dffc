package middleware

import (
	"context"
	"net/http"

	"github.com/AgusMolinaCode/Ticker_Api/internal/models"
	"github.com/gin-gonic/gin"
)

// ShowTable renderiza la tabla en HTML
func ShowTable(c *gin.Context) {
	view := tableState.View()

	arrow := "▼"
	if view.Direction == models.Ascending {
		arrow = "▲"
	}

	c.HTML(http.StatusOK, "table.html", gin.H{
		"view":    view,
		"arrow":   arrow,
		"loading": view.Phase == models.PhaseLoading || view.Phase == models.PhaseEmpty,
		"failed":  view.Phase == models.PhaseFailed,
	})
}

// PostReload inicia la recarga y vuelve a la tabla, que muestra el indicador de carga
func PostReload(c *gin.Context) {
	tableState.StartLoad(context.WithoutCancel(c.Request.Context()))
	c.Redirect(http.StatusSeeOther, "/")
}

// PostSort ordena por la columna y vuelve a la tabla
func PostSort(c *gin.Context) {
	tableState.Sort(c.Param("column"))
	c.Redirect(http.StatusSeeOther, "/")
}

// PostExplainer muestra u oculta el panel explicativo y vuelve a la tabla
func PostExplainer(c *gin.Context) {
	tableState.ToggleExplainer()
	c.Redirect(http.StatusSeeOther, "/")
}
