package routes

import (
	"embed"
	"html/template"

	"github.com/AgusMolinaCode/Ticker_Api/internal/middleware"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

func RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/health", middleware.Health)

	// Tabla en HTML (formularios que redirigen a /)
	router.GET("/", middleware.ShowTable)
	router.POST("/reload", middleware.PostReload)
	router.POST("/sort/:column", middleware.PostSort)
	router.POST("/explainer", middleware.PostExplainer)

	api := router.Group("/api")
	{
		api.GET("/tickers", middleware.GetTickers)
		api.POST("/tickers/reload", middleware.ReloadTickers)
		api.POST("/tickers/sort/:column", middleware.SortTickers)
		api.POST("/explainer/toggle", middleware.ToggleExplainer)
		api.GET("/stream", middleware.StreamTable)
	}
}
