package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AgusMolinaCode/Ticker_Api/internal/config"
	"github.com/AgusMolinaCode/Ticker_Api/internal/middleware"
	routes "github.com/AgusMolinaCode/Ticker_Api/internal/server"
	"github.com/AgusMolinaCode/Ticker_Api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		logrus.Infof("No se pudo cargar el archivo .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Error en la configuración: %v", err)
	}
	log := config.NewLogger(cfg.LogLevel)

	// Crear el router de Gin
	router := gin.Default()

	// Configurar CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	// Inicializar la tabla
	hub := services.NewTableHub(log)
	defer hub.Close()

	client := services.NewTickerClient(cfg.APIBase, cfg.HTTPTimeout, log)
	table := services.NewTableState(client, cfg.Coins, cfg.Quote, hub, log)

	middleware.InitTable(table, hub, log)
	middleware.SetStreamOrigins(cfg.CORSOrigins)

	// Configurar las rutas
	routes.RegisterRoutes(router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Primera carga al iniciar, como al montar la tabla
	table.StartLoad(ctx)

	reloader := services.NewTableReloader(cfg.RefreshInterval, table, log)
	reloader.Start(ctx)
	defer reloader.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.WithField("port", cfg.Port).Info("Servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-gctx.Done()
		log.Info("Deteniendo el servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Cierra los websockets antes de esperar las conexiones
		hub.Close()
		return srv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		log.WithError(err).Fatal("Error al iniciar el servidor")
	}

	log.Info("Servidor detenido")
}
