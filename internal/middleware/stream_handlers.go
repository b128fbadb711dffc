package middleware

import (
	"net/http"
	"time"

	"github.com/AgusMolinaCode/Ticker_Api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	streamBufferSize = 16
	writeDeadline    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SetStreamOrigins define los orígenes permitidos para el websocket ("*" permite todos)
func SetStreamOrigins(origins []string) {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}

	upgrader.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed["*"] || allowed[origin] {
			return true
		}
		// Misma máquina que sirve la página
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

// StreamTable envía la tabla actual y luego cada cambio por websocket
func StreamTable(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("No se pudo abrir el websocket")
		return
	}
	defer conn.Close()

	subscriber := tableHub.Subscribe(streamBufferSize)
	defer tableHub.Unsubscribe(subscriber.ID)

	log := logger.WithField("subscriber", subscriber.ID)
	log.Info("Cliente conectado al stream de la tabla")

	initial, err := services.EncodeView(tableState.View())
	if err != nil {
		log.WithError(err).Error("Error al codificar la tabla")
		return
	}
	if err := writeMessage(conn, initial); err != nil {
		log.WithError(err).Warn("Error al enviar la tabla")
		return
	}

	// El cliente no envía nada; leer sirve para detectar el cierre
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			log.Info("Cliente desconectado del stream de la tabla")
			return
		case payload, ok := <-subscriber.Updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
					time.Now().Add(writeDeadline))
				return
			}
			if err := writeMessage(conn, payload); err != nil {
				log.WithError(err).Warn("Error al enviar la tabla")
				return
			}
		}
	}
}

func writeMessage(conn *websocket.Conn, payload []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
