package services

import (
	"sync"

	"github.com/AgusMolinaCode/Ticker_Api/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HubSubscriber recibe cada nueva foto de la tabla ya codificada en JSON
type HubSubscriber struct {
	ID      string
	Updates chan []byte
	once    sync.Once
}

func newHubSubscriber(bufferSize int) *HubSubscriber {
	return &HubSubscriber{
		ID:      uuid.New().String(),
		Updates: make(chan []byte, bufferSize),
	}
}

// Close cierra el canal de actualizaciones (una sola vez)
func (s *HubSubscriber) Close() {
	s.once.Do(func() {
		close(s.Updates)
	})
}

// TableHub reparte las fotos de la tabla a los clientes conectados por websocket
type TableHub struct {
	subscribers map[string]*HubSubscriber
	mu          sync.RWMutex
	closed      bool
	log         *logrus.Logger
}

// NewTableHub crea un hub sin suscriptores
func NewTableHub(log *logrus.Logger) *TableHub {
	return &TableHub{
		subscribers: make(map[string]*HubSubscriber),
		log:         log,
	}
}

// Subscribe registra un nuevo suscriptor con un buffer de bufferSize mensajes
func (h *TableHub) Subscribe(bufferSize int) *HubSubscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscriber := newHubSubscriber(bufferSize)
	if h.closed {
		subscriber.Close()
		return subscriber
	}

	h.subscribers[subscriber.ID] = subscriber
	return subscriber
}

// Unsubscribe elimina y cierra el suscriptor
func (h *TableHub) Unsubscribe(subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subscriber, exists := h.subscribers[subscriberID]; exists {
		subscriber.Close()
		delete(h.subscribers, subscriberID)
	}
}

// Publish codifica la foto una vez y la envía sin bloquear; si el buffer de un
// suscriptor está lleno, ese mensaje se descarta para él.
func (h *TableHub) Publish(view models.TableView) {
	payload, err := EncodeView(view)
	if err != nil {
		h.log.WithError(err).Error("Error al codificar la tabla")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, subscriber := range h.subscribers {
		select {
		case subscriber.Updates <- payload:
		default:
			h.log.WithField("subscriber", subscriber.ID).Warn("Suscriptor lento, se descarta la actualización")
		}
	}
}

// SubscriberCount devuelve la cantidad de suscriptores activos
func (h *TableHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close cierra todos los suscriptores; los siguientes Subscribe nacen cerrados
func (h *TableHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, subscriber := range h.subscribers {
		subscriber.Close()
		delete(h.subscribers, id)
	}
}

// EncodeView codifica una foto de la tabla en JSON
func EncodeView(view models.TableView) ([]byte, error) {
	return json.Marshal(view)
}
