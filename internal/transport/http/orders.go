package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// OrderService — минимальный контракт сервисного слоя, нужный транспорту.
type OrderService interface {
	Create(ctx context.Context, in domain.CreateOrderInput) (domain.Order, error)
	Get(ctx context.Context, id int64) (domain.EnrichedOrder, error)
	List(ctx context.Context) ([]domain.EnrichedOrder, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error)
	Delete(ctx context.Context, id int64) (domain.Order, error)
}

// Handler собирает HTTP API заказов поверх сервисного слоя.
type Handler struct {
	svc    OrderService
	logger *log.Entry
}

// NewHandler конструирует обработчик API.
func NewHandler(svc OrderService, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	return &Handler{svc: svc, logger: logger}
}

// Router возвращает маршрутизатор публичного API.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestMetrics)
	r.Use(RequestLogger(h.logger))
	r.Use(Recoverer(h.logger))

	r.Get("/health", h.handleHealth)
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.createOrder)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}", h.updateOrderStatus)
		r.Delete("/{id}", h.deleteOrder)
	})

	return r
}

type createOrderRequest struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int32     `json:"quantity"`
	TotalPrice string    `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type enrichedOrderResponse struct {
	orderResponse
	User    domain.UserView    `json:"user"`
	Product domain.ProductView `json:"product"`
}

type deleteOrderResponse struct {
	Message string        `json:"message"`
	Order   orderResponse `json:"order"`
}

func toOrderResponse(order domain.Order) orderResponse {
	return orderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice.StringFixed(2),
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
	}
}

func toEnrichedResponse(enriched domain.EnrichedOrder) enrichedOrderResponse {
	return enrichedOrderResponse{
		orderResponse: toOrderResponse(enriched.Order),
		User:          enriched.User,
		Product:       enriched.Product,
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	enriched, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response := make([]enrichedOrderResponse, 0, len(enriched))
	for _, row := range enriched {
		response = append(response, toEnrichedResponse(row))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	enriched, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEnrichedResponse(enriched))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), domain.CreateOrderInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(created))
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(updated))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteOrderResponse{
		Message: "Order deleted successfully",
		Order:   toOrderResponse(deleted),
	})
}

// orderID разбирает {id} из пути. Нечисловой идентификатор неотличим от
// несуществующего заказа: отвечаем 404, к хранилищу и резолверам не ходим.
func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Order not found")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
