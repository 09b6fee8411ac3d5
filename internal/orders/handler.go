package orders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the order-management REST API.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler builds the chi router for the orders API.
func NewHandler(store Store, logger *slog.Logger) http.Handler {
	h := &Handler{store: store, logger: logger}

	r := chi.NewRouter()
	r.Route("/pedidos", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.createOrder)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}", h.updateOrder)
		r.Delete("/{id}", h.deleteOrder)
		r.Get("/cliente/{nome}", h.ordersByClient)
	})
	r.Get("/produtos", h.listProducts)
	return r
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"message": message})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", "err", err)
		h.writeError(w, http.StatusBadGateway, "erro ao consultar pedidos")
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var o Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		h.writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if err := o.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.store.CreateOrder(r.Context(), o)
	if err != nil {
		h.logger.Error("failed to create order", "err", err)
		h.writeError(w, http.StatusBadGateway, "erro ao criar pedido")
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "id inválido")
		return 0, false
	}
	return id, true
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	o, err := h.store.GetOrder(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Pedido não encontrado")
		return
	}
	if err != nil {
		h.logger.Error("failed to get order", "id", id, "err", err)
		h.writeError(w, http.StatusBadGateway, "erro ao consultar pedido")
		return
	}
	h.writeJSON(w, http.StatusOK, o)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var o Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		h.writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	o.ID = id

	updated, err := h.store.UpdateOrder(r.Context(), o)
	if errors.Is(err, ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Pedido não encontrado")
		return
	}
	if err != nil {
		h.logger.Error("failed to update order", "id", id, "err", err)
		h.writeError(w, http.StatusBadGateway, "erro ao atualizar pedido")
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	err := h.store.DeleteOrder(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Pedido não encontrado")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete order", "id", id, "err", err)
		h.writeError(w, http.StatusBadGateway, "erro ao remover pedido")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ordersByClient(w http.ResponseWriter, r *http.Request) {
	nome := chi.URLParam(r, "nome")
	list, err := h.store.OrdersByClient(r.Context(), nome)
	if err != nil {
		h.logger.Error("failed to list orders by client", "client", nome, "err", err)
		h.writeError(w, http.StatusBadGateway, "erro ao consultar pedidos")
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "err", err)
		h.writeError(w, http.StatusBadGateway, "erro ao consultar produtos")
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}
