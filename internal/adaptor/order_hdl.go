package adaptor

import (
	"net/http"
	"strconv"
	"strings"

	"ecom-store/internal/data/entity"
	"ecom-store/internal/dto/request"
	"ecom-store/internal/usecase"
	"ecom-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// GetOrders handles GET /api/orders (authenticated)
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    h.parseInt(query.Get("page"), 1),
		PerPage: h.parseInt(query.Get("per_page"), 10),
	}
	if page.PerPage > 100 {
		page.PerPage = 100
	}

	orders, err := h.service.GetUserOrders(r.Context(), userID, page)
	if err != nil {
		h.handleServiceError(w, err, "get orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", orders)
}

// GetOrderByID handles GET /api/orders/{id} (authenticated, owner or admin)
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.ResponseBadRequest(w, "Order ID is required", nil)
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	isAdmin := role == string(entity.RoleAdmin)

	order, err := h.service.GetOrderByID(r.Context(), userID, isAdmin, orderID)
	if err != nil {
		h.handleServiceError(w, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "Order retrieved successfully", order)
}

func (h *OrderHandler) parseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}
	return result
}

// handleServiceError handles different types of errors
func (h *OrderHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid order ID"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
