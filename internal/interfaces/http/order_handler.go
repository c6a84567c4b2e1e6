package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/ledger"
	"github.com/jhoicas/Pedidos-api/internal/application/receipt"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// OrderHandler maneja las peticiones HTTP de pedidos.
type OrderHandler struct {
	store   *ledger.Store
	receipt *receipt.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(store *ledger.Store, receiptUC *receipt.UseCase) *OrderHandler {
	return &OrderHandler{store: store, receipt: receiptUC}
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	order, err := h.store.AddOrder(c.Context(), in)
	if !applied(c, err) {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// List GET /api/orders?client_id=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	if clientID := c.Query("client_id"); clientID != "" {
		return c.JSON(h.store.OrdersByClient(clientID))
	}
	return c.JSON(h.store.ListOrders())
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, ok := h.store.FindOrderByID(c.Params("id"))
	if !ok {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(order)
}

// Update PUT /api/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	order, err := h.store.UpdateOrder(c.Context(), c.Params("id"), in)
	if !applied(c, err) {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// Delete DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteOrder(c.Context(), c.Params("id")); !applied(c, err) {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt GET /api/orders/:id/receipt
//
// Devuelve el comprobante del pedido como application/pdf (attachment).
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receipt.OrderReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	return c.Send(pdfBytes)
}
