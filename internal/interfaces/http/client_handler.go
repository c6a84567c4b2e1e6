package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/ledger"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// ClientHandler maneja las peticiones HTTP de clientes.
type ClientHandler struct {
	store *ledger.Store
}

// NewClientHandler construye el handler.
func NewClientHandler(store *ledger.Store) *ClientHandler {
	return &ClientHandler{store: store}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.ClientInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	client, err := h.store.AddClient(c.Context(), in)
	if !applied(c, err) {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// List GET /api/clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.ListClients())
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, ok := h.store.FindClientByID(c.Params("id"))
	if !ok {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(client)
}

// Update PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.ClientInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	client, err := h.store.UpdateClient(c.Context(), c.Params("id"), in)
	if !applied(c, err) {
		return writeError(c, err)
	}
	return c.JSON(client)
}

// Delete DELETE /api/clients/:id (elimina también sus pedidos)
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := h.store.DeleteClient(c.Context(), id)
	if !applied(c, err) {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "removed_orders": removed})
}

// Orders GET /api/clients/:id/orders
func (h *ClientHandler) Orders(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := h.store.FindClientByID(id); !ok {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(h.store.OrdersByClient(id))
}
