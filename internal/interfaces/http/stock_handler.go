package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockHandler maneja ajustes manuales y consultas del ledger de stock.
type StockHandler struct {
	adjuster *stock.AdjusterUseCase
	queries  *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(adjuster *stock.AdjusterUseCase, queries *stock.QueryUseCase) *StockHandler {
	return &StockHandler{adjuster: adjuster, queries: queries}
}

// AddStock godoc
// @Summary      Agregar stock manualmente
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, quantity > 0, notes"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/add [post]
func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.adjuster.AddStock(c.Context(), in.ProductID, in.Quantity, in.Notes); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock agregado"})
}

// RemoveStock godoc
// @Summary      Retirar stock manualmente
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, quantity > 0, notes"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock/remove [post]
func (h *StockHandler) RemoveStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.adjuster.RemoveStock(c.Context(), in.ProductID, in.Quantity, in.Notes); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock retirado"})
}

// Adjust godoc
// @Summary      Ajuste manual firmado (positivo agrega, negativo retira)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, quantity firmado, notes"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.adjuster.AdjustStock(c.Context(), in.ProductID, in.Quantity, in.Notes); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock ajustado"})
}

// ListTransactions godoc
// @Summary      Consultar el ledger de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "filtrar por producto"
// @Param        type        query  string  false  "PURCHASE | SALE | ADJUSTMENT | RETURN"
// @Param        from        query  string  false  "fecha inicial (RFC3339)"
// @Param        to          query  string  false  "fecha final (RFC3339)"
// @Param        limit       query  int     false  "máximo de filas (default 50)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}  dto.StockTransactionResponse
// @Router       /api/stock/transactions [get]
func (h *StockHandler) ListTransactions(c *fiber.Ctx) error {
	f := repository.TransactionFilter{
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		Limit:     c.QueryInt("limit"),
		Offset:    c.QueryInt("offset"),
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		f.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		f.To = &t
	}
	list, err := h.queries.ListTransactions(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponses(list))
}

// Availability godoc
// @Summary      Verificar disponibilidad de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true  "Product ID"
// @Param        quantity  query  int     true  "cantidad requerida"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/availability/{id} [get]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	qty := int64(c.QueryInt("quantity", 1))
	ok, err := h.queries.HasSufficientStock(c.Context(), c.Params("id"), qty)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"available": ok})
}

func toTransactionResponses(list []*entity.StockTransaction) []dto.StockTransactionResponse {
	out := make([]dto.StockTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.StockTransactionResponse{
			ID:              t.ID,
			ProductID:       t.ProductID,
			Type:            t.Type,
			Quantity:        t.Quantity,
			BalanceAfter:    t.BalanceAfter,
			Reference:       t.Reference,
			Notes:           t.Notes,
			TransactionDate: t.TransactionDate,
		})
	}
	return out
}
