package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/suministros-api/internal/application/dto"
	"github.com/tu-usuario/suministros-api/internal/application/usecase"
	"github.com/tu-usuario/suministros-api/internal/domain"
)

// StockHandler maneja las vistas de los dos ledgers de stock (protegido).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ListSupplier godoc
// @Summary      Bodega del proveedor
// @Description  Filas con quantity, reserved y disponible por producto.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.SupplierStockResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/supplier [get]
func (h *StockHandler) ListSupplier(c *fiber.Ctx) error {
	userData, ok := GetUserData(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	rows, err := h.uc.ListSupplier(c.Context(), userData.OrganizerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SupplierStockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromSupplierStockInfo(r))
	}
	return c.JSON(out)
}

// ListCompany godoc
// @Summary      Stock adoptado por la compañía
// @Description  Filas por versión exacta de producto recibida.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CompanyStockResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/company [get]
func (h *StockHandler) ListCompany(c *fiber.Ctx) error {
	userData, ok := GetUserData(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	rows, err := h.uc.ListCompany(c.Context(), userData.OrganizerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.CompanyStockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromCompanyStockInfo(r))
	}
	return c.JSON(out)
}

// UpdateQuantity godoc
// @Summary      Ajuste manual de bodega (proveedor)
// @Description  Rechaza cantidades por debajo de lo ya reservado.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        product_id  path  int  true  "ID del producto"
// @Param        body        body  dto.UpdateStockQuantityRequest  true  "quantity nueva"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/supplier/{product_id} [patch]
func (h *StockHandler) UpdateQuantity(c *fiber.Ctx) error {
	userData, ok := GetUserData(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID, err := c.ParamsInt("product_id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id inválido"})
	}
	var in dto.UpdateStockQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity no puede ser negativa"})
	}
	if err := h.uc.UpdateQuantity(c.Context(), userData.OrganizerID, int64(productID), in.Quantity); err != nil {
		if err == domain.ErrInvalidQuantity {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BELOW_RESERVED", Message: "quantity por debajo de lo reservado"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fila de stock no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
