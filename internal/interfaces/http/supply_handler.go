package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/suministros-api/internal/application/dto"
	"github.com/tu-usuario/suministros-api/internal/application/supply"
	"github.com/tu-usuario/suministros-api/internal/domain"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
)

// SupplyHandler maneja las peticiones HTTP de pedidos de suministro (protegido).
type SupplyHandler struct {
	uc *supply.UseCase
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(uc *supply.UseCase) *SupplyHandler {
	return &SupplyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido de suministro
// @Description  Crea el pedido en in_processing y reserva el stock del proveedor
//
//	línea por línea; sin stock suficiente el pedido completo se rechaza.
//
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.CreateSupplyRequest  true  "supplier_id, delivery_address, total_price, supply_products"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplies [post]
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	userData, ok := GetUserData(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]supply.LineInput, 0, len(in.SupplyProducts))
	for _, p := range in.SupplyProducts {
		lines = append(lines, supply.LineInput{ProductID: p.ProductID, Quantity: p.Quantity})
	}
	_, err := h.uc.Create(c.Context(), userData.OrganizerID, supply.CreateInput{
		SupplierID:      in.SupplierID,
		DeliveryAddress: in.DeliveryAddress,
		TotalPrice:      in.TotalPrice,
		Lines:           lines,
	})
	if err != nil {
		return supplyError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar pedidos del organizador
// @Description  El proveedor ve sus ventas, la compañía sus compras.
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        is_wait_confirm  query  bool  false  "Solo pedidos pendientes (true) o ya resueltos (false)"
// @Param        limit            query  int   false  "Máximo de filas (default 100)"
// @Success      200  {array}   dto.SupplyResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/supplies [get]
func (h *SupplyHandler) List(c *fiber.Ctx) error {
	userData, ok := GetUserData(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var isWaitConfirm *bool
	if raw := c.Query("is_wait_confirm"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "is_wait_confirm debe ser booleano"})
		}
		isWaitConfirm = &v
	}
	limit := c.QueryInt("limit")

	summaries, err := h.uc.ListByUser(c.Context(), userData, isWaitConfirm, limit)
	if err != nil {
		return supplyError(c, err)
	}
	out := make([]dto.SupplyResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.FromSupplySummary(s))
	}
	return c.JSON(out)
}

// Decide godoc
// @Summary      Decidir un pedido pendiente (proveedor)
// @Description  assemble confirma el armado y descuenta la bodega; cancel
//
//	libera la reserva. Solo válido mientras el pedido está in_processing.
//
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID del pedido"
// @Param        body  body  dto.SupplyDecisionRequest  true  "decision: assemble | cancel"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [patch]
func (h *SupplyHandler) Decide(c *fiber.Ctx) error {
	userData, ok := GetUserData(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	supplyID, err := c.ParamsInt("id")
	if err != nil || supplyID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.SupplyDecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AssembleOrCancel(c.Context(), userData.OrganizerID, int64(supplyID), entity.Decision(in.Decision)); err != nil {
		return supplyError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus godoc
// @Summary      Avanzar el estado de entrega de un pedido
// @Description  assembled -> in_delivery -> delivered -> adopted. Al adoptar se
//
//	acredita el stock de la compañía por la versión exacta comprada.
//
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del pedido"
// @Param        body  body  dto.SupplyStatusRequest  true  "status: in_delivery | delivered | adopted"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplies/{id}/status [patch]
func (h *SupplyHandler) UpdateStatus(c *fiber.Ctx) error {
	userData, ok := GetUserData(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	supplyID, err := c.ParamsInt("id")
	if err != nil || supplyID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.SupplyStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, err := h.uc.UpdateStatus(c.Context(), userData.OrganizerID, int64(supplyID), entity.SupplyStatus(in.Status))
	if err != nil {
		return supplyError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":              updated.ID,
		"status":          string(updated.Status),
		"is_wait_confirm": updated.IsWaitConfirm,
	})
}

// Delete godoc
// @Summary      Borrar un pedido (operativo)
// @Description  Limpieza manual: no aplica reglas de negocio ni libera reservas.
// @Tags         supplies
// @Security     Bearer
// @Param        id  path  int  true  "ID del pedido"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [delete]
func (h *SupplyHandler) Delete(c *fiber.Ctx) error {
	supplyID, err := c.ParamsInt("id")
	if err != nil || supplyID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), int64(supplyID)); err != nil {
		return supplyError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// supplyError mapea errores de dominio a códigos HTTP.
func supplyError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput, domain.ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrContractNotFound:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_CONTRACT", Message: "no existe contrato con el proveedor"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido o producto no encontrado"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case domain.ErrOverReserved:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OVER_RESERVED", Message: "sobreoferta de reservas: stock insuficiente"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el pedido no admite esta transición"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
