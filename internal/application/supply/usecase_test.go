package supply_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/suministros-api/internal/application/supply"
	"github.com/tu-usuario/suministros-api/internal/domain"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// setupScenario mundo básico: una compañía y un proveedor con contrato, y dos
// productos en bodega (10 y 5 unidades).
func setupScenario(t *testing.T) (w *world, companyID, supplierID, productA, versionA, productB, versionB int64) {
	t.Helper()
	w = newWorld()
	companyID = w.addOrganizer(entity.RoleCompany, "Salón Central")
	supplierID = w.addOrganizer(entity.RoleSupplier, "Distribuidora Norte")
	w.addContract(companyID, supplierID)
	productA, versionA = w.addProduct(supplierID, "Tinte 7.1", 10)
	productB, versionB = w.addProduct(supplierID, "Shampoo neutro", 5)
	return
}

func createSupply(t *testing.T, uc *supply.UseCase, companyID, supplierID int64, lines ...supply.LineInput) *entity.Supply {
	t.Helper()
	created, err := uc.Create(context.Background(), companyID, supply.CreateInput{
		SupplierID:      supplierID,
		DeliveryAddress: "Calle 10 #42-15",
		TotalPrice:      decimal.NewFromInt(100),
		Lines:           lines,
	})
	require.NoError(t, err, "la creación del pedido debe funcionar")
	require.NotNil(t, created)
	return created
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: creación + reserva
// ──────────────────────────────────────────────────────────────────────────────

// Crear un pedido lo deja in_processing, esperando confirmación, y aparta el
// stock del proveedor sin descontar la bodega.
func TestCreate_ReservaStockYQuedaEnProcesamiento(t *testing.T) {
	w, companyID, supplierID, productA, versionA, productB, versionB := setupScenario(t)
	uc := newEngine(w)

	created := createSupply(t, uc, companyID, supplierID,
		supply.LineInput{ProductID: productA, Quantity: 4},
		supply.LineInput{ProductID: productB, Quantity: 2},
	)

	assert.Equal(t, entity.StatusInProcessing, created.Status)
	assert.True(t, created.IsWaitConfirm, "recién creado debe esperar confirmación")
	assert.GreaterOrEqual(t, created.Article, int64(10_000_000), "artículo de 8 dígitos")
	assert.LessOrEqual(t, created.Article, int64(99_999_999))

	stockA := w.stock(supplierID, productA)
	assert.Equal(t, int64(10), stockA.Quantity, "la bodega no se descuenta al reservar")
	assert.Equal(t, int64(4), stockA.Reserved)
	stockB := w.stock(supplierID, productB)
	assert.Equal(t, int64(2), stockB.Reserved)

	// Las líneas congelan la versión vigente, emparejada posicionalmente.
	require.Len(t, w.lines, 2)
	assert.Equal(t, versionA, w.lines[0].ProductVersionID)
	assert.Equal(t, int64(4), w.lines[0].Quantity)
	assert.Equal(t, versionB, w.lines[1].ProductVersionID)
	assert.Equal(t, int64(2), w.lines[1].Quantity)
}

// Sin contrato con el proveedor no se crea nada ni se reserva nada.
func TestCreate_SinContrato_RechazaAntesDeReservar(t *testing.T) {
	w := newWorld()
	companyID := w.addOrganizer(entity.RoleCompany, "Salón Central")
	supplierID := w.addOrganizer(entity.RoleSupplier, "Distribuidora Norte")
	productA, _ := w.addProduct(supplierID, "Tinte 7.1", 10)
	uc := newEngine(w)

	_, err := uc.Create(context.Background(), companyID, supply.CreateInput{
		SupplierID:      supplierID,
		DeliveryAddress: "Calle 10 #42-15",
		Lines:           []supply.LineInput{{ProductID: productA, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrContractNotFound)
	assert.Empty(t, w.supplies, "no debe persistirse ningún pedido")
	assert.Equal(t, int64(0), w.stock(supplierID, productA).Reserved)
}

// Un pedido sin líneas o con cantidades no positivas es inválido.
func TestCreate_EntradaInvalida(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)

	_, err := uc.Create(context.Background(), companyID, supply.CreateInput{
		SupplierID:      supplierID,
		DeliveryAddress: "Calle 10 #42-15",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.Create(context.Background(), companyID, supply.CreateInput{
		SupplierID:      supplierID,
		DeliveryAddress: "Calle 10 #42-15",
		Lines:           []supply.LineInput{{ProductID: productA, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}

// Si una línea excede el stock disponible, el pedido completo se revierte:
// ni cabecera, ni líneas, ni las reservas de las líneas anteriores.
func TestCreate_SobreofertaDeReservas_RevierteTodo(t *testing.T) {
	w, companyID, supplierID, productA, _, productB, _ := setupScenario(t)
	uc := newEngine(w)

	_, err := uc.Create(context.Background(), companyID, supply.CreateInput{
		SupplierID:      supplierID,
		DeliveryAddress: "Calle 10 #42-15",
		Lines: []supply.LineInput{
			{ProductID: productA, Quantity: 3}, // cabe
			{ProductID: productB, Quantity: 6}, // solo hay 5
		},
	})

	assert.ErrorIs(t, err, domain.ErrOverReserved)
	assert.Empty(t, w.supplies)
	assert.Empty(t, w.lines)
	assert.Equal(t, int64(0), w.stock(supplierID, productA).Reserved, "la reserva de la primera línea debe revertirse")
	assert.Equal(t, int64(0), w.stock(supplierID, productB).Reserved)
}

// Las reservas de pedidos en vuelo cuentan: el disponible es quantity-reserved,
// no quantity.
func TestCreate_ReservasConcurrentesNoExcedenDisponible(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)

	createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 7})

	_, err := uc.Create(context.Background(), companyID, supply.CreateInput{
		SupplierID:      supplierID,
		DeliveryAddress: "Calle 10 #42-15",
		Lines:           []supply.LineInput{{ProductID: productA, Quantity: 4}},
	})

	assert.ErrorIs(t, err, domain.ErrOverReserved, "7 reservadas de 10: solo quedan 3 disponibles")
	assert.Equal(t, int64(7), w.stock(supplierID, productA).Reserved)
}

// ──────────────────────────────────────────────────────────────────────────────
// AssembleOrCancel: decisión del proveedor
// ──────────────────────────────────────────────────────────────────────────────

// assemble confirma el armado: reserved y quantity bajan juntos.
func TestDecide_Assemble_DescuentaBodega(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 4})

	err := uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.DecisionAssemble)
	require.NoError(t, err)

	got := w.supplies[created.ID]
	assert.Equal(t, entity.StatusAssembled, got.Status)
	assert.False(t, got.IsWaitConfirm)

	stock := w.stock(supplierID, productA)
	assert.Equal(t, int64(6), stock.Quantity, "las unidades salen de la bodega")
	assert.Equal(t, int64(0), stock.Reserved)
}

// cancel libera la reserva sin tocar la bodega.
func TestDecide_Cancel_LiberaReserva(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 4})

	err := uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.DecisionCancel)
	require.NoError(t, err)

	got := w.supplies[created.ID]
	assert.Equal(t, entity.StatusCancelled, got.Status)
	assert.False(t, got.IsWaitConfirm)

	stock := w.stock(supplierID, productA)
	assert.Equal(t, int64(10), stock.Quantity, "la bodega queda intacta")
	assert.Equal(t, int64(0), stock.Reserved)
}

// Una segunda decisión encuentra el pedido ya resuelto: ErrConflict y los
// ledgers no se tocan (sin doble descuento ni doble liberación).
func TestDecide_SegundaDecision_ConflictoSinTocarLedgers(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 4})

	require.NoError(t, uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.DecisionAssemble))
	before := w.stock(supplierID, productA)

	err := uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.DecisionCancel)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, before, w.stock(supplierID, productA), "los ledgers no deben cambiar")
	assert.Equal(t, entity.StatusAssembled, w.supplies[created.ID].Status)
}

// Solo el proveedor dueño del pedido puede decidirlo.
func TestDecide_OtroProveedor_Prohibido(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	otherSupplier := w.addOrganizer(entity.RoleSupplier, "Distribuidora Sur")
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 1})

	err := uc.AssembleOrCancel(context.Background(), otherSupplier, created.ID, entity.DecisionAssemble)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, int64(1), w.stock(supplierID, productA).Reserved, "la reserva sigue viva")
}

func TestDecide_PedidoInexistente(t *testing.T) {
	w, _, supplierID, _, _, _, _ := setupScenario(t)
	uc := newEngine(w)

	err := uc.AssembleOrCancel(context.Background(), supplierID, 9999, entity.DecisionAssemble)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecide_DecisionDesconocida(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 1})

	err := uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.Decision("approve"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La reserva vive sobre el producto físico: aunque el proveedor actualice el
// catálogo (versión nueva) entre la creación y el armado, el commit descuenta
// la misma fila de stock.
func TestDecide_AssembleTrasActualizarCatalogo(t *testing.T) {
	w, companyID, supplierID, productA, versionA, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 4})

	// El proveedor renombra el producto: versión nueva, la línea conserva la vieja.
	w.repointProduct(productA, "Tinte 7.1 fórmula nueva")

	require.NoError(t, uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.DecisionAssemble))

	stock := w.stock(supplierID, productA)
	assert.Equal(t, int64(6), stock.Quantity)
	assert.Equal(t, int64(0), stock.Reserved)
	assert.Equal(t, versionA, w.lines[0].ProductVersionID, "la línea conserva el snapshot comprado")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus: ruta de entrega y adopción
// ──────────────────────────────────────────────────────────────────────────────

// assembled -> in_delivery -> delivered -> adopted; al adoptar se acredita el
// stock de la compañía por la versión exacta comprada.
func TestUpdateStatus_RutaDeEntregaCompleta(t *testing.T) {
	w, companyID, supplierID, productA, versionA, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 4})
	require.NoError(t, uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.DecisionAssemble))

	for _, status := range []entity.SupplyStatus{entity.StatusInDelivery, entity.StatusDelivered, entity.StatusAdopted} {
		updated, err := uc.UpdateStatus(context.Background(), supplierID, created.ID, status)
		require.NoError(t, err, "transición a %s", status)
		assert.Equal(t, status, updated.Status)
	}

	cs := w.companyStock[companyKey{companyID, versionA}]
	assert.Equal(t, int64(4), cs.Quantity, "la adopción acredita el stock de la compañía")
}

// adopted acredita por la versión comprada aunque el catálogo haya cambiado.
func TestUpdateStatus_AdoptaVersionOriginalTrasRepunte(t *testing.T) {
	w, companyID, supplierID, productA, versionA, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 2})
	require.NoError(t, uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.DecisionAssemble))

	newVersion := w.repointProduct(productA, "Tinte 7.1 fórmula nueva")

	_, err := uc.UpdateStatus(context.Background(), supplierID, created.ID, entity.StatusAdopted)
	require.NoError(t, err)

	assert.Equal(t, int64(2), w.companyStock[companyKey{companyID, versionA}].Quantity,
		"se acredita la versión comprada")
	_, creditedNew := w.companyStock[companyKey{companyID, newVersion}]
	assert.False(t, creditedNew, "la versión nueva no recibe crédito")
}

// Mientras el pedido espera confirmación no hay avance de entrega posible.
func TestUpdateStatus_PendienteDeConfirmacion_Conflicto(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 1})

	_, err := uc.UpdateStatus(context.Background(), supplierID, created.ID, entity.StatusInDelivery)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Los estados terminales no admiten más transiciones.
func TestUpdateStatus_EstadosTerminales_Conflicto(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)

	cancelled := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 1})
	require.NoError(t, uc.AssembleOrCancel(context.Background(), supplierID, cancelled.ID, entity.DecisionCancel))
	_, err := uc.UpdateStatus(context.Background(), supplierID, cancelled.ID, entity.StatusInDelivery)
	assert.ErrorIs(t, err, domain.ErrConflict, "cancelado es terminal")

	adopted := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 1})
	require.NoError(t, uc.AssembleOrCancel(context.Background(), supplierID, adopted.ID, entity.DecisionAssemble))
	_, err = uc.UpdateStatus(context.Background(), supplierID, adopted.ID, entity.StatusAdopted)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), supplierID, adopted.ID, entity.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrConflict, "adoptado es terminal")
}

// Los estados que no pertenecen a la ruta de entrega se rechazan de entrada:
// in_processing nunca se restablece y assembled/cancelled solo salen de la decisión.
func TestUpdateStatus_EstadosFueraDeRuta_Invalidos(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 1})
	require.NoError(t, uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.DecisionAssemble))

	for _, status := range []entity.SupplyStatus{entity.StatusInProcessing, entity.StatusAssembled, entity.StatusCancelled, "bogus"} {
		_, err := uc.UpdateStatus(context.Background(), supplierID, created.ID, status)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "status %s", status)
	}
}

// No se puede saltar de assembled a delivered sin pasar por in_delivery.
func TestUpdateStatus_SaltoDeEstado_Conflicto(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 1})
	require.NoError(t, uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.DecisionAssemble))

	_, err := uc.UpdateStatus(context.Background(), supplierID, created.ID, entity.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Una doble adopción no duplica el crédito del stock de compañía.
func TestUpdateStatus_DobleAdopcion_SinDobleCredito(t *testing.T) {
	w, companyID, supplierID, productA, versionA, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 3})
	require.NoError(t, uc.AssembleOrCancel(context.Background(), supplierID, created.ID, entity.DecisionAssemble))

	_, err := uc.UpdateStatus(context.Background(), supplierID, created.ID, entity.StatusAdopted)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), supplierID, created.ID, entity.StatusAdopted)
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Equal(t, int64(3), w.companyStock[companyKey{companyID, versionA}].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListByUser y Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestListByUser_FiltraPorRolYConfirmacion(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	otherCompany := w.addOrganizer(entity.RoleCompany, "Salón del Este")
	w.addContract(otherCompany, supplierID)
	uc := newEngine(w)

	pending := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 1})
	resolved := createSupply(t, uc, otherCompany, supplierID, supply.LineInput{ProductID: productA, Quantity: 1})
	require.NoError(t, uc.AssembleOrCancel(context.Background(), supplierID, resolved.ID, entity.DecisionAssemble))

	// El proveedor ve ambos pedidos.
	all, err := uc.ListByUser(context.Background(), entity.UserData{OrganizerID: supplierID, OrganizerRole: entity.RoleSupplier}, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Con is_wait_confirm=true solo el pendiente.
	waiting := true
	onlyPending, err := uc.ListByUser(context.Background(), entity.UserData{OrganizerID: supplierID, OrganizerRole: entity.RoleSupplier}, &waiting, 0)
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, pending.ID, onlyPending[0].ID)
	assert.Equal(t, "Distribuidora Norte", onlyPending[0].Supplier.Name)

	// Cada compañía solo ve sus compras.
	mine, err := uc.ListByUser(context.Background(), entity.UserData{OrganizerID: companyID, OrganizerRole: entity.RoleCompany}, nil, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, pending.ID, mine[0].ID)
}

func TestDelete_EliminaCabeceraYLineas(t *testing.T) {
	w, companyID, supplierID, productA, _, _, _ := setupScenario(t)
	uc := newEngine(w)
	created := createSupply(t, uc, companyID, supplierID, supply.LineInput{ProductID: productA, Quantity: 2})

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	assert.Empty(t, w.supplies)
	assert.Empty(t, w.lines)
	// Válvula de escape operativa: la reserva NO se libera.
	assert.Equal(t, int64(2), w.stock(supplierID, productA).Reserved)
}
