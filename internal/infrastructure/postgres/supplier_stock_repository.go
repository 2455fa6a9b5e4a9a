package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/suministros-api/internal/domain"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
)

var _ repository.SupplierStockRepository = (*SupplierStockRepo)(nil)

// SupplierStockRepo ledger de stock del proveedor sobre PostgreSQL (usable con pool o tx).
//
// Reserve/Release/Commit son UNA sola sentencia condicional: la condición del
// invariante va en el WHERE y cero filas afectadas significa rechazo. Así dos
// reservas concurrentes sobre la misma fila no pueden colarse entre el read y
// el write de la otra.
type SupplierStockRepo struct {
	q Querier
}

// NewSupplierStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierStockRepository(q Querier) *SupplierStockRepo {
	return &SupplierStockRepo{q: q}
}

// Create persiste una fila nueva de stock (al crear el producto).
func (r *SupplierStockRepo) Create(stock *entity.SupplierStock) error {
	if stock.Quantity < 0 || stock.Reserved < 0 || stock.Reserved > stock.Quantity {
		return domain.ErrInvalidQuantity
	}
	query := `
		INSERT INTO supplier_stock (supplier_id, product_id, quantity, reserved, updated_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		stock.SupplierID, stock.ProductID, stock.Quantity, stock.Reserved,
	).Scan(&stock.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier stock: %w", err)
	}
	return nil
}

// GetBySupplierAndProduct obtiene la fila de stock de un producto del proveedor.
func (r *SupplierStockRepo) GetBySupplierAndProduct(supplierID, productID int64) (*entity.SupplierStock, error) {
	query := `
		SELECT id, supplier_id, product_id, quantity, reserved, updated_at
		FROM supplier_stock WHERE supplier_id = $1 AND product_id = $2`
	var s entity.SupplierStock
	err := r.q.QueryRow(context.Background(), query, supplierID, productID).Scan(
		&s.ID, &s.SupplierID, &s.ProductID, &s.Quantity, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier stock: %w", err)
	}
	return &s, nil
}

// Reserve aparta amount unidades para un pedido en vuelo.
func (r *SupplierStockRepo) Reserve(supplierID, productID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		UPDATE supplier_stock
		SET reserved = reserved + $3, updated_at = now()
		WHERE supplier_id = $1 AND product_id = $2 AND reserved + $3 <= quantity`
	cmd, err := r.q.Exec(context.Background(), query, supplierID, productID, amount)
	if err != nil {
		return fmt.Errorf("reserve supplier stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.rejectionError(supplierID, productID, domain.ErrOverReserved)
	}
	return nil
}

// Release devuelve amount unidades reservadas al stock libre (pedido cancelado).
func (r *SupplierStockRepo) Release(supplierID, productID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		UPDATE supplier_stock
		SET reserved = reserved - $3, updated_at = now()
		WHERE supplier_id = $1 AND product_id = $2 AND reserved - $3 >= 0`
	cmd, err := r.q.Exec(context.Background(), query, supplierID, productID, amount)
	if err != nil {
		return fmt.Errorf("release supplier stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.rejectionError(supplierID, productID, domain.ErrInvalidQuantity)
	}
	return nil
}

// Commit descuenta amount de reserved y quantity a la vez: el pedido se armó
// y las unidades salen físicamente de la bodega.
func (r *SupplierStockRepo) Commit(supplierID, productID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		UPDATE supplier_stock
		SET reserved = reserved - $3, quantity = quantity - $3, updated_at = now()
		WHERE supplier_id = $1 AND product_id = $2
			AND reserved - $3 >= 0 AND quantity - $3 >= 0`
	cmd, err := r.q.Exec(context.Background(), query, supplierID, productID, amount)
	if err != nil {
		return fmt.Errorf("commit supplier stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.rejectionError(supplierID, productID, domain.ErrInvalidQuantity)
	}
	return nil
}

// UpdateQuantity ajuste manual del proveedor. No puede dejar quantity por
// debajo de lo ya reservado.
func (r *SupplierStockRepo) UpdateQuantity(supplierID, productID, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		UPDATE supplier_stock
		SET quantity = $3, updated_at = now()
		WHERE supplier_id = $1 AND product_id = $2 AND reserved <= $3`
	cmd, err := r.q.Exec(context.Background(), query, supplierID, productID, quantity)
	if err != nil {
		return fmt.Errorf("update supplier stock quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.rejectionError(supplierID, productID, domain.ErrInvalidQuantity)
	}
	return nil
}

// ListBySupplier stock del proveedor con datos de catálogo de la versión vigente.
func (r *SupplierStockRepo) ListBySupplier(supplierID int64) ([]entity.SupplierStockInfo, error) {
	query := `
		SELECT ss.id, ss.product_id, p.article, pv.name, pv.category, pv.description, ss.quantity, ss.reserved
		FROM supplier_stock ss
		JOIN products p ON p.id = ss.product_id
		JOIN product_versions pv ON pv.id = p.product_version_id
		WHERE ss.supplier_id = $1
		ORDER BY pv.name`
	rows, err := r.q.Query(context.Background(), query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list supplier stock: %w", err)
	}
	defer rows.Close()
	var list []entity.SupplierStockInfo
	for rows.Next() {
		var s entity.SupplierStockInfo
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Article, &s.ProductName, &s.Category,
			&s.Description, &s.Quantity, &s.Reserved); err != nil {
			return nil, fmt.Errorf("scan supplier stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina la fila de stock de un producto (cascada explícita
// al borrar el producto).
func (r *SupplierStockRepo) DeleteByProduct(productID int64) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM supplier_stock WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete supplier stock: %w", err)
	}
	return nil
}

// rejectionError distingue "la fila no existe" (ErrNotFound) de "el update
// condicional rechazó la mutación" (violación del invariante).
func (r *SupplierStockRepo) rejectionError(supplierID, productID int64, violation error) error {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM supplier_stock WHERE supplier_id = $1 AND product_id = $2)`,
		supplierID, productID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check supplier stock row: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return violation
}
