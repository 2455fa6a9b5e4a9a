package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/suministros-api/internal/application/supply"
	"github.com/tu-usuario/suministros-api/internal/application/usecase"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
)

var _ supply.TxRunner = (*TxRunner)(nil)
var _ usecase.CatalogTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	supplyRepo repository.SupplyRepository,
	lineRepo repository.SupplyProductRepository,
	supplierStockRepo repository.SupplierStockRepository,
	companyStockRepo repository.CompanyStockRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	supplyRepo := NewSupplyRepository(tx)
	lineRepo := NewSupplyProductRepository(tx)
	supplierStockRepo := NewSupplierStockRepository(tx)
	companyStockRepo := NewCompanyStockRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(supplyRepo, lineRepo, supplierStockRepo, companyStockRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCatalog inicia una transacción con los repos de catálogo y stock
// (para el ciclo de vida de productos).
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	versionRepo repository.ProductVersionRepository,
	supplierStockRepo repository.SupplierStockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	versionRepo := NewProductVersionRepository(tx)
	supplierStockRepo := NewSupplierStockRepository(tx)

	if err := fn(productRepo, versionRepo, supplierStockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
