package supply_test

import (
	"context"

	"github.com/tu-usuario/suministros-api/internal/application/supply"
	"github.com/tu-usuario/suministros-api/internal/domain"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mundo en memoria: estado compartido por los repos fake. El TxRunner fake
// toma un snapshot antes de ejecutar y lo restaura si la función falla, para
// reproducir la semántica todo-o-nada de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct {
	supplierID int64
	productID  int64
}

type companyKey struct {
	companyID int64
	versionID int64
}

type contractKey struct {
	companyID  int64
	supplierID int64
}

type world struct {
	supplies      map[int64]entity.Supply
	lines         []entity.SupplyProduct
	supplierStock map[stockKey]entity.SupplierStock
	companyStock  map[companyKey]entity.CompanyStock
	products      map[int64]entity.Product
	versions      map[int64]entity.ProductVersion
	contracts     map[contractKey]bool
	organizers    map[int64]entity.Organizer
	nextID        int64
}

func newWorld() *world {
	return &world{
		supplies:      make(map[int64]entity.Supply),
		supplierStock: make(map[stockKey]entity.SupplierStock),
		companyStock:  make(map[companyKey]entity.CompanyStock),
		products:      make(map[int64]entity.Product),
		versions:      make(map[int64]entity.ProductVersion),
		contracts:     make(map[contractKey]bool),
		organizers:    make(map[int64]entity.Organizer),
	}
}

func (w *world) id() int64 {
	w.nextID++
	return w.nextID
}

func (w *world) clone() *world {
	c := newWorld()
	c.nextID = w.nextID
	for k, v := range w.supplies {
		c.supplies[k] = v
	}
	c.lines = append(c.lines, w.lines...)
	for k, v := range w.supplierStock {
		c.supplierStock[k] = v
	}
	for k, v := range w.companyStock {
		c.companyStock[k] = v
	}
	for k, v := range w.products {
		c.products[k] = v
	}
	for k, v := range w.versions {
		c.versions[k] = v
	}
	for k, v := range w.contracts {
		c.contracts[k] = v
	}
	for k, v := range w.organizers {
		c.organizers[k] = v
	}
	return c
}

// ── Helpers de armado de escenarios ──────────────────────────────────────────

func (w *world) addOrganizer(role entity.OrganizerRole, name string) int64 {
	id := w.id()
	w.organizers[id] = entity.Organizer{ID: id, Role: role, Name: name}
	return id
}

func (w *world) addContract(companyID, supplierID int64) {
	w.contracts[contractKey{companyID, supplierID}] = true
}

// addProduct crea versión + producto + fila de stock, como hace el alta de catálogo.
func (w *world) addProduct(supplierID int64, name string, quantity int64) (productID, versionID int64) {
	versionID = w.id()
	productID = w.id()
	w.versions[versionID] = entity.ProductVersion{
		ID:        versionID,
		ProductID: productID,
		Name:      name,
		Category:  entity.CategoryConsumables,
	}
	w.products[productID] = entity.Product{
		ID:               productID,
		Article:          10_000_000 + productID,
		ProductVersionID: versionID,
		SupplierID:       supplierID,
	}
	w.supplierStock[stockKey{supplierID, productID}] = entity.SupplierStock{
		ID:         w.id(),
		SupplierID: supplierID,
		ProductID:  productID,
		Quantity:   quantity,
	}
	return productID, versionID
}

// repointProduct simula la actualización de catálogo: versión nueva y repunte.
func (w *world) repointProduct(productID int64, name string) (newVersionID int64) {
	newVersionID = w.id()
	w.versions[newVersionID] = entity.ProductVersion{
		ID:        newVersionID,
		ProductID: productID,
		Name:      name,
		Category:  entity.CategoryConsumables,
	}
	p := w.products[productID]
	p.ProductVersionID = newVersionID
	w.products[productID] = p
	return newVersionID
}

func (w *world) stock(supplierID, productID int64) entity.SupplierStock {
	return w.supplierStock[stockKey{supplierID, productID}]
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner fake con snapshot/rollback
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	w *world
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	supplyRepo repository.SupplyRepository,
	lineRepo repository.SupplyProductRepository,
	supplierStockRepo repository.SupplierStockRepository,
	companyStockRepo repository.CompanyStockRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapshot := r.w.clone()
	err := fn(
		&fakeSupplyRepo{r.w},
		&fakeLineRepo{r.w},
		&fakeSupplierStockRepo{r.w},
		&fakeCompanyStockRepo{r.w},
		&fakeProductRepo{r.w},
	)
	if err != nil {
		*r.w = *snapshot
	}
	return err
}

var _ supply.TxRunner = (*fakeTxRunner)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake: replican la semántica de los updates condicionales del ledger.
// ──────────────────────────────────────────────────────────────────────────────

type fakeSupplyRepo struct{ w *world }

func (r *fakeSupplyRepo) Create(s *entity.Supply) error {
	s.ID = r.w.id()
	r.w.supplies[s.ID] = *s
	return nil
}

func (r *fakeSupplyRepo) GetByID(id int64) (*entity.Supply, error) {
	s, ok := r.w.supplies[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSupplyRepo) ExistsByArticle(article int64) (bool, error) {
	for _, s := range r.w.supplies {
		if s.Article == article {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSupplyRepo) UpdateStatus(supplyID, supplierID int64, status entity.SupplyStatus, isWaitConfirm bool) (bool, error) {
	s, ok := r.w.supplies[supplyID]
	if !ok || s.SupplierID != supplierID {
		return false, nil
	}
	s.Status = status
	s.IsWaitConfirm = isWaitConfirm
	r.w.supplies[supplyID] = s
	return true, nil
}

func (r *fakeSupplyRepo) List(filter repository.SupplyListFilter) ([]entity.SupplySummary, error) {
	var out []entity.SupplySummary
	for _, s := range r.w.supplies {
		if filter.CompanyID != 0 && s.CompanyID != filter.CompanyID {
			continue
		}
		if filter.SupplierID != 0 && s.SupplierID != filter.SupplierID {
			continue
		}
		if filter.IsWaitConfirm != nil && s.IsWaitConfirm != *filter.IsWaitConfirm {
			continue
		}
		summary := entity.SupplySummary{
			ID:              s.ID,
			Article:         s.Article,
			Supplier:        entity.OrganizerInfo{ID: s.SupplierID, Name: r.w.organizers[s.SupplierID].Name},
			Company:         entity.OrganizerInfo{ID: s.CompanyID, Name: r.w.organizers[s.CompanyID].Name},
			Status:          s.Status,
			IsWaitConfirm:   s.IsWaitConfirm,
			DeliveryAddress: s.DeliveryAddress,
			TotalPrice:      s.TotalPrice,
		}
		for _, line := range r.w.lines {
			if line.SupplyID != s.ID {
				continue
			}
			v := r.w.versions[line.ProductVersionID]
			summary.Products = append(summary.Products, entity.SupplyProductDetail{
				ProductID:        v.ProductID,
				ProductVersionID: v.ID,
				Name:             v.Name,
				Category:         v.Category,
				Price:            v.Price,
				Quantity:         line.Quantity,
			})
		}
		out = append(out, summary)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeSupplyRepo) Delete(id int64) error {
	delete(r.w.supplies, id)
	var kept []entity.SupplyProduct
	for _, line := range r.w.lines {
		if line.SupplyID != id {
			kept = append(kept, line)
		}
	}
	r.w.lines = kept
	return nil
}

type fakeLineRepo struct{ w *world }

func (r *fakeLineRepo) CreateAll(items []entity.SupplyProduct) error {
	for _, item := range items {
		item.ID = r.w.id()
		r.w.lines = append(r.w.lines, item)
	}
	return nil
}

func (r *fakeLineRepo) ListBySupply(supplyID int64) ([]entity.SupplyProduct, error) {
	var out []entity.SupplyProduct
	for _, line := range r.w.lines {
		if line.SupplyID == supplyID {
			out = append(out, line)
		}
	}
	return out, nil
}

type fakeSupplierStockRepo struct{ w *world }

func (r *fakeSupplierStockRepo) Create(stock *entity.SupplierStock) error {
	stock.ID = r.w.id()
	r.w.supplierStock[stockKey{stock.SupplierID, stock.ProductID}] = *stock
	return nil
}

func (r *fakeSupplierStockRepo) GetBySupplierAndProduct(supplierID, productID int64) (*entity.SupplierStock, error) {
	s, ok := r.w.supplierStock[stockKey{supplierID, productID}]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSupplierStockRepo) Reserve(supplierID, productID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	key := stockKey{supplierID, productID}
	s, ok := r.w.supplierStock[key]
	if !ok {
		return domain.ErrNotFound
	}
	if s.Reserved+amount > s.Quantity {
		return domain.ErrOverReserved
	}
	s.Reserved += amount
	r.w.supplierStock[key] = s
	return nil
}

func (r *fakeSupplierStockRepo) Release(supplierID, productID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	key := stockKey{supplierID, productID}
	s, ok := r.w.supplierStock[key]
	if !ok {
		return domain.ErrNotFound
	}
	if s.Reserved-amount < 0 {
		return domain.ErrInvalidQuantity
	}
	s.Reserved -= amount
	r.w.supplierStock[key] = s
	return nil
}

func (r *fakeSupplierStockRepo) Commit(supplierID, productID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	key := stockKey{supplierID, productID}
	s, ok := r.w.supplierStock[key]
	if !ok {
		return domain.ErrNotFound
	}
	if s.Reserved-amount < 0 || s.Quantity-amount < 0 {
		return domain.ErrInvalidQuantity
	}
	s.Reserved -= amount
	s.Quantity -= amount
	r.w.supplierStock[key] = s
	return nil
}

func (r *fakeSupplierStockRepo) UpdateQuantity(supplierID, productID, quantity int64) error {
	key := stockKey{supplierID, productID}
	s, ok := r.w.supplierStock[key]
	if !ok {
		return domain.ErrNotFound
	}
	if s.Reserved > quantity {
		return domain.ErrInvalidQuantity
	}
	s.Quantity = quantity
	r.w.supplierStock[key] = s
	return nil
}

func (r *fakeSupplierStockRepo) ListBySupplier(supplierID int64) ([]entity.SupplierStockInfo, error) {
	var out []entity.SupplierStockInfo
	for _, s := range r.w.supplierStock {
		if s.SupplierID != supplierID {
			continue
		}
		p := r.w.products[s.ProductID]
		v := r.w.versions[p.ProductVersionID]
		out = append(out, entity.SupplierStockInfo{
			ID:          s.ID,
			ProductID:   s.ProductID,
			Article:     p.Article,
			ProductName: v.Name,
			Category:    v.Category,
			Quantity:    s.Quantity,
			Reserved:    s.Reserved,
		})
	}
	return out, nil
}

func (r *fakeSupplierStockRepo) DeleteByProduct(productID int64) error {
	for k := range r.w.supplierStock {
		if k.productID == productID {
			delete(r.w.supplierStock, k)
		}
	}
	return nil
}

type fakeCompanyStockRepo struct{ w *world }

func (r *fakeCompanyStockRepo) Credit(companyID, productVersionID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	key := companyKey{companyID, productVersionID}
	s, ok := r.w.companyStock[key]
	if !ok {
		s = entity.CompanyStock{ID: r.w.id(), CompanyID: companyID, ProductVersionID: productVersionID}
	}
	s.Quantity += amount
	r.w.companyStock[key] = s
	return nil
}

func (r *fakeCompanyStockRepo) GetByCompanyAndVersion(companyID, productVersionID int64) (*entity.CompanyStock, error) {
	s, ok := r.w.companyStock[companyKey{companyID, productVersionID}]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeCompanyStockRepo) ListByCompany(companyID int64) ([]entity.CompanyStockInfo, error) {
	var out []entity.CompanyStockInfo
	for _, s := range r.w.companyStock {
		if s.CompanyID != companyID {
			continue
		}
		v := r.w.versions[s.ProductVersionID]
		out = append(out, entity.CompanyStockInfo{
			ID:               s.ID,
			ProductVersionID: s.ProductVersionID,
			ProductName:      v.Name,
			Category:         v.Category,
			Quantity:         s.Quantity,
		})
	}
	return out, nil
}

type fakeProductRepo struct{ w *world }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	p.ID = r.w.id()
	r.w.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.w.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) GetFullByID(id int64) (*entity.ProductFull, error) {
	p, ok := r.w.products[id]
	if !ok {
		return nil, nil
	}
	return &entity.ProductFull{
		ID:         p.ID,
		Article:    p.Article,
		SupplierID: p.SupplierID,
		Version:    r.w.versions[p.ProductVersionID],
	}, nil
}

func (r *fakeProductRepo) ExistsByArticle(article int64) (bool, error) {
	for _, p := range r.w.products {
		if p.Article == article {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) ResolveVersionIDs(productIDs []int64) ([]int64, error) {
	out := make([]int64, len(productIDs))
	for i, id := range productIDs {
		p, ok := r.w.products[id]
		if !ok {
			return nil, domain.ErrNotFound
		}
		out[i] = p.ProductVersionID
	}
	return out, nil
}

func (r *fakeProductRepo) ProductForVersion(versionID int64) (*entity.Product, error) {
	v, ok := r.w.versions[versionID]
	if !ok || v.ProductID == 0 {
		return nil, domain.ErrNotFound
	}
	p, ok := r.w.products[v.ProductID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) RepointVersion(productID, versionID int64) error {
	p, ok := r.w.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.ProductVersionID = versionID
	r.w.products[productID] = p
	return nil
}

func (r *fakeProductRepo) ListAvailableForCompany(companyID int64) ([]entity.ProductFull, error) {
	var out []entity.ProductFull
	for _, p := range r.w.products {
		if !r.w.contracts[contractKey{companyID, p.SupplierID}] {
			continue
		}
		out = append(out, entity.ProductFull{
			ID:         p.ID,
			Article:    p.Article,
			SupplierID: p.SupplierID,
			Version:    r.w.versions[p.ProductVersionID],
		})
	}
	return out, nil
}

func (r *fakeProductRepo) ListBySupplier(supplierID int64) ([]entity.ProductFull, error) {
	var out []entity.ProductFull
	for _, p := range r.w.products {
		if p.SupplierID != supplierID {
			continue
		}
		out = append(out, entity.ProductFull{
			ID:         p.ID,
			Article:    p.Article,
			SupplierID: p.SupplierID,
			Version:    r.w.versions[p.ProductVersionID],
		})
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id int64) error {
	delete(r.w.products, id)
	return nil
}

// Repos usados fuera de la transacción por el caso de uso.

type fakeContractRepo struct{ w *world }

func (r *fakeContractRepo) Create(c *entity.Contract) error {
	c.ID = r.w.id()
	r.w.contracts[contractKey{c.CompanyID, c.SupplierID}] = true
	return nil
}

func (r *fakeContractRepo) Exists(companyID, supplierID int64) (bool, error) {
	return r.w.contracts[contractKey{companyID, supplierID}], nil
}

func (r *fakeContractRepo) GetByID(id int64) (*entity.Contract, error) {
	return nil, nil
}

func (r *fakeContractRepo) ListByOrganizer(organizerID int64, role entity.OrganizerRole) ([]entity.Contract, error) {
	return nil, nil
}

func (r *fakeContractRepo) Delete(id int64) error {
	return nil
}

type fakeOrganizerRepo struct{ w *world }

func (r *fakeOrganizerRepo) Create(o *entity.Organizer) error {
	o.ID = r.w.id()
	r.w.organizers[o.ID] = *o
	return nil
}

func (r *fakeOrganizerRepo) GetByID(id int64) (*entity.Organizer, error) {
	o, ok := r.w.organizers[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *fakeOrganizerRepo) GetNamesByIDs(ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	for _, id := range ids {
		if o, ok := r.w.organizers[id]; ok {
			out[id] = o.Name
		}
	}
	return out, nil
}

// newEngine arma el caso de uso completo sobre el mundo en memoria.
func newEngine(w *world) *supply.UseCase {
	return supply.NewUseCase(
		&fakeTxRunner{w},
		&fakeContractRepo{w},
		&fakeSupplyRepo{w},
		&fakeOrganizerRepo{w},
	)
}
