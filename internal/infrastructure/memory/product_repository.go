package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetForUpdate en memoria equivale a GetByID: la exclusión la da el TxRunner,
// que serializa transacciones completas.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneProduct(product)
	c.QuantityInStock = existing.QuantityInStock // el stock solo cambia vía UpdateStock
	r.store.products[product.ID] = c
	return nil
}

func (r *ProductRepo) UpdateStock(id string, quantity int64, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.QuantityInStock = quantity
	p.UpdatedAt = updatedAt
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.transactions {
		if t.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.store.products, id)
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := r.sortedLocked(func(a, b *entity.Product) bool { return a.CreatedAt.After(b.CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.store.products {
		if p.LowStock() {
			list = append(list, cloneProduct(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].QuantityInStock < list[j].QuantityInStock })
	return list, nil
}

func (r *ProductRepo) ListOutOfStock() ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.store.products {
		if p.OutOfStock() {
			list = append(list, cloneProduct(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *ProductRepo) Count() (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.products), nil
}

func (r *ProductRepo) CountLowStock() (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, p := range r.store.products {
		if p.LowStock() {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepo) sortedLocked(less func(a, b *entity.Product) bool) []*entity.Product {
	all := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		all = append(all, cloneProduct(p))
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	return all
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
