package memory

import (
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)
var _ repository.CategoryRepository = (*CategoryRepo)(nil)
var _ repository.UserRepository = (*UserRepo)(nil)

// SupplierRepo repositorio de proveedores en memoria.
type SupplierRepo struct {
	store *Store
}

func NewSupplierRepository(store *Store) *SupplierRepo {
	return &SupplierRepo{store: store}
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *supplier
	r.store.suppliers[supplier.ID] = &c
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *supplier
	r.store.suppliers[supplier.ID] = &c
	return nil
}

func (r *SupplierRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.purchaseOrders {
		if o.SupplierID == id {
			return domain.ErrConflict
		}
	}
	delete(r.store.suppliers, id)
	return nil
}

func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*entity.Supplier, 0, len(r.store.suppliers))
	for _, s := range r.store.suppliers {
		c := *s
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

// CategoryRepo repositorio de categorías en memoria.
type CategoryRepo struct {
	store *Store
}

func NewCategoryRepository(store *Store) *CategoryRepo {
	return &CategoryRepo{store: store}
}

func (r *CategoryRepo) Create(category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *category
	r.store.categories[category.ID] = &c
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cat, ok := r.store.categories[id]
	if !ok {
		return nil, nil
	}
	c := *cat
	return &c, nil
}

func (r *CategoryRepo) Update(category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *category
	r.store.categories[category.ID] = &c
	return nil
}

func (r *CategoryRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.store.categories, id)
	return nil
}

func (r *CategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*entity.Category, 0, len(r.store.categories))
	for _, cat := range r.store.categories {
		c := *cat
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	c := *user
	r.store.users[user.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}
