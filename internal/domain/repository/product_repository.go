package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// GetByID retorna (nil, nil) si no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE)
	// por el resto de la transacción. Solo tiene sentido dentro de un TxRunner.
	GetForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe la nueva cantidad y UpdatedAt. Uso exclusivo del ledger.
	UpdateStock(id string, quantity int64, updatedAt time.Time) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	ListOutOfStock() ([]*entity.Product, error)
	Count() (int, error)
	CountLowStock() (int, error)
}
