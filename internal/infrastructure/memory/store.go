// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con un TxRunner que serializa transacciones completas y revierte
// vía snapshot. Es el doble de pruebas de la capa postgres: mismo contrato
// (atomicidad, serialización por producto, (nil, nil) en no-encontrado).
package memory

import (
	"sync"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Store estado compartido de los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	products       map[string]*entity.Product
	transactions   []*entity.StockTransaction
	purchaseOrders map[string]*entity.PurchaseOrder
	salesOrders    map[string]*entity.SalesOrder
	suppliers      map[string]*entity.Supplier
	categories     map[string]*entity.Category
	users          map[string]*entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:       make(map[string]*entity.Product),
		purchaseOrders: make(map[string]*entity.PurchaseOrder),
		salesOrders:    make(map[string]*entity.SalesOrder),
		suppliers:      make(map[string]*entity.Supplier),
		categories:     make(map[string]*entity.Category),
		users:          make(map[string]*entity.User),
	}
}

// snapshot copia profunda del estado, para revertir una transacción fallida.
// Llamar con s.mu tomado.
type snapshot struct {
	products       map[string]*entity.Product
	transactions   []*entity.StockTransaction
	purchaseOrders map[string]*entity.PurchaseOrder
	salesOrders    map[string]*entity.SalesOrder
	suppliers      map[string]*entity.Supplier
	categories     map[string]*entity.Category
	users          map[string]*entity.User
}

func (s *Store) snapshotLocked() snapshot {
	snap := snapshot{
		products:       make(map[string]*entity.Product, len(s.products)),
		transactions:   make([]*entity.StockTransaction, len(s.transactions)),
		purchaseOrders: make(map[string]*entity.PurchaseOrder, len(s.purchaseOrders)),
		salesOrders:    make(map[string]*entity.SalesOrder, len(s.salesOrders)),
		suppliers:      make(map[string]*entity.Supplier, len(s.suppliers)),
		categories:     make(map[string]*entity.Category, len(s.categories)),
		users:          make(map[string]*entity.User, len(s.users)),
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for i, t := range s.transactions {
		c := *t
		snap.transactions[i] = &c
	}
	for id, o := range s.purchaseOrders {
		snap.purchaseOrders[id] = clonePurchaseOrder(o)
	}
	for id, o := range s.salesOrders {
		snap.salesOrders[id] = cloneSalesOrder(o)
	}
	for id, v := range s.suppliers {
		c := *v
		snap.suppliers[id] = &c
	}
	for id, v := range s.categories {
		c := *v
		snap.categories[id] = &c
	}
	for id, v := range s.users {
		c := *v
		snap.users[id] = &c
	}
	return snap
}

func (s *Store) restoreLocked(snap snapshot) {
	s.products = snap.products
	s.transactions = snap.transactions
	s.purchaseOrders = snap.purchaseOrders
	s.salesOrders = snap.salesOrders
	s.suppliers = snap.suppliers
	s.categories = snap.categories
	s.users = snap.users
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func clonePurchaseOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *o
	if o.CompletedDate != nil {
		d := *o.CompletedDate
		c.CompletedDate = &d
	}
	c.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	return &c
}

func cloneSalesOrder(o *entity.SalesOrder) *entity.SalesOrder {
	c := *o
	if o.CompletedDate != nil {
		d := *o.CompletedDate
		c.CompletedDate = &d
	}
	c.Items = append([]entity.SalesOrderItem(nil), o.Items...)
	return &c
}
