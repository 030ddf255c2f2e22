package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductFilter filtros para listar productos.
type ProductFilter struct {
	Search     string // busca en code y name
	CategoryID string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Delete(id string) error
}
