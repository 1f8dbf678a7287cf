package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías (sin efectos sobre stock).
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(name, description string) (*entity.Category, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID obtiene una categoría; (nil, nil) si no existe.
func (uc *CategoryUseCase) GetByID(id string) (*entity.Category, error) {
	return uc.repo.GetByID(id)
}

// Update actualiza nombre y descripción.
func (uc *CategoryUseCase) Update(id, name, description string) (*entity.Category, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if name != "" {
		category.Name = name
	}
	category.Description = description
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete elimina una categoría; ErrConflict si tiene productos.
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista categorías.
func (uc *CategoryUseCase) List(limit, offset int) ([]*entity.Category, error) {
	return uc.repo.List(limit, offset)
}
