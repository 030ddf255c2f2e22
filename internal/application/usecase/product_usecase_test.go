package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

type fakeProductRepo struct {
	byID   map[string]*entity.Product
	byCode map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]*entity.Product{}, byCode: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.byID[p.ID] = p
	r.byCode[p.Code] = p
	return nil
}
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)     { return r.byID[id], nil }
func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) { return r.byCode[code], nil }
func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

type fakeCategoryRepo struct{ byID map[string]*entity.Category }

func (r *fakeCategoryRepo) Create(c *entity.Category) error { return nil }
func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.byID[id], nil
}
func (r *fakeCategoryRepo) List() ([]*entity.Category, error) { return nil, nil }
func (r *fakeCategoryRepo) Delete(string) error               { return nil }

func buildProductUC() (*usecase.ProductUseCase, *fakeProductRepo) {
	repo := newFakeProductRepo()
	categories := &fakeCategoryRepo{byID: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", Name: "Electrónica"},
	}}
	return usecase.NewProductUseCase(repo, categories), repo
}

func TestProductCreate_AsignaUmbralPorDefecto(t *testing.T) {
	uc, _ := buildProductUC()

	out, err := uc.Create(dto.CreateProductRequest{
		Code: "SKU-001", Name: "Teclado", Unit: "pz",
		Price: decimal.NewFromInt(35),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.MinQuantity,
		"sin min_quantity explícito se usa el umbral por defecto")
	assert.NotEmpty(t, out.ID)
}

func TestProductCreate_CodeDuplicado(t *testing.T) {
	uc, _ := buildProductUC()

	_, err := uc.Create(dto.CreateProductRequest{Code: "SKU-001", Name: "Teclado", Unit: "pz"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Code: "SKU-001", Name: "Otro", Unit: "pz"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	uc, _ := buildProductUC()

	_, err := uc.Create(dto.CreateProductRequest{
		Code: "SKU-002", Name: "Mouse", Unit: "pz", CategoryID: "cat-404",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_CamposObligatorios(t *testing.T) {
	uc, _ := buildProductUC()

	_, err := uc.Create(dto.CreateProductRequest{Name: "Sin código", Unit: "pz"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_SoloCamposPresentes(t *testing.T) {
	uc, _ := buildProductUC()

	created, err := uc.Create(dto.CreateProductRequest{
		Code: "SKU-003", Name: "Monitor", Unit: "pz", Description: "24 pulgadas",
	})
	require.NoError(t, err)

	newName := "Monitor Full HD"
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Monitor Full HD", out.Name)
	assert.Equal(t, "SKU-003", out.Code, "los campos no enviados no cambian")
	assert.Equal(t, "24 pulgadas", out.Description)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc, _ := buildProductUC()

	name := "x"
	_, err := uc.Update("no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
