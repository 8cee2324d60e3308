package cart

import (
	"Recipebook-Backend/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetCartIngredientLines(ctx context.Context, userID string) ([]domain.ShoppingListLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShoppingListLine), args.Error(1)
}

func TestGetShoppingListMergesAcrossRecipes(t *testing.T) {
	repo := new(MockCartRepository)
	service := NewCartService(repo)

	// two recipes in the cart: R1 has Flour 200 + Sugar 100, R2 has
	// Flour 300 + Egg 2
	repo.On("GetCartIngredientLines", mock.Anything, "user-1").Return([]domain.ShoppingListLine{
		{Name: "Egg", MeasurementUnit: "pcs", Amount: 2},
		{Name: "Flour", MeasurementUnit: "g", Amount: 200},
		{Name: "Flour", MeasurementUnit: "g", Amount: 300},
		{Name: "Sugar", MeasurementUnit: "g", Amount: 100},
	}, nil)

	items, err := service.GetShoppingList(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, []domain.ShoppingListItem{
		{Name: "Egg", MeasurementUnit: "pcs", TotalAmount: 2},
		{Name: "Flour", MeasurementUnit: "g", TotalAmount: 500},
		{Name: "Sugar", MeasurementUnit: "g", TotalAmount: 100},
	}, items)
}

func TestGetShoppingListKeepsDistinctUnitsApart(t *testing.T) {
	repo := new(MockCartRepository)
	service := NewCartService(repo)

	repo.On("GetCartIngredientLines", mock.Anything, "user-1").Return([]domain.ShoppingListLine{
		{Name: "Milk", MeasurementUnit: "ml", Amount: 250},
		{Name: "Milk", MeasurementUnit: "g", Amount: 50},
	}, nil)

	items, err := service.GetShoppingList(context.Background(), "user-1")
	require.NoError(t, err)

	// same name, different unit: two separate groups, unit ascending
	assert.Equal(t, []domain.ShoppingListItem{
		{Name: "Milk", MeasurementUnit: "g", TotalAmount: 50},
		{Name: "Milk", MeasurementUnit: "ml", TotalAmount: 250},
	}, items)
}

func TestDownloadShoppingListFormat(t *testing.T) {
	repo := new(MockCartRepository)
	service := NewCartService(repo)

	repo.On("GetCartIngredientLines", mock.Anything, "user-1").Return([]domain.ShoppingListLine{
		{Name: "Мука", MeasurementUnit: "г", Amount: 200},
		{Name: "Мука", MeasurementUnit: "г", Amount: 300},
		{Name: "Яйцо", MeasurementUnit: "шт", Amount: 2},
	}, nil)

	report, err := service.DownloadShoppingList(context.Background(), "user-1")
	require.NoError(t, err)

	expected := "Список покупок:\n" +
		"- Мука в количестве: 500 г,\n" +
		"- Яйцо в количестве: 2 шт,\n"
	assert.Equal(t, expected, report)
}

func TestDownloadShoppingListEmptyCart(t *testing.T) {
	repo := new(MockCartRepository)
	service := NewCartService(repo)

	repo.On("GetCartIngredientLines", mock.Anything, "user-1").Return([]domain.ShoppingListLine{}, nil)

	report, err := service.DownloadShoppingList(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Список покупок:\n", report)
}

func TestGetShoppingListRepositoryError(t *testing.T) {
	repo := new(MockCartRepository)
	service := NewCartService(repo)

	repo.On("GetCartIngredientLines", mock.Anything, "user-1").Return(nil, errors.New("db down"))

	_, err := service.GetShoppingList(context.Background(), "user-1")
	assert.Error(t, err)
}
