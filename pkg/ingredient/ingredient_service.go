package ingredient

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error)
		GetIngredientDetail(ctx context.Context, id string) (domain.IngredientResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, namePrefix)
	if err != nil {
		return nil, err
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		res = append(res, toIngredientResponse(ing))
	}
	return res, nil
}

func (s *ingredientService) GetIngredientDetail(ctx context.Context, id string) (domain.IngredientResponse, error) {
	ing, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return toIngredientResponse(ing), nil
}

func toIngredientResponse(ing *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:              ing.ID.String(),
		Name:            ing.Name,
		MeasurementUnit: ing.MeasurementUnit,
	}
}
