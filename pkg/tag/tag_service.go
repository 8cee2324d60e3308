package tag

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.TagResponse, error)
		GetTagDetail(ctx context.Context, id string) (domain.TagResponse, error)
		CreateTag(ctx context.Context, req domain.CreateTagRequest) (domain.TagResponse, error)
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for _, t := range tags {
		res = append(res, toTagResponse(t))
	}
	return res, nil
}

func (s *tagService) GetTagDetail(ctx context.Context, id string) (domain.TagResponse, error) {
	t, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}
	return toTagResponse(t), nil
}

func (s *tagService) CreateTag(ctx context.Context, req domain.CreateTagRequest) (domain.TagResponse, error) {
	tag := &entities.Tag{
		Name:  req.Name,
		Color: req.Color,
		Slug:  req.Slug,
	}

	if err := s.tagRepository.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.TagResponse{}, domain.ErrTagAlreadyExists
		}
		return domain.TagResponse{}, err
	}
	return toTagResponse(tag), nil
}

func toTagResponse(t *entities.Tag) domain.TagResponse {
	return domain.TagResponse{
		ID:    t.ID.String(),
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}
