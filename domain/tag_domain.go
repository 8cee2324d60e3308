package domain

import "errors"

var (
	MessageSuccessGetTags      = "success get tags"
	MessageSuccessGetTagDetail = "success get tag detail"
	MessageSuccessCreateTag    = "tag created successfully"

	MessageFailedGetTags      = "failed to get tags"
	MessageFailedGetTagDetail = "failed to get tag detail"
	MessageFailedCreateTag    = "failed to create tag"

	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")
)

type (
	CreateTagRequest struct {
		Name  string `json:"name" validate:"required,max=200"`
		Color string `json:"color" validate:"required,hexcolor3or6"`
		Slug  string `json:"slug" validate:"required,max=200"`
	}

	TagResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}
)
