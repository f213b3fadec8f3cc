package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"simpledock/infras/otel"
	"simpledock/infras/postgres"
	"simpledock/internal/domains/dock/model"
	gDto "simpledock/shared/dto"
	gRepo "simpledock/shared/repository"
)

type Dock interface {
	Insert(ctx context.Context, model model.Dock) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Dock, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Dock, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Dock]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Dock {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Dock](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
