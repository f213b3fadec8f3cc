package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"simpledock/infras/otel"
	"simpledock/infras/postgres"
	"simpledock/internal/domains/driver/model"
	gDto "simpledock/shared/dto"
	gRepo "simpledock/shared/repository"
)

type Driver interface {
	Insert(ctx context.Context, model model.Driver) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Driver, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Driver]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Driver {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Driver](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
