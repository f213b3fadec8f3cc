package model

import (
	"simpledock/shared/model"
)

const (
	TableName  = "drivers"
	EntityName = "driver"

	FieldID    = "id"
	FieldPhone = "phone"
	FieldName  = "name"
)

type Driver struct {
	ID       string `db:"id"`
	Phone    string `db:"phone"`
	Name     string `db:"name"`
	Password string `db:"password"`
	Active   bool   `db:"active"`
	model.Metadata
}
