package model

import (
	"github.com/lib/pq"

	"simpledock/internal/scheduling"
	"simpledock/shared/model"
)

const (
	TableName  = "docks"
	EntityName = "dock"

	FieldID           = "id"
	FieldName         = "name"
	FieldCapabilities = "capabilities"
	FieldActive       = "active"
)

type Dock struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Capabilities pq.StringArray `db:"capabilities"`
	Active       bool           `db:"active"`
	model.Metadata
}

// ToSchedulingDock converts the persisted row into the resolver's dock shape.
func (d Dock) ToSchedulingDock() scheduling.Dock {
	capabilities := make([]scheduling.LoadType, len(d.Capabilities))
	for i, c := range d.Capabilities {
		capabilities[i] = scheduling.LoadType(c)
	}

	return scheduling.Dock{
		ID:           d.ID,
		Name:         d.Name,
		Capabilities: capabilities,
		Active:       d.Active,
	}
}
