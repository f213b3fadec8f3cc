package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"simpledock/internal/domains/dock/model"
	"simpledock/shared"
	gDto "simpledock/shared/dto"
	gModel "simpledock/shared/model"
	"simpledock/shared/timezone"
)

type CreateDockRequest struct {
	Name         string   `json:"name"         validate:"required,max=100"`
	Capabilities []string `json:"capabilities" validate:"required,min=1,dive,oneof=General 'Cold Storage' Hazardous"`
	Active       *bool    `json:"active"       validate:"omitempty"`
}

func (c *CreateDockRequest) ToModel(user string) model.Dock {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Dock{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Capabilities: pq.StringArray(c.Capabilities),
		Active:       active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateDockRequest struct {
	Name         string         `db:"name"         json:"name"         validate:"omitempty,max=100"`
	Capabilities pq.StringArray `db:"capabilities" json:"capabilities" validate:"omitempty,min=1,dive,oneof=General 'Cold Storage' Hazardous"`
	Active       *bool          `db:"active"       json:"active"       validate:"omitempty"`
}

type DockResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
	Active       bool     `json:"active"`
	gDto.Metadata
}

func (r *DockResponse) FromModel(model model.Dock) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capabilities = []string(model.Capabilities)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetDocksResponse struct {
	Docks     []DockResponse `json:"docks"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetDocksResponse) FromModels(models []model.Dock, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Docks = make([]DockResponse, len(models))
	for i, mod := range models {
		r.Docks[i].FromModel(mod)
	}
}

// DockMetrics is the per-dock utilization summary shown on the admin dashboard.
type DockMetrics struct {
	DockID        string `json:"dock_id"`
	Name          string `json:"name"`
	TodayBookings int    `json:"today_bookings"`
	Utilization   int    `json:"utilization"`
	NextArrival   string `json:"next_arrival"`
}

type GetDockMetricsResponse struct {
	Date    string        `json:"date"`
	Metrics []DockMetrics `json:"metrics"`
}
