package dto

import (
	"time"

	"github.com/google/uuid"

	"simpledock/infras/jwt"
	bookingModel "simpledock/internal/domains/booking/model"
	"simpledock/internal/domains/driver/model"
	"simpledock/shared/constant"
	gModel "simpledock/shared/model"
	"simpledock/shared/timezone"
)

type SignupRequest struct {
	Phone    string `json:"phone"    validate:"required,max=20"`
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *SignupRequest) ToModel(hashedPassword string) model.Driver {
	return model.Driver{
		ID:       uuid.NewString(),
		Phone:    r.Phone,
		Name:     r.Name,
		Password: hashedPassword,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.ContextGuest,
			ModifiedBy: constant.ContextGuest,
		},
	}
}

type LoginRequest struct {
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type DriverResponse struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

func (r *DriverResponse) FromModel(model model.Driver) {
	r.ID = model.ID
	r.Phone = model.Phone
	r.Name = model.Name
}

// DriverSummaryResponse is one row of the registry aggregated from bookings.
type DriverSummaryResponse struct {
	DriverName  string `json:"driver_name"`
	CarrierName string `json:"carrier_name"`
	DriverPhone string `json:"driver_phone"`
	TotalVisits int    `json:"total_visits"`
	LastVisit   string `json:"last_visit"`
	Status      string `json:"status"`
}

func (r *DriverSummaryResponse) FromSummary(summary bookingModel.DriverSummary) {
	r.DriverName = summary.DriverName
	if r.DriverName == constant.Empty {
		r.DriverName = "N/A"
	}

	r.CarrierName = summary.CarrierName
	if r.CarrierName == constant.Empty {
		r.CarrierName = "Unknown"
	}

	r.DriverPhone = summary.DriverPhone
	r.TotalVisits = summary.TotalVisits
	r.LastVisit = summary.LastVisit.Format(time.RFC3339)
	r.Status = "Active"
}

type GetDriversResponse struct {
	Drivers []DriverSummaryResponse `json:"drivers"`
}

func (r *GetDriversResponse) FromSummaries(summaries []bookingModel.DriverSummary) {
	r.Drivers = make([]DriverSummaryResponse, len(summaries))
	for i, summary := range summaries {
		r.Drivers[i].FromSummary(summary)
	}
}
