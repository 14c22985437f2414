package models

import "github.com/shopspring/decimal"

type PriceUnit string

const (
	PriceUnitPerHour  PriceUnit = "per_hour"
	PriceUnitFlatRate PriceUnit = "flat_rate"
)

type Service struct {
	ID          string          `json:"id"`
	CleanerID   string          `json:"cleanerId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	PriceUnit   PriceUnit       `json:"priceUnit"`
}

func (s Service) GetID() string {
	return s.ID
}
