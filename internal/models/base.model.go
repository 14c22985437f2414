package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// Money goes over the wire as a JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

// Entity is any record kept in a named collection of the entity store.
type Entity interface {
	GetID() string
}

const (
	UserCollection    = "users"
	ServiceCollection = "services"
	BookingCollection = "bookings"
	ReviewCollection  = "reviews"
	PaymentCollection = "payments"
)

// EntityRecord is the single table row shape every collection is stored in.
type EntityRecord struct {
	Collection string         `gorm:"type:text;primaryKey"                 json:"collection"`
	EntityID   string         `gorm:"column:entity_id;type:text;primaryKey" json:"entityId"`
	Body       datatypes.JSON `gorm:"type:jsonb;not null"                  json:"body"`
	Version    int64          `gorm:"type:bigint;not null"                 json:"version"`
	CreatedAt  time.Time      `gorm:"not null;index"                       json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"not null"                             json:"updatedAt"`
}

func (EntityRecord) TableName() string {
	return "entities"
}
