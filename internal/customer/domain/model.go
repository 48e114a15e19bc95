package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/errs"
)

type Customer struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	FullName  string       `json:"full_name" gorm:"type:varchar(160);not null"`
	Document  string       `json:"document" gorm:"type:varchar(64);index"`
	Phone     string       `json:"phone" gorm:"type:varchar(32)"`
	Email     string       `json:"email" gorm:"type:varchar(160)"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

func (Customer) TableName() string { return "customers" }

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Customer, error)
	Get(ctx context.Context, id snowflake.ID) (*Customer, error)
}

type CreateRequest struct {
	FullName string `json:"full_name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

var (
	ErrNotFound    = errs.NotFound("customer_not_found", "customer does not exist")
	ErrInvalidName = errs.Validation("invalid_name", "customer name is required")
)
