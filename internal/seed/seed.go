package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	customerdomain "github.com/railzwaylabs/frontdesk/internal/customer/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type bandSeed struct {
	min, max int
	price    string
}

type roomSeed struct {
	name     string
	beds     int
	capacity int
	base     string
	bands    []bandSeed
}

var demoRooms = []roomSeed{
	{name: "101 Garden Single", beds: 1, capacity: 1, base: "45000"},
	{name: "102 Garden Double", beds: 2, capacity: 3, base: "50000", bands: []bandSeed{
		{min: 1, max: 2, price: "50000"},
		{min: 3, max: 3, price: "65000"},
	}},
	{name: "201 Family Suite", beds: 3, capacity: 5, base: "80000", bands: []bandSeed{
		{min: 1, max: 2, price: "80000"},
		{min: 3, max: 4, price: "95000"},
		{min: 5, max: 5, price: "110000"},
	}},
}

var demoCustomers = []customerdomain.Customer{
	{FullName: "Ana Rojas", Document: "CC-1001", Phone: "+57 300 000 1001"},
	{FullName: "Luis Pardo", Document: "CC-1002", Email: "luis@example.com"},
	{FullName: "Marta Gil", Document: "CC-1003"},
}

// RoomCode derives the code for a seeded room from its display name.
func RoomCode(name string) string {
	return slug.Make(name)
}

// EnsureDemoData inserts the demo rooms and customers that are missing. It is
// safe to run repeatedly.
func EnsureDemoData(ctx context.Context, db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id node is required")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range demoRooms {
			if err := ensureRoomTx(ctx, tx, node, r); err != nil {
				return err
			}
		}
		for _, c := range demoCustomers {
			if err := ensureCustomerTx(ctx, tx, node, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureRoomTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, r roomSeed) error {
	code := RoomCode(r.name)

	var existing roomdomain.Room
	err := tx.WithContext(ctx).Where("code = ?", code).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	room := roomdomain.Room{
		ID:          node.Generate(),
		Code:        code,
		Name:        strings.TrimSpace(r.name),
		Beds:        r.beds,
		MaxCapacity: r.capacity,
		BasePrice:   decimal.RequireFromString(r.base),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.WithContext(ctx).Create(&room).Error; err != nil {
		return err
	}

	for i, b := range r.bands {
		band := roomdomain.RateBand{
			ID:            node.Generate(),
			RoomID:        room.ID,
			Position:      i,
			MinGuests:     b.min,
			MaxGuests:     b.max,
			PricePerNight: decimal.RequireFromString(b.price),
			CreatedAt:     now,
		}
		if err := tx.WithContext(ctx).Create(&band).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureCustomerTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, c customerdomain.Customer) error {
	var existing customerdomain.Customer
	err := tx.WithContext(ctx).Where("document = ?", c.Document).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	c.ID = node.Generate()
	c.CreatedAt = now
	c.UpdatedAt = now
	return tx.WithContext(ctx).Create(&c).Error
}
