// Package harness wires every front desk service against an in-memory
// database for cross-service tests.
package harness

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	"github.com/railzwaylabs/frontdesk/internal/config"
	"github.com/railzwaylabs/frontdesk/internal/events"
	"github.com/railzwaylabs/frontdesk/internal/observability"
	"github.com/railzwaylabs/frontdesk/internal/testsupport"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	auditrepo "github.com/railzwaylabs/frontdesk/internal/audit/repository"
	auditservice "github.com/railzwaylabs/frontdesk/internal/audit/service"
	customerdomain "github.com/railzwaylabs/frontdesk/internal/customer/domain"
	customerrepo "github.com/railzwaylabs/frontdesk/internal/customer/repository"
	customerservice "github.com/railzwaylabs/frontdesk/internal/customer/service"
	guestdomain "github.com/railzwaylabs/frontdesk/internal/guest/domain"
	guestrepo "github.com/railzwaylabs/frontdesk/internal/guest/repository"
	guestservice "github.com/railzwaylabs/frontdesk/internal/guest/service"
	ledgerdomain "github.com/railzwaylabs/frontdesk/internal/ledger/domain"
	ledgerservice "github.com/railzwaylabs/frontdesk/internal/ledger/service"
	occupancydomain "github.com/railzwaylabs/frontdesk/internal/occupancy/domain"
	occupancyservice "github.com/railzwaylabs/frontdesk/internal/occupancy/service"
	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	paymentrepo "github.com/railzwaylabs/frontdesk/internal/payment/repository"
	paymentservice "github.com/railzwaylabs/frontdesk/internal/payment/service"
	quickrentdomain "github.com/railzwaylabs/frontdesk/internal/quickrent/domain"
	quickrentservice "github.com/railzwaylabs/frontdesk/internal/quickrent/service"
	releasedomain "github.com/railzwaylabs/frontdesk/internal/release/domain"
	releaserepo "github.com/railzwaylabs/frontdesk/internal/release/repository"
	releaseservice "github.com/railzwaylabs/frontdesk/internal/release/service"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	reservationrepo "github.com/railzwaylabs/frontdesk/internal/reservation/repository"
	reservationservice "github.com/railzwaylabs/frontdesk/internal/reservation/service"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	roomrepo "github.com/railzwaylabs/frontdesk/internal/room/repository"
	roomservice "github.com/railzwaylabs/frontdesk/internal/room/service"
	saledomain "github.com/railzwaylabs/frontdesk/internal/sale/domain"
	salerepo "github.com/railzwaylabs/frontdesk/internal/sale/repository"
	saleservice "github.com/railzwaylabs/frontdesk/internal/sale/service"
	staydomain "github.com/railzwaylabs/frontdesk/internal/stay/domain"
	stayrepo "github.com/railzwaylabs/frontdesk/internal/stay/repository"
	stayservice "github.com/railzwaylabs/frontdesk/internal/stay/service"
)

type App struct {
	DB       *gorm.DB
	Node     *snowflake.Node
	Clock    clock.Clock
	Events   *events.MemoryPublisher
	Registry *prometheus.Registry
	Metrics  *observability.Metrics

	RoomRepo        roomdomain.Repository
	ReservationRepo reservationdomain.Repository
	PaymentRepo     paymentdomain.Repository
	SaleRepo        saledomain.Repository
	StayRepo        staydomain.Repository
	AuditRepo       auditdomain.Repository
	ReleaseRepo     releasedomain.Repository

	Rooms        roomdomain.Service
	Customers    customerdomain.Service
	Audit        auditdomain.Service
	AuditExport  auditdomain.ExportService
	Ledger       ledgerdomain.Service
	Stays        staydomain.Service
	Occupancy    occupancydomain.Service
	Reservations reservationdomain.Service
	Payments     paymentdomain.Service
	Sales        saledomain.Service
	Guests       guestdomain.Service
	QuickRent    quickrentdomain.Service
	Release      releasedomain.Service
}

type options struct {
	redis *redis.Client
	ttl   time.Duration
}

type Option func(*options)

// WithRedis turns the room status cache on.
func WithRedis(client *redis.Client, ttl time.Duration) Option {
	return func(o *options) {
		o.redis = client
		o.ttl = ttl
	}
}

// New builds the services on a fresh database with the fixed test clock.
// Tests move time per call with clock.WithAsOf.
func New(t *testing.T, opts ...Option) *App {
	t.Helper()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	db := testsupport.NewDB(t)
	node := testsupport.Node(t)
	clk := testsupport.Clock()
	log := zap.NewNop()
	reg := prometheus.NewRegistry()

	app := &App{
		DB:              db,
		Node:            node,
		Clock:           clk,
		Events:          &events.MemoryPublisher{},
		Registry:        reg,
		Metrics:         observability.NewMetrics(reg),
		RoomRepo:        roomrepo.Provide(),
		ReservationRepo: reservationrepo.Provide(),
		PaymentRepo:     paymentrepo.Provide(),
		SaleRepo:        salerepo.Provide(),
		StayRepo:        stayrepo.Provide(),
		AuditRepo:       auditrepo.Provide(),
		ReleaseRepo:     releaserepo.Provide(),
	}
	customerRepo := customerrepo.Provide()

	app.Rooms = roomservice.New(roomservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk, Repo: app.RoomRepo, Events: app.Events,
	})
	app.Customers = customerservice.New(customerservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk, Repo: customerRepo,
	})
	app.Audit = auditservice.NewService(auditservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk, Repo: app.AuditRepo,
	})
	app.AuditExport = auditservice.NewExportService(db, app.AuditRepo)
	app.Ledger = ledgerservice.NewService(ledgerservice.Params{
		DB: db, Log: log, Clock: clk,
		ReservationRepo: app.ReservationRepo, PaymentRepo: app.PaymentRepo, SaleRepo: app.SaleRepo,
	})
	app.Stays = stayservice.New(stayservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk, Repo: app.StayRepo, RoomRepo: app.RoomRepo, Ledger: app.Ledger,
	})
	app.Occupancy = occupancyservice.New(occupancyservice.Params{
		DB: db, Log: log, Clock: clk,
		Cfg:      config.Config{StatusCacheTTL: o.ttl},
		Redis:    o.redis,
		RoomRepo: app.RoomRepo, StayRepo: app.StayRepo, ReservationRepo: app.ReservationRepo,
	})
	app.Reservations = reservationservice.New(reservationservice.Params{
		DB: db, Log: log, Clock: clk, Repo: app.ReservationRepo, Ledger: app.Ledger, AuditSvc: app.Audit,
	})
	app.Payments = paymentservice.New(paymentservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk, Repo: app.PaymentRepo,
		ReservationRepo: app.ReservationRepo, Ledger: app.Ledger, Stays: app.Stays, AuditSvc: app.Audit,
		Metrics: app.Metrics, Events: app.Events,
	})
	app.Sales = saleservice.New(saleservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk, Repo: app.SaleRepo,
		ReservationRepo: app.ReservationRepo, Ledger: app.Ledger, AuditSvc: app.Audit,
	})
	app.Guests = guestservice.New(guestservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk, Repo: guestrepo.Provide(),
		ReservationRepo: app.ReservationRepo, RoomRepo: app.RoomRepo, CustomerRepo: customerRepo,
	})
	app.QuickRent = quickrentservice.New(quickrentservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk,
		RoomRepo: app.RoomRepo, ReservationRepo: app.ReservationRepo, PaymentRepo: app.PaymentRepo, CustomerRepo: customerRepo,
		Guests: app.Guests, Stays: app.Stays, Ledger: app.Ledger, AuditSvc: app.Audit,
		Metrics: app.Metrics, Events: app.Events,
	})
	app.Release = releaseservice.New(releaseservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk, Repo: app.ReleaseRepo,
		RoomRepo: app.RoomRepo, ReservationRepo: app.ReservationRepo, PaymentRepo: app.PaymentRepo, SaleRepo: app.SaleRepo,
		Guests: app.Guests, Stays: app.Stays, Ledger: app.Ledger, Occupancy: app.Occupancy, AuditSvc: app.Audit,
		Metrics: app.Metrics, Events: app.Events,
	})

	return app
}
