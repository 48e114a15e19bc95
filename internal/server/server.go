package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	"github.com/railzwaylabs/frontdesk/internal/config"
	customerdomain "github.com/railzwaylabs/frontdesk/internal/customer/domain"
	guestdomain "github.com/railzwaylabs/frontdesk/internal/guest/domain"
	ledgerdomain "github.com/railzwaylabs/frontdesk/internal/ledger/domain"
	occupancydomain "github.com/railzwaylabs/frontdesk/internal/occupancy/domain"
	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	quickrentdomain "github.com/railzwaylabs/frontdesk/internal/quickrent/domain"
	releasedomain "github.com/railzwaylabs/frontdesk/internal/release/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	saledomain "github.com/railzwaylabs/frontdesk/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(Start),
)

type Params struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	Registry *prometheus.Registry

	RoomSvc        roomdomain.Service
	CustomerSvc    customerdomain.Service
	OccupancySvc   occupancydomain.Service
	ReservationSvc reservationdomain.Service
	LedgerSvc      ledgerdomain.Service
	PaymentSvc     paymentdomain.Service
	SaleSvc        saledomain.Service
	GuestSvc       guestdomain.Service
	QuickRentSvc   quickrentdomain.Service
	ReleaseSvc     releasedomain.Service
	AuditExportSvc auditdomain.ExportService
}

type Server struct {
	cfg      config.Config
	log      *zap.Logger
	registry *prometheus.Registry
	engine   *gin.Engine

	roomSvc        roomdomain.Service
	customerSvc    customerdomain.Service
	occupancySvc   occupancydomain.Service
	reservationSvc reservationdomain.Service
	ledgerSvc      ledgerdomain.Service
	paymentSvc     paymentdomain.Service
	saleSvc        saledomain.Service
	guestSvc       guestdomain.Service
	quickRentSvc   quickrentdomain.Service
	releaseSvc     releasedomain.Service
	auditExportSvc auditdomain.ExportService
}

func New(p Params) *Server {
	if p.Cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:            p.Cfg,
		log:            p.Log.Named("server"),
		registry:       p.Registry,
		engine:         gin.New(),
		roomSvc:        p.RoomSvc,
		customerSvc:    p.CustomerSvc,
		occupancySvc:   p.OccupancySvc,
		reservationSvc: p.ReservationSvc,
		ledgerSvc:      p.LedgerSvc,
		paymentSvc:     p.PaymentSvc,
		saleSvc:        p.SaleSvc,
		guestSvc:       p.GuestSvc,
		quickRentSvc:   p.QuickRentSvc,
		releaseSvc:     p.ReleaseSvc,
		auditExportSvc: p.AuditExportSvc,
	}

	if p.Cfg.JWTSecret == "" {
		s.log.Warn("JWT_SECRET is empty, requests run as the system actor")
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1", s.ActorRequired(), s.AsOf())

	api.POST("/rooms", s.CreateRoom)
	api.GET("/rooms", s.ListRooms)
	api.GET("/rooms/status", s.ListRoomStatus)
	api.GET("/rooms/:id", s.GetRoom)
	api.GET("/rooms/:id/status", s.GetRoomStatus)
	api.POST("/rooms/:id/clean", s.MarkRoomCleaned)
	api.POST("/rooms/:id/release", s.ReleaseRoom)

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomer)

	api.POST("/quick-rents", s.CreateQuickRent)

	api.GET("/reservations/:id", s.GetReservation)
	api.GET("/reservations/:id/ledger", s.GetLedger)
	api.POST("/reservations/:id/total-override", s.OverrideTotal)
	api.GET("/reservations/:id/payments", s.ListPayments)
	api.POST("/reservations/:id/payments", s.RegisterPayment)
	api.POST("/reservations/:id/refunds", s.RegisterRefund)
	api.GET("/reservations/:id/sales", s.ListSales)
	api.POST("/reservations/:id/sales", s.RegisterSale)
	api.POST("/sales/:id/pay", s.MarkSalePaid)

	api.GET("/reservation-rooms/:id/guests", s.GetGuests)
	api.PUT("/reservation-rooms/:id/guests", s.AssignGuests)
	api.POST("/reservation-rooms/:id/guests/:customer_id", s.AddGuest)
	api.DELETE("/reservation-rooms/:id/guests/:customer_id", s.RemoveGuest)

	api.GET("/releases", s.ListReleaseHistory)
	api.GET("/releases/export", s.ExportReleaseHistory)
	api.GET("/audit/export", s.ExportAuditLogs)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.Last().Error()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			s.log.Error("request failed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			s.log.Info("request rejected", fields...)
		default:
			s.log.Debug("request served", fields...)
		}
	}
}

// Start binds the HTTP listener for the lifetime of the fx app.
func Start(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			s.log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
