package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	quickrentdomain "github.com/railzwaylabs/frontdesk/internal/quickrent/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	saledomain "github.com/railzwaylabs/frontdesk/internal/sale/domain"
	"github.com/shopspring/decimal"
)

type quickRentRequest struct {
	RoomID        snowflake.ID     `json:"room_id"`
	CheckInDate   string           `json:"check_in_date"`
	CheckOutDate  string           `json:"check_out_date"`
	PrincipalID   *snowflake.ID    `json:"principal_id"`
	AdditionalIDs []snowflake.ID   `json:"additional_ids"`
	ManualTotal   *decimal.Decimal `json:"manual_total"`
	Deposit       decimal.Decimal  `json:"deposit"`
	PaymentMethod string           `json:"payment_method"`
	Notes         string           `json:"notes"`
}

type moneyRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Note   string          `json:"note"`
}

type saleRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type overrideTotalRequest struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Reason      string          `json:"reason"`
}

// CreateQuickRent
// POST /api/v1/quick-rents
func (s *Server) CreateQuickRent(c *gin.Context) {
	var req quickRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.quickRentSvc.Create(c.Request.Context(), quickrentdomain.Request{
		RoomID:        req.RoomID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		PrincipalID:   req.PrincipalID,
		AdditionalIDs: req.AdditionalIDs,
		ManualTotal:   req.ManualTotal,
		Deposit:       req.Deposit,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, result)
}

// GetReservation
// GET /api/v1/reservations/:id
func (s *Server) GetReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	reservation, err := s.reservationSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, reservation)
}

// GetLedger
// GET /api/v1/reservations/:id/ledger
func (s *Server) GetLedger(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	l, err := s.ledgerSvc.GetLedger(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, l)
}

// OverrideTotal
// POST /api/v1/reservations/:id/total-override
func (s *Server) OverrideTotal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req overrideTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	reservation, err := s.reservationSvc.OverrideTotal(c.Request.Context(), reservationdomain.OverrideTotalRequest{
		ReservationID: id,
		TotalAmount:   req.TotalAmount,
		Reason:        req.Reason,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, reservation)
}

// ListPayments
// GET /api/v1/reservations/:id/payments
func (s *Server) ListPayments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	payments, err := s.paymentSvc.List(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, payments, len(payments))
}

// RegisterPayment
// POST /api/v1/reservations/:id/payments
func (s *Server) RegisterPayment(c *gin.Context) {
	id, req, ok := s.bindMoney(c)
	if !ok {
		return
	}

	payment, err := s.paymentSvc.RegisterPayment(c.Request.Context(), paymentdomain.RegisterRequest{
		ReservationID: id,
		Amount:        req.Amount,
		Method:        req.Method,
		Note:          req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, payment)
}

// RegisterRefund
// POST /api/v1/reservations/:id/refunds
func (s *Server) RegisterRefund(c *gin.Context) {
	id, req, ok := s.bindMoney(c)
	if !ok {
		return
	}

	refund, err := s.paymentSvc.RegisterRefund(c.Request.Context(), paymentdomain.RegisterRequest{
		ReservationID: id,
		Amount:        req.Amount,
		Method:        req.Method,
		Note:          req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, refund)
}

func (s *Server) bindMoney(c *gin.Context) (snowflake.ID, moneyRequest, bool) {
	var req moneyRequest
	id, ok := pathID(c, "id")
	if !ok {
		return 0, req, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return 0, req, false
	}
	return id, req, true
}

// ListSales
// GET /api/v1/reservations/:id/sales
func (s *Server) ListSales(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sales, err := s.saleSvc.List(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, sales, len(sales))
}

// RegisterSale
// POST /api/v1/reservations/:id/sales
func (s *Server) RegisterSale(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sale, err := s.saleSvc.Register(c.Request.Context(), saledomain.RegisterRequest{
		ReservationID: id,
		Description:   req.Description,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, sale)
}

// MarkSalePaid
// POST /api/v1/sales/:id/pay
func (s *Server) MarkSalePaid(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sale, err := s.saleSvc.MarkPaid(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, sale)
}
