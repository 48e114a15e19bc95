package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/railzwaylabs/frontdesk/internal/customer/domain"
	releasedomain "github.com/railzwaylabs/frontdesk/internal/release/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
)

type dateRequest struct {
	Date string `json:"date"`
}

type releaseRoomRequest struct {
	Date          string `json:"date"`
	PaymentMethod string `json:"payment_method"`
}

// CreateRoom
// POST /api/v1/rooms
func (s *Server) CreateRoom(c *gin.Context) {
	var req roomdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	room, err := s.roomSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, room)
}

// ListRooms
// GET /api/v1/rooms
func (s *Server) ListRooms(c *gin.Context) {
	rooms, err := s.roomSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, rooms, len(rooms))
}

// GetRoom
// GET /api/v1/rooms/:id
func (s *Server) GetRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	room, err := s.roomSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, room)
}

// GetRoomStatus
// GET /api/v1/rooms/:id/status?date=yyyy-mm-dd
func (s *Server) GetRoomStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	status, err := s.occupancySvc.GetOperationalStatus(c.Request.Context(), id, date)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, status)
}

// ListRoomStatus
// GET /api/v1/rooms/status?date=yyyy-mm-dd
func (s *Server) ListRoomStatus(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	statuses, err := s.occupancySvc.ListOperationalStatus(c.Request.Context(), date)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, statuses, len(statuses))
}

// MarkRoomCleaned
// POST /api/v1/rooms/:id/clean
func (s *Server) MarkRoomCleaned(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil || date.IsZero() {
		AbortWithError(c, invalidRequestError())
		return
	}

	room, err := s.roomSvc.MarkCleaned(c.Request.Context(), id, date)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, room)
}

// ReleaseRoom
// POST /api/v1/rooms/:id/release
func (s *Server) ReleaseRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req releaseRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.releaseSvc.Release(c.Request.Context(), releasedomain.Request{
		RoomID:        id,
		Date:          date,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, result)
}

// CreateCustomer
// POST /api/v1/customers
func (s *Server) CreateCustomer(c *gin.Context) {
	var req customerdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customer, err := s.customerSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, customer)
}

// GetCustomer
// GET /api/v1/customers/:id
func (s *Server) GetCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	customer, err := s.customerSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, customer)
}
