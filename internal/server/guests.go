package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	guestdomain "github.com/railzwaylabs/frontdesk/internal/guest/domain"
)

type assignGuestsRequest struct {
	PrincipalID   *snowflake.ID  `json:"principal_id"`
	AdditionalIDs []snowflake.ID `json:"additional_ids"`
}

// GetGuests
// GET /api/v1/reservation-rooms/:id/guests
func (s *Server) GetGuests(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	assignment, err := s.guestSvc.GetAssignment(c.Request.Context(), nil, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, assignment)
}

// AssignGuests
// PUT /api/v1/reservation-rooms/:id/guests
func (s *Server) AssignGuests(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req assignGuestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	assignment, err := s.guestSvc.AssignGuests(c.Request.Context(), guestdomain.AssignRequest{
		ReservationRoomID: id,
		PrincipalID:       req.PrincipalID,
		AdditionalIDs:     req.AdditionalIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, assignment)
}

// AddGuest
// POST /api/v1/reservation-rooms/:id/guests/:customer_id
func (s *Server) AddGuest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	customerID, ok := pathID(c, "customer_id")
	if !ok {
		return
	}

	added, err := s.guestSvc.AddAdditionalGuest(c.Request.Context(), nil, id, customerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": gin.H{"added": added}})
}

// RemoveGuest
// DELETE /api/v1/reservation-rooms/:id/guests/:customer_id
func (s *Server) RemoveGuest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	customerID, ok := pathID(c, "customer_id")
	if !ok {
		return
	}

	if err := s.guestSvc.RemoveAdditionalGuest(c.Request.Context(), id, customerID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
