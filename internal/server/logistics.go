package server

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) GetShipmentSummary(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.logisticsSvc.ShipmentSummary(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetDeliverySummary(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.logisticsSvc.DeliverySummary(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) ListDeliveries(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.logisticsSvc.DeliveryList(c.Request.Context(), r, c.Query("type"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}
