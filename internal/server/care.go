package server

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) GetTotalTickets(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.careSvc.TotalTickets(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetTicketsByCategory(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.careSvc.TicketsByCategory(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetTicketTrends(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.careSvc.TicketTrends(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}
