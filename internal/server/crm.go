package server

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) GetLeadReporting(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.crmSvc.LeadReporting(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetLeadsByStatus(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.crmSvc.LeadsByStatus(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

// ListCustomers returns the lead rows behind the customers table.
func (s *Server) ListCustomers(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.crmSvc.Customers(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}
