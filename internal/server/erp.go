package server

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) GetSalesTotal(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.erpSvc.SalesTotal(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetSalesByCategory(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.erpSvc.SalesByCategory(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetOverdueAmount(c *gin.Context) {
	r, err := s.parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.erpSvc.OverdueAmount(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetHotSellingItems(c *gin.Context) {
	limit, err := parseOptionalLimit(c.Query("limit"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.erpSvc.HotSelling(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetLowStockItems(c *gin.Context) {
	resp, err := s.erpSvc.LowStock(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}
