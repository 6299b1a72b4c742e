package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope is the body of every /api response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func errorEnvelope(message string) envelope {
	return envelope{Success: false, Error: message}
}
