package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const HeaderClientID = "X-Client-ID"

// clientID returns the calling client identifier, or an empty string
// when the header is missing or blank.
func clientID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(HeaderClientID))
}

func missingClientIDError() error {
	return newValidationError("client_id", "missing_client_id", "X-Client-ID header is required")
}
