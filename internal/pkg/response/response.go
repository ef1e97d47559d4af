// Package response writes the JSON envelope every endpoint answers with:
// {"success": true, "data": ...} on the happy path and
// {"success": false, "error": {"code", "message", "details"}} otherwise.
// The code field is the machine-readable error taxonomy clients switch on.
package response

import "github.com/gin-gonic/gin"

// Success writes the data envelope with the given HTTP status.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes an error envelope carrying a taxonomy code and a
// human-readable message.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, errorEnvelope(gin.H{
		"code":    code,
		"message": message,
	}))
}

// ErrorWithDetails is Error with a structured details payload, used for
// field-level validation maps and slot-conflict intervals.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, errorEnvelope(gin.H{
		"code":    code,
		"message": message,
		"details": details,
	}))
}

func errorEnvelope(body gin.H) gin.H {
	return gin.H{
		"success": false,
		"error":   body,
	}
}
