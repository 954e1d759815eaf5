package utils

import "github.com/gin-gonic/gin"

// Every API answer is {"success": bool, "data"|"error": ...}.

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONErrorWithData is a failure that still carries state the page needs,
// such as the form the user submitted.
func JSONErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{"success": false, "error": message, "data": data})
}
