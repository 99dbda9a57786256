// utils/responses.go
package utils

import (
	"math/rand"

	"github.com/gin-gonic/gin"
)

// RespondWithError sends a JSON error body with the given status
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

const randomChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns a short random uppercase token
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = randomChars[rand.Intn(len(randomChars))]
	}
	return string(b)
}
