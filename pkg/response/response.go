package response

import (
	"errors"
	"log"
	"net/http"

	"anoa.com/lesprivat/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// ResponseError standardized error response. Conflicts additionally expose
// the existing resource id and a Location hint so clients can follow it,
// mirroring the redirect-to-existing behaviour of the web UI this API
// replaced.
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	var conflict *apperror.ConflictError
	if errors.As(err, &conflict) {
		location := "/api/" + conflict.Resource + "s/" + conflict.ExistingID
		c.Header("Location", location)
		c.JSON(code, gin.H{
			"error":       conflict.Error(),
			"existing_id": conflict.ExistingID,
			"location":    location,
		})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
