package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
)

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorHandler renders the last error attached with c.Error. Internal errors are logged with
// their cause and answered with a generic message.
func ErrorHandler(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperror.As(c.Errors.Last().Err)
		code := appErr.Code
		if code == 0 {
			code = http.StatusInternalServerError
		}

		message := appErr.Message
		if appErr.Kind == apperror.InternalKind {
			log.WithFields(logrus.Fields{
				"request_id": GetRequestID(c),
				"path":       c.Request.URL.Path,
			}).Errorf("%v", appErr)
			message = "internal server error"
		}

		c.JSON(code, gin.H{"error": errorBody{Message: message, Status: code}})
	}
}

// Recovery turns a panic into a 500 in the usual envelope.
func Recovery(log *logrus.Entry) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.WithField("request_id", GetRequestID(c)).Errorf("panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": errorBody{Message: "internal server error", Status: http.StatusInternalServerError},
		})
	})
}

// NoRoute answers unknown paths in the same error envelope.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": errorBody{Message: "route not found", Status: http.StatusNotFound}})
}
