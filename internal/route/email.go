package route

import (
	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/controller"
)

func Emails(r *gin.RouterGroup, ec *controller.EmailController) {
	emails := r.Group("/emails")
	{
		emails.GET("/process", ec.Show)
		emails.POST("/process", ec.Process)
		emails.GET("/:messageId", ec.Detail)
	}
}
