package route

import (
	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/controller"
)

func Estimates(r *gin.RouterGroup, ec *controller.EstimateController) {
	estimates := r.Group("/projects/:projectId/estimate")
	{
		estimates.GET("/new", ec.New)
		estimates.POST("/new", ec.Submit)
	}
}
