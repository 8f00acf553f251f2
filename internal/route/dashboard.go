package route

import (
	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/controller"
)

func Dashboard(r *gin.RouterGroup, dc *controller.DashboardController) {
	r.GET("/", dc.Index)
}
