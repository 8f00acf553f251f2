package route

import (
	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/controller"
)

func Proposals(r *gin.RouterGroup, pc *controller.ProposalController) {
	proposals := r.Group("/projects/:projectId/proposal")
	{
		proposals.GET("/new", pc.New)
		proposals.POST("/new", pc.Submit)
	}
}
