package route

import (
	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/controller"
)

func Projects(r *gin.RouterGroup, pc *controller.ProjectController) {
	projects := r.Group("/projects")
	{
		projects.GET("/new", pc.NewForm)
		projects.POST("/new", pc.Create)
		projects.GET("/:projectId", pc.Detail)
		projects.GET("/:projectId/edit", pc.EditForm)
		projects.POST("/:projectId/edit", pc.Update)
		projects.GET("/:projectId/delete", pc.ConfirmDelete)
		projects.POST("/:projectId/delete", pc.Delete)
	}
}
