package route

import (
	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/controller"
)

func Documents(r *gin.RouterGroup, dc *controller.DocumentController) {
	documents := r.Group("/projects/:projectId/documents")
	{
		documents.POST("", dc.Upload)
		documents.GET("/:docId/view", dc.View)
		documents.POST("/:docId/view", dc.Extract)
		documents.GET("/:docId/download", dc.Download)
		documents.GET("/:docId/delete", dc.ConfirmDelete)
		documents.POST("/:docId/delete", dc.Delete)
	}
}
