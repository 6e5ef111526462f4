package route

import (
	"pdf-review-server/internal/controller"

	"github.com/gin-gonic/gin"
)

func V1_Projects(r *gin.RouterGroup, pc *controller.ProjectController, cc *controller.CommentController) {
	v1 := r.Group("/v1/projects")
	{
		v1.POST("", pc.CreateProject)
		v1.GET("", pc.ListProjects)
		v1.GET("/:uuid", pc.GetProjectByUUID)
		v1.DELETE("/:uuid", pc.DeleteProject)
		v1.GET("/:uuid/file", pc.ServeProjectFile)
		v1.GET("/:uuid/comments", cc.ListComments)
		v1.POST("/:uuid/comments", cc.CreateComment)
	}
}
