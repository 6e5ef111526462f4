package route

import (
	"pdf-review-server/internal/controller"

	"github.com/gin-gonic/gin"
)

func V1_Comments(r *gin.RouterGroup, cc *controller.CommentController) {
	v1 := r.Group("/v1/comments")
	{
		v1.PUT("/:commentId", cc.UpdateComment)
		v1.PUT("/:commentId/approve", cc.ApproveComment)
		v1.DELETE("/:commentId", cc.DeleteComment)
	}
}
