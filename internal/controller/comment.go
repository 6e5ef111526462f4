package controller

import (
	"net/http"
	"strconv"

	"pdf-review-server/internal/model"
	"pdf-review-server/internal/service"
	"pdf-review-server/internal/util"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	*baseController
}

const (
	ErrCommentIdRequired = "comment id is required"
	ErrTextRequired      = "text is required"
)

func commentResponse(c *model.Comment) gin.H {
	return gin.H{
		"id":         c.ID,
		"text":       c.Text,
		"rect":       c.Rect(),
		"color":      c.Color,
		"approved":   c.Approved,
		"page":       c.Page,
		"parent_id":  c.ParentID,
		"created_at": c.CreatedAt,
	}
}

func parseCommentID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Params.ByName("commentId"), 10, 64)
	if err != nil {
		util.ResponseError(ctx, http.StatusBadRequest, ErrCommentIdRequired)
		return 0, false
	}

	return uint(id), true
}

func (cc CommentController) CreateComment(ctx *gin.Context) {
	type Request struct {
		Text     string      `json:"text"`
		Rect     *model.Rect `json:"rect"`
		Color    string      `json:"color"`
		Page     uint        `json:"page"`
		ParentID *uint       `json:"parent_id"`
	}
	var body Request

	uuid := ctx.Params.ByName("uuid")
	if uuid == "" {
		util.ResponseError(ctx, http.StatusBadRequest, ErrUuidRequired)
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseError(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := cc.app.Service.CreateComment(ctx, uuid, service.CreateCommentInput{
		ParentID: body.ParentID,
		Text:     body.Text,
		Rect:     body.Rect,
		Color:    body.Color,
		Page:     body.Page,
	})
	if err != nil {
		util.ResponseAppError(ctx, cc.app.Logger, err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"comment": commentResponse(comment),
	})
}

func (cc CommentController) ListComments(ctx *gin.Context) {
	uuid := ctx.Params.ByName("uuid")
	if uuid == "" {
		util.ResponseError(ctx, http.StatusBadRequest, ErrUuidRequired)
		return
	}

	comments, err := cc.app.Service.ListComments(ctx, uuid)
	if err != nil {
		util.ResponseAppError(ctx, cc.app.Logger, err)
		return
	}

	formatted := make([]gin.H, 0, len(comments))
	for i := range comments {
		formatted = append(formatted, commentResponse(&comments[i]))
	}

	util.ResponseSuccess(ctx, gin.H{
		"comments": formatted,
	})
}

func (cc CommentController) UpdateComment(ctx *gin.Context) {
	type Request struct {
		Text string `json:"text"`
	}
	var body Request

	commentID, ok := parseCommentID(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseError(ctx, http.StatusBadRequest, ErrTextRequired)
		return
	}

	if err := cc.app.Service.UpdateCommentText(ctx, commentID, body.Text); err != nil {
		util.ResponseAppError(ctx, cc.app.Logger, err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"message": "comment updated",
	})
}

func (cc CommentController) ApproveComment(ctx *gin.Context) {
	type Request struct {
		Approved bool `json:"approved"`
	}
	var body Request

	commentID, ok := parseCommentID(ctx)
	if !ok {
		return
	}

	// An absent body counts as {"approved": false}, matching how the
	// approval flag defaults everywhere else.
	_ = ctx.ShouldBindJSON(&body)

	if err := cc.app.Service.SetCommentApproval(ctx, commentID, body.Approved); err != nil {
		util.ResponseAppError(ctx, cc.app.Logger, err)
		return
	}

	message := "approval removed"
	if body.Approved {
		message = "comment approved"
	}

	util.ResponseSuccess(ctx, gin.H{
		"message": message,
	})
}

func (cc CommentController) DeleteComment(ctx *gin.Context) {
	commentID, ok := parseCommentID(ctx)
	if !ok {
		return
	}

	if err := cc.app.Service.DeleteComment(ctx, commentID); err != nil {
		util.ResponseAppError(ctx, cc.app.Logger, err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"message": "comment deleted",
	})
}
