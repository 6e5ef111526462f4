package controller

import (
	"fmt"
	"io"
	"net/http"

	"pdf-review-server/internal/model"
	"pdf-review-server/internal/service"
	"pdf-review-server/internal/util"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	*baseController
}

const (
	ErrPdfFileRequired = "pdf file is required"
	ErrUuidRequired    = "project uuid is required"
)

func (pc ProjectController) projectResponse(ctx *gin.Context, p *model.Project) gin.H {
	pdfURL, err := pc.app.Service.FileURL(ctx, p.PdfFilename)
	if err != nil {
		pc.app.Logger.Warnf("Failed to generate file URL for project %s: %v", p.UUID, err)
		pdfURL = ""
	}

	return gin.H{
		"id":                p.ID,
		"name":              p.Name,
		"uuid":              p.UUID,
		"url":               fmt.Sprintf("/%s/%s", p.Name, p.UUID),
		"pdf_url":           pdfURL,
		"pdf_original_name": p.PdfOriginalName,
		"created_at":        p.CreatedAt,
	}
}

func (pc ProjectController) CreateProject(ctx *gin.Context) {
	type Request struct {
		Name string `form:"name" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseError(ctx, http.StatusBadRequest, "project name is required")
		return
	}

	fileHeader, err := ctx.FormFile("pdf")
	if err != nil {
		util.ResponseError(ctx, http.StatusBadRequest, ErrPdfFileRequired)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.ResponseAppError(ctx, pc.app.Logger, err)
		return
	}
	defer file.Close()

	project, err := pc.app.Service.CreateProject(ctx, service.CreateProjectInput{
		Name:         body.Name,
		File:         file,
		Size:         fileHeader.Size,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		OriginalName: fileHeader.Filename,
	})
	if err != nil {
		util.ResponseAppError(ctx, pc.app.Logger, err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"project": pc.projectResponse(ctx, project),
	})
}

func (pc ProjectController) GetProjectByUUID(ctx *gin.Context) {
	uuid := ctx.Params.ByName("uuid")
	if uuid == "" {
		util.ResponseError(ctx, http.StatusBadRequest, ErrUuidRequired)
		return
	}

	project, err := pc.app.Service.GetProject(ctx, uuid)
	if err != nil {
		util.ResponseAppError(ctx, pc.app.Logger, err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"project": pc.projectResponse(ctx, project),
	})
}

func (pc ProjectController) ListProjects(ctx *gin.Context) {
	projects, err := pc.app.Service.ListProjects(ctx)
	if err != nil {
		util.ResponseAppError(ctx, pc.app.Logger, err)
		return
	}

	formatted := make([]gin.H, 0, len(projects))
	for _, p := range projects {
		res := pc.projectResponse(ctx, &p.Project)
		res["comment_count"] = p.CommentCount
		formatted = append(formatted, res)
	}

	util.ResponseSuccess(ctx, gin.H{
		"projects": formatted,
	})
}

func (pc ProjectController) DeleteProject(ctx *gin.Context) {
	uuid := ctx.Params.ByName("uuid")
	if uuid == "" {
		util.ResponseError(ctx, http.StatusBadRequest, ErrUuidRequired)
		return
	}

	if err := pc.app.Service.DeleteProject(ctx, uuid); err != nil {
		util.ResponseAppError(ctx, pc.app.Logger, err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"message": "project deleted",
	})
}

// ServeProjectFile streams the stored PDF bytes for viewers that cannot
// reach the presigned storage URL directly.
func (pc ProjectController) ServeProjectFile(ctx *gin.Context) {
	uuid := ctx.Params.ByName("uuid")
	if uuid == "" {
		util.ResponseError(ctx, http.StatusBadRequest, ErrUuidRequired)
		return
	}

	object, info, err := pc.app.Service.RetrieveProjectFile(ctx, uuid)
	if err != nil {
		util.ResponseAppError(ctx, pc.app.Logger, err)
		return
	}
	defer object.Close()

	ctx.Header("Content-Type", info.ContentType)
	ctx.Header("Content-Length", fmt.Sprintf("%d", info.Size))
	if _, err := io.Copy(ctx.Writer, object); err != nil {
		pc.app.Logger.Warnf("Failed to stream file for project %s: %v", uuid, err)
	}
}
