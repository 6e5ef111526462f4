package controller

import (
	appcontext "pdf-review-server/internal/app_context"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index   *IndexController
	Project *ProjectController
	Comment *CommentController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:   &IndexController{baseController: bc},
		Project: &ProjectController{baseController: bc},
		Comment: &CommentController{baseController: bc},
	}
}
