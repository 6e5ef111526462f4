package repository

import (
	"context"
	"errors"
	"strings"

	"pdf-review-server/internal/apperror"
	"pdf-review-server/internal/constant"
	"pdf-review-server/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	*baseRepository
}

type CreateCommentParams struct {
	ParentID *uint
	Text     string
	Rect     *model.Rect
	Color    string
	Page     uint
}

// Create inserts a comment for the given project. A comment without a
// parent must carry its own rectangle; a reply without one inherits a copy
// of its parent's rectangle. The parent lookup and the insert run in one
// transaction so a reply cannot land under a parent that a concurrent
// subtree delete is removing.
func (cr CommentRepository) Create(ctx context.Context, tx *gorm.DB, projectID uint, params CreateCommentParams) (*model.Comment, error) {
	cr.logger.Debugf("Create comment for project %d with data: %+v \n", projectID, params)

	if strings.TrimSpace(params.Text) == "" {
		return nil, apperror.Validation("text is required", nil)
	}
	if strings.TrimSpace(params.Color) == "" {
		return nil, apperror.Validation("color is required", nil)
	}
	if params.Rect == nil && params.ParentID == nil {
		return nil, apperror.Validation("rect is required for comments without a parent", nil)
	}
	if params.Rect != nil {
		if err := params.Rect.Validate(); err != nil {
			return nil, apperror.Validation(err.Error(), nil)
		}
	}

	page := params.Page
	if page == 0 {
		page = constant.DEFAULT_COMMENT_PAGE
	}

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	comment := &model.Comment{
		ProjectID: projectID,
		ParentID:  params.ParentID,
		Text:      params.Text,
		Color:     params.Color,
		Page:      page,
	}

	err := cr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		var parent *model.Comment
		if params.ParentID != nil {
			// Scoping the lookup to the project makes a parent from
			// another project indistinguishable from a missing one.
			parent = &model.Comment{}
			if err := tx.Model(&model.Comment{}).Where("id = ? AND project_id = ?", *params.ParentID, projectID).
				First(parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperror.Validation("parent comment not found", err)
				}
				return err
			}
		}

		comment.SetRect(resolveRect(params.Rect, parent))

		return tx.Create(comment).Error
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// resolveRect picks the rectangle a new comment is stored with: its own
// when given, otherwise an exact copy of its parent's. Validation upstream
// guarantees a comment without a rect has a parent.
func resolveRect(own *model.Rect, parent *model.Comment) model.Rect {
	if own != nil {
		return *own
	}

	return parent.Rect()
}

// GetByProject returns the project's comments as a flat list in creation
// order. Callers rebuild the reply tree from parent_id links.
func (cr CommentRepository) GetByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]model.Comment, error) {
	cr.logger.Debugf("Get comments for project %d \n", projectID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var comments []model.Comment
	if err := db.WithContext(ctx).Model(&model.Comment{}).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	if comments == nil {
		comments = []model.Comment{}
	}

	return comments, nil
}

func (cr CommentRepository) UpdateText(ctx context.Context, tx *gorm.DB, commentID uint, text string) error {
	cr.logger.Debugf("Update text of comment %d \n", commentID)

	if strings.TrimSpace(text) == "" {
		return apperror.Validation("text is required", nil)
	}

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", commentID).Update("text", text)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (cr CommentRepository) UpdateApproval(ctx context.Context, tx *gorm.DB, commentID uint, approved bool) error {
	cr.logger.Debugf("Update approval of comment %d to %t \n", commentID, approved)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", commentID).Update("approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Delete removes the comment and its whole reply subtree in one
// transaction. The schema also declares ON DELETE CASCADE on parent_id; the
// explicit walk keeps the behavior independent of whether the database
// enforces self-referential cascades.
func (cr CommentRepository) Delete(ctx context.Context, tx *gorm.DB, commentID uint) error {
	cr.logger.Debugf("Delete comment %d and its replies \n", commentID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return cr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Model(&model.Comment{}).First(&model.Comment{}, commentID).Error; err != nil {
			return err
		}

		ids, err := collectSubtreeIDs(commentID, func(parents []uint) ([]uint, error) {
			var children []uint
			if err := tx.Model(&model.Comment{}).
				Where("parent_id IN ?", parents).
				Pluck("id", &children).Error; err != nil {
				return nil, err
			}

			return children, nil
		})
		if err != nil {
			return err
		}

		return tx.Where("id IN ?", ids).Delete(&model.Comment{}).Error
	})
}

// collectSubtreeIDs walks the reply tree breadth-first and returns the root
// id plus every transitive reply id. children lists the direct reply ids of
// all comments in a frontier.
func collectSubtreeIDs(rootID uint, children func(parents []uint) ([]uint, error)) ([]uint, error) {
	ids := []uint{rootID}
	frontier := []uint{rootID}
	for len(frontier) > 0 {
		next, err := children(frontier)
		if err != nil {
			return nil, err
		}

		ids = append(ids, next...)
		frontier = next
	}

	return ids, nil
}
