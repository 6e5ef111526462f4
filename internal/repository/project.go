package repository

import (
	"context"

	"pdf-review-server/internal/constant"
	"pdf-review-server/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	*baseRepository
}

func (pr ProjectRepository) Create(ctx context.Context, tx *gorm.DB, project *model.Project) (*model.Project, error) {
	pr.logger.Debugf("Create project with data: %v \n", project)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Project{}).Create(project).Error; err != nil {
		return project, err
	}

	return project, nil
}

func (pr ProjectRepository) GetByUUID(ctx context.Context, tx *gorm.DB, uuid string) (*model.Project, error) {
	pr.logger.Debugf("Get project with uuid: %s \n", uuid)

	// A struct condition would drop the zero-valued predicate and match an
	// arbitrary row, so the empty uuid is rejected up front.
	if uuid == "" {
		return nil, gorm.ErrRecordNotFound
	}

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	project := &model.Project{}
	if err := db.WithContext(ctx).Model(&model.Project{}).
		Where("uuid = ?", uuid).First(project).Error; err != nil {
		return nil, err
	}

	return project, nil
}

type ProjectWithCount struct {
	model.Project
	CommentCount int64 `gorm:"column:comment_count" json:"comment_count"`
}

// GetAll returns every project newest-created first, each with the number
// of comments it owns.
func (pr ProjectRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]ProjectWithCount, error) {
	pr.logger.Debugf("Get all projects \n")

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var projects []ProjectWithCount
	if err := db.WithContext(ctx).Model(&model.Project{}).
		Select("projects.*, COUNT(comments.id) AS comment_count").
		Joins("LEFT JOIN comments ON comments.project_id = projects.id").
		Group("projects.id").
		// id breaks ties for rows created in the same timestamp tick
		Order("projects.created_at DESC, projects.id DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	if projects == nil {
		projects = []ProjectWithCount{}
	}

	return projects, nil
}

// Delete removes the project row and returns the removed project so the
// caller knows which stored asset belonged to it. Comments go with the row
// via the cascade on comments.project_id.
func (pr ProjectRepository) Delete(ctx context.Context, tx *gorm.DB, uuid string) (*model.Project, error) {
	pr.logger.Debugf("Delete project with uuid: %s \n", uuid)

	if uuid == "" {
		return nil, gorm.ErrRecordNotFound
	}

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var project *model.Project
	err := pr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		project = &model.Project{}
		if err := tx.Model(&model.Project{}).
			Where("uuid = ?", uuid).First(project).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Project{}, project.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}
