package service

import (
	"context"
	"errors"
	"io"
	"time"

	"pdf-review-server/internal/apperror"
	filestorage "pdf-review-server/internal/file_storage"
	"pdf-review-server/internal/model"
	"pdf-review-server/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectStore is the registry side of the annotation model: one row per
// project, bound to exactly one stored asset name.
type ProjectStore interface {
	Create(ctx context.Context, tx *gorm.DB, project *model.Project) (*model.Project, error)
	GetByUUID(ctx context.Context, tx *gorm.DB, uuid string) (*model.Project, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]repository.ProjectWithCount, error)
	Delete(ctx context.Context, tx *gorm.DB, uuid string) (*model.Project, error)
}

type CommentStore interface {
	Create(ctx context.Context, tx *gorm.DB, projectID uint, params repository.CreateCommentParams) (*model.Comment, error)
	GetByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]model.Comment, error)
	UpdateText(ctx context.Context, tx *gorm.DB, commentID uint, text string) error
	UpdateApproval(ctx context.Context, tx *gorm.DB, commentID uint, approved bool) error
	Delete(ctx context.Context, tx *gorm.DB, commentID uint) error
}

type CreateProjectInput struct {
	Name         string
	File         io.Reader
	Size         int64
	ContentType  string
	OriginalName string
}

type CreateCommentInput struct {
	ParentID *uint
	Text     string
	Rect     *model.Rect
	Color    string
	Page     uint
}

// AnnotationService coordinates the project registry, the comment store and
// the binary asset storage. It is the only component that touches more than
// one of them in a single operation.
type AnnotationService interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	GetProject(ctx context.Context, uuid string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]repository.ProjectWithCount, error)
	DeleteProject(ctx context.Context, uuid string) error
	RetrieveProjectFile(ctx context.Context, uuid string) (io.ReadCloser, filestorage.ObjectInfo, error)
	FileURL(ctx context.Context, storedName string) (string, error)

	CreateComment(ctx context.Context, projectUUID string, in CreateCommentInput) (*model.Comment, error)
	ListComments(ctx context.Context, projectUUID string) ([]model.Comment, error)
	UpdateCommentText(ctx context.Context, commentID uint, text string) error
	SetCommentApproval(ctx context.Context, commentID uint, approved bool) error
	DeleteComment(ctx context.Context, commentID uint) error
}

type DefaultAnnotationService struct {
	projects ProjectStore
	comments CommentStore
	storage  filestorage.AssetStorage
	logger   *zap.SugaredLogger
}

var _ AnnotationService = (*DefaultAnnotationService)(nil)

func NewAnnotationService(projects ProjectStore, comments CommentStore, storage filestorage.AssetStorage, logger *zap.SugaredLogger) *DefaultAnnotationService {
	return &DefaultAnnotationService{
		projects: projects,
		comments: comments,
		storage:  storage,
		logger:   logger,
	}
}

const presignedURLExpiry = 60 * time.Minute

// CreateProject stores the PDF bytes first and inserts the registry row
// second, so a visible row always has its asset. Neither store shares a
// transaction with the other: if the insert fails the already-stored bytes
// are deleted before the error surfaces, leaving no orphaned blob behind.
func (s *DefaultAnnotationService) CreateProject(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	storedName, err := s.storage.Store(ctx, in.File, in.Size, in.ContentType)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.Create(ctx, nil, &model.Project{
		Name:            in.Name,
		PdfFilename:     storedName,
		PdfOriginalName: in.OriginalName,
	})
	if err != nil {
		// Compensating action for the store above.
		if delErr := s.storage.Delete(ctx, storedName); delErr != nil {
			s.logger.Errorf("Failed to delete stored file %s after project creation failed: %v", storedName, delErr)
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("project identifier collision, please retry", err)
		}

		return nil, apperror.Internal("failed to create project", err)
	}

	return project, nil
}

func (s *DefaultAnnotationService) GetProject(ctx context.Context, uuid string) (*model.Project, error) {
	project, err := s.projects.GetByUUID(ctx, nil, uuid)
	if err != nil {
		return nil, translateProjectErr(err)
	}

	return project, nil
}

func (s *DefaultAnnotationService) ListProjects(ctx context.Context) ([]repository.ProjectWithCount, error) {
	projects, err := s.projects.GetAll(ctx, nil)
	if err != nil {
		return nil, apperror.Internal("failed to list projects", err)
	}

	return projects, nil
}

// DeleteProject removes the asset bytes before the registry row. A failed
// blob delete is logged and ignored so a half-gone file can never keep the
// project alive; the row delete cascades over the project's comments.
func (s *DefaultAnnotationService) DeleteProject(ctx context.Context, uuid string) error {
	project, err := s.projects.GetByUUID(ctx, nil, uuid)
	if err != nil {
		return translateProjectErr(err)
	}

	if err := s.storage.Delete(ctx, project.PdfFilename); err != nil {
		s.logger.Warnf("Failed to delete stored file %s for project %s, continuing: %v", project.PdfFilename, uuid, err)
	}

	if _, err := s.projects.Delete(ctx, nil, uuid); err != nil {
		return translateProjectErr(err)
	}

	return nil
}

func (s *DefaultAnnotationService) RetrieveProjectFile(ctx context.Context, uuid string) (io.ReadCloser, filestorage.ObjectInfo, error) {
	project, err := s.projects.GetByUUID(ctx, nil, uuid)
	if err != nil {
		return nil, filestorage.ObjectInfo{}, translateProjectErr(err)
	}

	return s.storage.Retrieve(ctx, project.PdfFilename)
}

func (s *DefaultAnnotationService) FileURL(ctx context.Context, storedName string) (string, error) {
	return s.storage.PresignedURL(ctx, storedName, presignedURLExpiry)
}

func (s *DefaultAnnotationService) CreateComment(ctx context.Context, projectUUID string, in CreateCommentInput) (*model.Comment, error) {
	project, err := s.projects.GetByUUID(ctx, nil, projectUUID)
	if err != nil {
		return nil, translateProjectErr(err)
	}

	comment, err := s.comments.Create(ctx, nil, project.ID, repository.CreateCommentParams{
		ParentID: in.ParentID,
		Text:     in.Text,
		Rect:     in.Rect,
		Color:    in.Color,
		Page:     in.Page,
	})
	if err != nil {
		return nil, translateCommentErr(err)
	}

	return comment, nil
}

func (s *DefaultAnnotationService) ListComments(ctx context.Context, projectUUID string) ([]model.Comment, error) {
	project, err := s.projects.GetByUUID(ctx, nil, projectUUID)
	if err != nil {
		return nil, translateProjectErr(err)
	}

	comments, err := s.comments.GetByProject(ctx, nil, project.ID)
	if err != nil {
		return nil, apperror.Internal("failed to list comments", err)
	}

	return comments, nil
}

func (s *DefaultAnnotationService) UpdateCommentText(ctx context.Context, commentID uint, text string) error {
	return translateCommentErr(s.comments.UpdateText(ctx, nil, commentID, text))
}

func (s *DefaultAnnotationService) SetCommentApproval(ctx context.Context, commentID uint, approved bool) error {
	return translateCommentErr(s.comments.UpdateApproval(ctx, nil, commentID, approved))
}

func (s *DefaultAnnotationService) DeleteComment(ctx context.Context, commentID uint) error {
	return translateCommentErr(s.comments.Delete(ctx, nil, commentID))
}

func translateProjectErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("project not found", err)
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return apperror.Internal("project operation failed", err)
}

func translateCommentErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("comment not found", err)
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return apperror.Internal("comment operation failed", err)
}
