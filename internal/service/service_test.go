package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"pdf-review-server/internal/apperror"
	filestorage "pdf-review-server/internal/file_storage"
	"pdf-review-server/internal/model"
	"pdf-review-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) Create(ctx context.Context, tx *gorm.DB, project *model.Project) (*model.Project, error) {
	args := m.Called(ctx, tx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) GetByUUID(ctx context.Context, tx *gorm.DB, uuid string) (*model.Project, error) {
	args := m.Called(ctx, tx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) GetAll(ctx context.Context, tx *gorm.DB) ([]repository.ProjectWithCount, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ProjectWithCount), args.Error(1)
}

func (m *MockProjectStore) Delete(ctx context.Context, tx *gorm.DB, uuid string) (*model.Project, error) {
	args := m.Called(ctx, tx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) Create(ctx context.Context, tx *gorm.DB, projectID uint, params repository.CreateCommentParams) (*model.Comment, error) {
	args := m.Called(ctx, tx, projectID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentStore) GetByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]model.Comment, error) {
	args := m.Called(ctx, tx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentStore) UpdateText(ctx context.Context, tx *gorm.DB, commentID uint, text string) error {
	args := m.Called(ctx, tx, commentID, text)
	return args.Error(0)
}

func (m *MockCommentStore) UpdateApproval(ctx context.Context, tx *gorm.DB, commentID uint, approved bool) error {
	args := m.Called(ctx, tx, commentID, approved)
	return args.Error(0)
}

func (m *MockCommentStore) Delete(ctx context.Context, tx *gorm.DB, commentID uint) error {
	args := m.Called(ctx, tx, commentID)
	return args.Error(0)
}

type MockAssetStorage struct {
	mock.Mock
}

func (m *MockAssetStorage) Store(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockAssetStorage) Retrieve(ctx context.Context, objectName string) (io.ReadCloser, filestorage.ObjectInfo, error) {
	args := m.Called(ctx, objectName)
	if args.Get(0) == nil {
		return nil, filestorage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(filestorage.ObjectInfo), args.Error(2)
}

func (m *MockAssetStorage) Delete(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockAssetStorage) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

func newTestService() (*DefaultAnnotationService, *MockProjectStore, *MockCommentStore, *MockAssetStorage) {
	projects := new(MockProjectStore)
	comments := new(MockCommentStore)
	storage := new(MockAssetStorage)
	svc := NewAnnotationService(projects, comments, storage, zap.NewNop().Sugar())
	return svc, projects, comments, storage
}

func TestCreateProject_Success(t *testing.T) {
	svc, projects, _, storage := newTestService()
	ctx := context.Background()

	storage.On("Store", ctx, mock.Anything, int64(42), "application/pdf").Return("123_abc.pdf", nil)
	projects.On("Create", ctx, mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
		return p.Name == "review" && p.PdfFilename == "123_abc.pdf" && p.PdfOriginalName == "draft.pdf"
	})).Return(&model.Project{
		BaseModel:       model.BaseModel{ID: 1},
		Name:            "review",
		UUID:            "some-uuid",
		PdfFilename:     "123_abc.pdf",
		PdfOriginalName: "draft.pdf",
	}, nil)

	project, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:         "review",
		File:         strings.NewReader("%PDF-"),
		Size:         42,
		ContentType:  "application/pdf",
		OriginalName: "draft.pdf",
	})

	assert.NoError(t, err)
	assert.Equal(t, "123_abc.pdf", project.PdfFilename)
	assert.NotEmpty(t, project.UUID)
	projects.AssertExpectations(t)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateProject_RegistryFailureDeletesStoredAsset(t *testing.T) {
	svc, projects, _, storage := newTestService()
	ctx := context.Background()

	storage.On("Store", ctx, mock.Anything, int64(42), "application/pdf").Return("123_abc.pdf", nil)
	projects.On("Create", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("insert failed"))
	storage.On("Delete", ctx, "123_abc.pdf").Return(nil)

	_, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:        "review",
		File:        strings.NewReader("%PDF-"),
		Size:        42,
		ContentType: "application/pdf",
	})

	assert.Error(t, err)
	storage.AssertCalled(t, "Delete", ctx, "123_abc.pdf")
}

func TestCreateProject_DuplicateKeyIsConflict(t *testing.T) {
	svc, projects, _, storage := newTestService()
	ctx := context.Background()

	storage.On("Store", ctx, mock.Anything, mock.Anything, mock.Anything).Return("123_abc.pdf", nil)
	projects.On("Create", ctx, mock.Anything, mock.Anything).Return(nil, gorm.ErrDuplicatedKey)
	storage.On("Delete", ctx, "123_abc.pdf").Return(nil)

	_, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:        "review",
		File:        strings.NewReader("%PDF-"),
		Size:        1,
		ContentType: "application/pdf",
	})

	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	storage.AssertCalled(t, "Delete", ctx, "123_abc.pdf")
}

func TestCreateProject_InvalidAssetNeverTouchesRegistry(t *testing.T) {
	svc, projects, _, storage := newTestService()
	ctx := context.Background()

	storage.On("Store", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("", apperror.Validation("only PDF files are allowed", nil))

	_, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:        "review",
		File:        strings.NewReader("not a pdf"),
		Size:        9,
		ContentType: "text/plain",
	})

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteProject_AssetDeleteIsBestEffort(t *testing.T) {
	svc, projects, _, storage := newTestService()
	ctx := context.Background()

	project := &model.Project{BaseModel: model.BaseModel{ID: 7}, UUID: "u-1", PdfFilename: "123_abc.pdf"}
	projects.On("GetByUUID", ctx, mock.Anything, "u-1").Return(project, nil)
	storage.On("Delete", ctx, "123_abc.pdf").Return(apperror.Asset("storage operation failed", errors.New("io error")))
	projects.On("Delete", ctx, mock.Anything, "u-1").Return(project, nil)

	err := svc.DeleteProject(ctx, "u-1")

	assert.NoError(t, err)
	projects.AssertCalled(t, "Delete", ctx, mock.Anything, "u-1")
}

func TestDeleteProject_NotFound(t *testing.T) {
	svc, projects, _, storage := newTestService()
	ctx := context.Background()

	projects.On("GetByUUID", ctx, mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteProject(ctx, "missing")

	assert.True(t, apperror.IsNotFound(err))
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateComment_ResolvesProjectUUID(t *testing.T) {
	svc, projects, comments, _ := newTestService()
	ctx := context.Background()

	projects.On("GetByUUID", ctx, mock.Anything, "u-1").Return(&model.Project{BaseModel: model.BaseModel{ID: 42}, UUID: "u-1"}, nil)
	comments.On("Create", ctx, mock.Anything, uint(42), mock.MatchedBy(func(p repository.CreateCommentParams) bool {
		return p.Text == "looks wrong" && p.Rect != nil && p.Rect.X == 10
	})).Return(&model.Comment{BaseModel: model.BaseModel{ID: 5}, ProjectID: 42, Text: "looks wrong"}, nil)

	comment, err := svc.CreateComment(ctx, "u-1", CreateCommentInput{
		Text:  "looks wrong",
		Rect:  &model.Rect{X: 10, Y: 20, Width: 30, Height: 40},
		Color: "#ff0000",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(5), comment.ID)
	comments.AssertExpectations(t)
}

func TestCreateComment_ProjectNotFound(t *testing.T) {
	svc, projects, comments, _ := newTestService()
	ctx := context.Background()

	projects.On("GetByUUID", ctx, mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateComment(ctx, "missing", CreateCommentInput{
		Text:  "hello",
		Rect:  &model.Rect{X: 1, Y: 1, Width: 1, Height: 1},
		Color: "#fff",
	})

	assert.True(t, apperror.IsNotFound(err))
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetCommentApproval_NotFound(t *testing.T) {
	svc, _, comments, _ := newTestService()
	ctx := context.Background()

	comments.On("UpdateApproval", ctx, mock.Anything, uint(99), true).Return(gorm.ErrRecordNotFound)

	err := svc.SetCommentApproval(ctx, 99, true)

	assert.True(t, apperror.IsNotFound(err))
}

func TestListComments_EmptyProject(t *testing.T) {
	svc, projects, comments, _ := newTestService()
	ctx := context.Background()

	projects.On("GetByUUID", ctx, mock.Anything, "u-1").Return(&model.Project{BaseModel: model.BaseModel{ID: 42}}, nil)
	comments.On("GetByProject", ctx, mock.Anything, uint(42)).Return([]model.Comment{}, nil)

	list, err := svc.ListComments(ctx, "u-1")

	assert.NoError(t, err)
	assert.NotNil(t, list)
	assert.Len(t, list, 0)
}
