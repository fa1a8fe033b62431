package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
)

const (
	repoID    = "3b241101-e2bb-4255-8caf-4136c566a962"
	releaseID = "9f0e6c44-64b8-4a8e-bb6e-2f4a0c3d1e55"
)

// MockRepositoryService is a mock implementation of github.RepositoryService
type MockRepositoryService struct {
	mock.Mock
}

func (m *MockRepositoryService) ListRepositories(ctx context.Context, withReleases bool) ([]*models.Repository, error) {
	args := m.Called(ctx, withReleases)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Repository), args.Error(1)
}

func (m *MockRepositoryService) GetRepository(ctx context.Context, id string) (*models.Repository, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repository), args.Error(1)
}

func (m *MockRepositoryService) RemoveRepository(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepositoryService) ListReleases(ctx context.Context, repositoryID string) ([]*models.Release, error) {
	args := m.Called(ctx, repositoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Release), args.Error(1)
}

// MockSyncService is a mock implementation of github.SyncService
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) TrackRepository(ctx context.Context, owner, name string) (*models.Repository, bool, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.Repository), args.Bool(1), args.Error(2)
}

func (m *MockSyncService) SyncRepository(ctx context.Context, id string) (*models.Repository, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repository), args.Error(1)
}

func (m *MockSyncService) SyncAllRepositories(ctx context.Context) (*models.BulkSyncResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkSyncResult), args.Error(1)
}

// MockSeenManager is a mock implementation of github.SeenManager
type MockSeenManager struct {
	mock.Mock
}

func (m *MockSeenManager) MarkAllReleasesSeen(ctx context.Context, repositoryID string) (*models.Repository, error) {
	args := m.Called(ctx, repositoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repository), args.Error(1)
}

func (m *MockSeenManager) MarkReleaseSeen(ctx context.Context, releaseID string) (*models.Release, error) {
	args := m.Called(ctx, releaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Release), args.Error(1)
}

func (m *MockSeenManager) MarkReleaseUnseen(ctx context.Context, releaseID string) (*models.Release, error) {
	args := m.Called(ctx, releaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Release), args.Error(1)
}

// MockPinger is a mock implementation of Pinger
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type testMocks struct {
	repos  *MockRepositoryService
	syncs  *MockSyncService
	seen   *MockSeenManager
	pinger *MockPinger
}

func (m *testMocks) assertExpectations(t *testing.T) {
	m.repos.AssertExpectations(t)
	m.syncs.AssertExpectations(t)
	m.seen.AssertExpectations(t)
	m.pinger.AssertExpectations(t)
}

func setupTestRouter(t *testing.T) (*gin.Engine, *testMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mocks := &testMocks{
		repos:  new(MockRepositoryService),
		syncs:  new(MockSyncService),
		seen:   new(MockSeenManager),
		pinger: new(MockPinger),
	}
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil)) // Discard logs during tests

	handler := NewHandler(mocks.repos, mocks.syncs, mocks.seen, mocks.pinger, logger)
	return SetupRouter(handler, logger), mocks
}

func perform(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Error
}

func sampleRepository() *models.Repository {
	return &models.Repository{
		BaseModel:         models.BaseModel{ID: repoID},
		Owner:             "golang",
		Name:              "go",
		FullName:          "golang/go",
		HasUnseenReleases: true,
		Releases: []*models.Release{
			{
				BaseModel:    models.BaseModel{ID: releaseID},
				RepositoryID: repoID,
				TagName:      "go1.23.0",
				PublishedAt:  time.Date(2024, time.August, 13, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestListRepositories(t *testing.T) {
	t.Run("includes releases by default", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.repos.On("ListRepositories", mock.Anything, true).
			Return([]*models.Repository{sampleRepository()}, nil)

		w := perform(router, http.MethodGet, "/api/v1/repositories", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response []*models.Repository
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response, 1)
		assert.Equal(t, "golang/go", response[0].FullName)
		assert.Len(t, response[0].Releases, 1)
		mocks.assertExpectations(t)
	})

	t.Run("include_releases=false", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.repos.On("ListRepositories", mock.Anything, false).Return([]*models.Repository{}, nil)

		w := perform(router, http.MethodGet, "/api/v1/repositories?include_releases=false", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
		mocks.assertExpectations(t)
	})

	t.Run("malformed include_releases", func(t *testing.T) {
		router, mocks := setupTestRouter(t)

		w := perform(router, http.MethodGet, "/api/v1/repositories?include_releases=maybe", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid include_releases parameter", decodeError(t, w))
		mocks.assertExpectations(t)
	})
}

func TestTrackRepository(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setup          func(m *testMocks)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "owner and name",
			body: TrackRepositoryRequest{Owner: "golang", Name: "go"},
			setup: func(m *testMocks) {
				m.syncs.On("TrackRepository", mock.Anything, "golang", "go").Return(sampleRepository(), true, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "url",
			body: TrackRepositoryRequest{URL: "https://github.com/golang/go"},
			setup: func(m *testMocks) {
				m.syncs.On("TrackRepository", mock.Anything, "golang", "go").Return(sampleRepository(), true, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "already tracked",
			body: TrackRepositoryRequest{Owner: "golang", Name: "go"},
			setup: func(m *testMocks) {
				m.syncs.On("TrackRepository", mock.Anything, "golang", "go").Return(sampleRepository(), false, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing fields",
			body:           TrackRepositoryRequest{Owner: "golang"},
			setup:          func(m *testMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "owner and name, or url, are required",
		},
		{
			name:           "malformed body",
			body:           "not an object",
			setup:          func(m *testMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
		},
		{
			name: "unknown upstream repository",
			body: TrackRepositoryRequest{Owner: "golang", Name: "nope"},
			setup: func(m *testMocks) {
				m.syncs.On("TrackRepository", mock.Anything, "golang", "nope").
					Return(nil, false, apperrors.NewRemoteError(http.StatusNotFound, "Not Found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "repository not found on GitHub",
		},
		{
			name: "rate limited",
			body: TrackRepositoryRequest{Owner: "golang", Name: "go"},
			setup: func(m *testMocks) {
				m.syncs.On("TrackRepository", mock.Anything, "golang", "go").
					Return(nil, false, apperrors.NewRemoteError(http.StatusForbidden, "rate limit exceeded"))
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "GitHub API error: 403 - rate limit exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mocks := setupTestRouter(t)
			tt.setup(mocks)

			w := perform(router, http.MethodPost, "/api/v1/repositories", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w))
			} else {
				var response models.Repository
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, repoID, response.ID)
			}
			mocks.assertExpectations(t)
		})
	}
}

func TestGetRepository(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.repos.On("GetRepository", mock.Anything, repoID).Return(sampleRepository(), nil)

		w := perform(router, http.MethodGet, "/api/v1/repositories/"+repoID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response models.Repository
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "golang/go", response.FullName)
		mocks.assertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.repos.On("GetRepository", mock.Anything, "missing").
			Return(nil, apperrors.NewNotFoundError("repository not found", nil))

		w := perform(router, http.MethodGet, "/api/v1/repositories/missing", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "repository not found", decodeError(t, w))
		mocks.assertExpectations(t)
	})

	t.Run("unexpected failure hides details", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.repos.On("GetRepository", mock.Anything, repoID).
			Return(nil, errors.New("connection reset by peer"))

		w := perform(router, http.MethodGet, "/api/v1/repositories/"+repoID, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", decodeError(t, w))
		mocks.assertExpectations(t)
	})
}

func TestRemoveRepository(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.repos.On("RemoveRepository", mock.Anything, repoID).Return(true, nil)

		w := perform(router, http.MethodDelete, "/api/v1/repositories/"+repoID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
		mocks.assertExpectations(t)
	})

	t.Run("nothing removed", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.repos.On("RemoveRepository", mock.Anything, repoID).Return(false, nil)

		w := perform(router, http.MethodDelete, "/api/v1/repositories/"+repoID, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "repository not found", decodeError(t, w))
		mocks.assertExpectations(t)
	})
}

func TestSyncRepository(t *testing.T) {
	t.Run("synced", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.syncs.On("SyncRepository", mock.Anything, repoID).Return(sampleRepository(), nil)

		w := perform(router, http.MethodPost, "/api/v1/repositories/"+repoID+"/sync", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mocks.assertExpectations(t)
	})

	t.Run("sync failed reports the cause", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		cause := apperrors.NewRemoteError(http.StatusInternalServerError, "Server Error")
		mocks.syncs.On("SyncRepository", mock.Anything, repoID).
			Return(nil, apperrors.NewSyncFailedError("failed to sync golang/go", cause))

		w := perform(router, http.MethodPost, "/api/v1/repositories/"+repoID+"/sync", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "failed to sync golang/go: GitHub API error: 500 - Server Error", decodeError(t, w))
		mocks.assertExpectations(t)
	})

	t.Run("unknown repository", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.syncs.On("SyncRepository", mock.Anything, repoID).
			Return(nil, apperrors.NewNotFoundError("repository not found", nil))

		w := perform(router, http.MethodPost, "/api/v1/repositories/"+repoID+"/sync", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mocks.assertExpectations(t)
	})
}

func TestListReleases(t *testing.T) {
	router, mocks := setupTestRouter(t)
	mocks.repos.On("ListReleases", mock.Anything, repoID).Return(sampleRepository().Releases, nil)

	w := perform(router, http.MethodGet, "/api/v1/repositories/"+repoID+"/releases", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []*models.Release
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "go1.23.0", response[0].TagName)
	mocks.assertExpectations(t)
}

func TestSeenEndpoints(t *testing.T) {
	t.Run("mark all seen", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		repo := sampleRepository()
		repo.HasUnseenReleases = false
		mocks.seen.On("MarkAllReleasesSeen", mock.Anything, repoID).Return(repo, nil)

		w := perform(router, http.MethodPost, "/api/v1/repositories/"+repoID+"/seen", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response models.Repository
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.HasUnseenReleases)
		mocks.assertExpectations(t)
	})

	t.Run("mark release seen", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.seen.On("MarkReleaseSeen", mock.Anything, releaseID).
			Return(&models.Release{BaseModel: models.BaseModel{ID: releaseID}, Seen: true}, nil)

		w := perform(router, http.MethodPost, "/api/v1/releases/"+releaseID+"/seen", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response models.Release
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Seen)
		mocks.assertExpectations(t)
	})

	t.Run("mark release unseen", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.seen.On("MarkReleaseUnseen", mock.Anything, releaseID).
			Return(&models.Release{BaseModel: models.BaseModel{ID: releaseID}}, nil)

		w := perform(router, http.MethodPost, "/api/v1/releases/"+releaseID+"/unseen", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mocks.assertExpectations(t)
	})

	t.Run("unknown release", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.seen.On("MarkReleaseSeen", mock.Anything, "missing").
			Return(nil, apperrors.NewNotFoundError("release not found", nil))

		w := perform(router, http.MethodPost, "/api/v1/releases/missing/seen", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "release not found", decodeError(t, w))
		mocks.assertExpectations(t)
	})
}

func TestSyncAllRepositories(t *testing.T) {
	router, mocks := setupTestRouter(t)
	result := &models.BulkSyncResult{
		Total:  2,
		Synced: 1,
		Failed: 1,
		Failures: []models.SyncFailure{
			{RepositoryID: repoID, FullName: "golang/go", Error: "boom"},
		},
	}
	mocks.syncs.On("SyncAllRepositories", mock.Anything).Return(result, nil)

	w := perform(router, http.MethodPost, "/api/v1/sync", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response models.BulkSyncResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Total)
	assert.Equal(t, 1, response.Failed)
	require.Len(t, response.Failures, 1)
	assert.Equal(t, "golang/go", response.Failures[0].FullName)
	mocks.assertExpectations(t)
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.pinger.On("Ping", mock.Anything).Return(nil)

		w := perform(router, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","database":"ok"}`, w.Body.String())
		mocks.assertExpectations(t)
	})

	t.Run("database down", func(t *testing.T) {
		router, mocks := setupTestRouter(t)
		mocks.pinger.On("Ping", mock.Anything).Return(errors.New("dial tcp: connection refused"))

		w := perform(router, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"degraded","database":"unreachable"}`, w.Body.String())
		mocks.assertExpectations(t)
	})
}
