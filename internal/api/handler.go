package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
	"github.com/Kamar-Folarin/github-release-tracker/internal/github"
	"github.com/Kamar-Folarin/github-release-tracker/internal/utils"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	repoService github.RepositoryService
	syncService github.SyncService
	seenManager github.SeenManager
	pinger      Pinger
	logger      *logrus.Logger
}

func NewHandler(
	repoService github.RepositoryService,
	syncService github.SyncService,
	seenManager github.SeenManager,
	pinger Pinger,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		repoService: repoService,
		syncService: syncService,
		seenManager: seenManager,
		pinger:      pinger,
		logger:      logger,
	}
}

// ListRepositories godoc
// @Summary List tracked repositories
// @Description Get every tracked repository, with releases unless include_releases=false
// @Tags repositories
// @Produce json
// @Param include_releases query bool false "Embed releases" default(true)
// @Success 200 {array} models.Repository
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /repositories [get]
func (h *Handler) ListRepositories(c *gin.Context) {
	withReleases := true
	if raw := c.Query("include_releases"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondWithError(c, apperrors.NewValidationError("invalid include_releases parameter", err))
			return
		}
		withReleases = parsed
	}

	repos, err := h.repoService.ListRepositories(c.Request.Context(), withReleases)
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, repos)
}

// TrackRepository godoc
// @Summary Track a repository
// @Description Start tracking a GitHub repository and pull its releases. Tracking an already tracked repository returns it unchanged with 200.
// @Tags repositories
// @Accept json
// @Produce json
// @Param request body TrackRepositoryRequest true "Repository to track"
// @Success 200 {object} models.Repository
// @Success 201 {object} models.Repository
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /repositories [post]
func (h *Handler) TrackRepository(c *gin.Context) {
	var req TrackRepositoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	owner, name, err := ownerAndName(req)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	repo, created, err := h.syncService.TrackRepository(c.Request.Context(), owner, name)
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, repo)
		return
	}
	c.JSON(http.StatusCreated, repo)
}

func ownerAndName(req TrackRepositoryRequest) (string, string, error) {
	if req.URL != "" {
		return utils.ParseRepository(req.URL)
	}
	if req.Owner == "" || req.Name == "" {
		return "", "", apperrors.NewValidationError("owner and name, or url, are required", nil)
	}
	if err := utils.ValidateOwnerAndName(req.Owner, req.Name); err != nil {
		return "", "", err
	}
	return req.Owner, req.Name, nil
}

// GetRepository godoc
// @Summary Get a repository
// @Description Get one tracked repository with its releases
// @Tags repositories
// @Produce json
// @Param id path string true "Repository ID"
// @Success 200 {object} models.Repository
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /repositories/{id} [get]
func (h *Handler) GetRepository(c *gin.Context) {
	repo, err := h.repoService.GetRepository(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, repo)
}

// RemoveRepository godoc
// @Summary Stop tracking a repository
// @Description Delete a repository and all of its releases
// @Tags repositories
// @Produce json
// @Param id path string true "Repository ID"
// @Success 200 {object} DeleteResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /repositories/{id} [delete]
func (h *Handler) RemoveRepository(c *gin.Context) {
	id := c.Param("id")
	removed, err := h.repoService.RemoveRepository(c.Request.Context(), id)
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "repository not found"})
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Success: true})
}

// SyncRepository godoc
// @Summary Sync a repository
// @Description Pull new releases for one repository from GitHub
// @Tags repositories
// @Produce json
// @Param id path string true "Repository ID"
// @Success 200 {object} models.Repository
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /repositories/{id}/sync [post]
func (h *Handler) SyncRepository(c *gin.Context) {
	repo, err := h.syncService.SyncRepository(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, repo)
}

// ListReleases godoc
// @Summary List releases
// @Description Get the stored releases of a repository, newest first
// @Tags releases
// @Produce json
// @Param id path string true "Repository ID"
// @Success 200 {array} models.Release
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /repositories/{id}/releases [get]
func (h *Handler) ListReleases(c *gin.Context) {
	releases, err := h.repoService.ListReleases(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, releases)
}

// MarkAllReleasesSeen godoc
// @Summary Mark all releases seen
// @Description Mark every release of a repository seen and clear its unseen flag
// @Tags releases
// @Produce json
// @Param id path string true "Repository ID"
// @Success 200 {object} models.Repository
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /repositories/{id}/seen [post]
func (h *Handler) MarkAllReleasesSeen(c *gin.Context) {
	repo, err := h.seenManager.MarkAllReleasesSeen(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, repo)
}

// MarkReleaseSeen godoc
// @Summary Mark a release seen
// @Tags releases
// @Produce json
// @Param id path string true "Release ID"
// @Success 200 {object} models.Release
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /releases/{id}/seen [post]
func (h *Handler) MarkReleaseSeen(c *gin.Context) {
	release, err := h.seenManager.MarkReleaseSeen(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, release)
}

// MarkReleaseUnseen godoc
// @Summary Mark a release unseen
// @Tags releases
// @Produce json
// @Param id path string true "Release ID"
// @Success 200 {object} models.Release
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /releases/{id}/unseen [post]
func (h *Handler) MarkReleaseUnseen(c *gin.Context) {
	release, err := h.seenManager.MarkReleaseUnseen(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, release)
}

// SyncAllRepositories godoc
// @Summary Sync all repositories
// @Description Sync every tracked repository. Individual failures are reported, not returned as errors.
// @Tags sync
// @Produce json
// @Success 200 {object} models.BulkSyncResult
// @Failure 500 {object} ErrorResponse
// @Router /sync [post]
func (h *Handler) SyncAllRepositories(c *gin.Context) {
	result, err := h.syncService.SyncAllRepositories(c.Request.Context())
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		h.logger.WithError(err).Warn("Database ping failed")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
