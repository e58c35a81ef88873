package http

import (
	"net/http"
	"strconv"

	"movievault/internal/entity"
	"movievault/internal/usecase"
	"movievault/pkg/logger"
	"movievault/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	movieUseCase usecase.MovieUseCase
	logger       *logger.Logger
}

func NewMovieHandler(movieUseCase usecase.MovieUseCase, logger *logger.Logger) *MovieHandler {
	return &MovieHandler{
		movieUseCase: movieUseCase,
		logger:       logger,
	}
}

type CreateMovieRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       string   `json:"genre"`
	ReleaseYear *int     `json:"release_year"`
	Rating      *float64 `json:"rating"`
	PosterURL   string   `json:"poster_url"`
}

// UpdateMovieRequest distinguishes absent fields from explicitly cleared
// ones: only keys present in the body are applied.
type UpdateMovieRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Genre       *string  `json:"genre"`
	ReleaseYear *int     `json:"release_year"`
	Rating      *float64 `json:"rating"`
	PosterURL   *string  `json:"poster_url"`
}

type MovieResponse struct {
	Message string        `json:"message"`
	Movie   *entity.Movie `json:"movie"`
}

func listQueryFromContext(c *gin.Context) entity.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	sortBy := c.Query("sort_by")
	if sortBy == "" {
		sortBy = c.Query("sortBy")
	}
	sortOrder := c.Query("sort_order")
	if sortOrder == "" {
		sortOrder = c.Query("sortOrder")
	}

	return entity.ListQuery{
		Page:      page,
		Limit:     limit,
		Search:    c.Query("search"),
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
}

// ListMovies godoc
// @Summary      List movies
// @Description  Paginated catalog with optional full-text search and sorting
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (1-indexed)"
// @Param        limit query int false "Records per page"
// @Param        search query string false "Full-text search over title and description"
// @Param        sort_by query string false "Sort field (default uploaded_at)"
// @Param        sort_order query string false "asc or desc (default desc)"
// @Success      200  {object}  entity.MoviePage
// @Failure      401  {object}  map[string]string
// @Router       /movies [get]
func (h *MovieHandler) ListMovies(c *gin.Context) {
	page, err := h.movieUseCase.List(listQueryFromContext(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// MyMovies godoc
// @Summary      List the current user's movies
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (1-indexed)"
// @Param        limit query int false "Records per page"
// @Param        sort_by query string false "Sort field (default uploaded_at)"
// @Param        sort_order query string false "asc or desc (default desc)"
// @Success      200  {object}  entity.MoviePage
// @Failure      401  {object}  map[string]string
// @Router       /movies/user/my-movies [get]
func (h *MovieHandler) MyMovies(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	query := listQueryFromContext(c)
	query.OwnerID = user.ID

	page, err := h.movieUseCase.List(query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetMovie godoc
// @Summary      Get a movie by id
// @Description  Reads are not ownership-gated; any authenticated user may fetch any movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Movie ID"
// @Success      200  {object}  entity.Movie
// @Failure      404  {object}  map[string]string
// @Router       /movies/{id} [get]
func (h *MovieHandler) GetMovie(c *gin.Context) {
	movie, err := h.movieUseCase.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// CreateMovie godoc
// @Summary      Add a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateMovieRequest true "Movie fields"
// @Success      201  {object}  MovieResponse
// @Failure      400  {object}  map[string]string
// @Router       /movies [post]
func (h *MovieHandler) CreateMovie(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	movie, err := h.movieUseCase.Create(user, usecase.CreateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		Rating:      req.Rating,
		PosterURL:   req.PosterURL,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, MovieResponse{
		Message: "movie added successfully",
		Movie:   movie,
	})
}

// UpdateMovie godoc
// @Summary      Update a movie
// @Description  Partial update; only fields present in the body are applied. Owner only.
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Movie ID"
// @Param        request body UpdateMovieRequest true "Fields to update"
// @Success      200  {object}  MovieResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	movie, err := h.movieUseCase.Update(user, c.Param("id"), usecase.UpdateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		Rating:      req.Rating,
		PosterURL:   req.PosterURL,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, MovieResponse{
		Message: "movie updated successfully",
		Movie:   movie,
	})
}

// DeleteMovie godoc
// @Summary      Delete a movie
// @Description  Permanent removal. Owner only.
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Movie ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	if err := h.movieUseCase.Delete(user, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "movie deleted successfully"})
}
