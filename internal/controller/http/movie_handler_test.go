package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movievault/internal/entity"
	"movievault/internal/usecase"
	"movievault/pkg/apperrors"
	"movievault/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMovieUseCase struct {
	mock.Mock
}

var _ usecase.MovieUseCase = (*MockMovieUseCase)(nil)

func (m *MockMovieUseCase) Create(user *entity.User, input usecase.CreateMovieInput) (*entity.Movie, error) {
	args := m.Called(user, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Movie), args.Error(1)
}

func (m *MockMovieUseCase) Get(movieID string) (*entity.Movie, error) {
	args := m.Called(movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Movie), args.Error(1)
}

func (m *MockMovieUseCase) List(query entity.ListQuery) (*entity.MoviePage, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MoviePage), args.Error(1)
}

func (m *MockMovieUseCase) Update(user *entity.User, movieID string, input usecase.UpdateMovieInput) (*entity.Movie, error) {
	args := m.Called(user, movieID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Movie), args.Error(1)
}

func (m *MockMovieUseCase) Delete(user *entity.User, movieID string) error {
	args := m.Called(user, movieID)
	return args.Error(0)
}

func testMovie(id string, owner *entity.User) *entity.Movie {
	return &entity.Movie{
		ID:          id,
		Title:       "Dune",
		Description: "A noble family becomes embroiled in a war for a desert planet.",
		Genre:       "Sci-Fi",
		ReleaseYear: 2021,
		Rating:      8.1,
		UploadedBy:  entity.Uploader{ID: owner.ID, Username: owner.Username},
		UploadedAt:  time.Now(),
	}
}

func TestCreateMovieHandler_Success(t *testing.T) {
	owner := &entity.User{ID: "user-123", Username: "alice"}
	uc := new(MockMovieUseCase)
	uc.On("Create", owner, mock.AnythingOfType("usecase.CreateMovieInput")).
		Return(testMovie("movie-1", owner), nil)

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.POST("/api/movies", asUser(owner), handler.CreateMovie)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/movies", jsonBody(t, CreateMovieRequest{
		Title:       "Dune",
		Description: "A noble family becomes embroiled in a war for a desert planet.",
		Genre:       "Sci-Fi",
	}))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp MovieResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "movie added successfully", resp.Message)
	assert.Equal(t, "movie-1", resp.Movie.ID)
	assert.Equal(t, "alice", resp.Movie.UploadedBy.Username)
	uc.AssertExpectations(t)
}

func TestCreateMovieHandler_ValidationFields(t *testing.T) {
	owner := &entity.User{ID: "user-123", Username: "alice"}
	uc := new(MockMovieUseCase)
	uc.On("Create", owner, mock.AnythingOfType("usecase.CreateMovieInput")).
		Return(nil, apperrors.Validation(map[string]string{
			"title":       "title is required",
			"description": "description is required",
		}))

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.POST("/api/movies", asUser(owner), handler.CreateMovie)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/movies", jsonBody(t, CreateMovieRequest{}))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	fields, ok := body["fields"].(map[string]interface{})
	assert.True(t, ok)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
}

func TestGetMovieHandler_NotFound(t *testing.T) {
	uc := new(MockMovieUseCase)
	uc.On("Get", "missing-id").Return(nil, apperrors.NotFound("movie not found"))

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.GET("/api/movies/:id", handler.GetMovie)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/movies/missing-id", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "movie not found")
}

func TestGetMovieHandler_Success(t *testing.T) {
	owner := &entity.User{ID: "user-123", Username: "alice"}
	uc := new(MockMovieUseCase)
	uc.On("Get", "movie-1").Return(testMovie("movie-1", owner), nil)

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.GET("/api/movies/:id", handler.GetMovie)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/movies/movie-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var movie entity.Movie
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &movie))
	assert.Equal(t, "Dune", movie.Title)
	assert.Equal(t, "user-123", movie.UploadedBy.ID)
}

func TestListMoviesHandler_PassesQuery(t *testing.T) {
	uc := new(MockMovieUseCase)
	uc.On("List", entity.ListQuery{
		Page:      2,
		Limit:     5,
		Search:    "dune",
		SortBy:    "rating",
		SortOrder: "asc",
	}).Return(&entity.MoviePage{
		Movies:      []*entity.Movie{},
		CurrentPage: 2,
		TotalPages:  3,
		TotalMovies: 11,
	}, nil)

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.GET("/api/movies", handler.ListMovies)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/movies?page=2&limit=5&search=dune&sort_by=rating&sort_order=asc", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var page entity.MoviePage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(11), page.TotalMovies)
	uc.AssertExpectations(t)
}

func TestListMoviesHandler_CamelCaseSortParams(t *testing.T) {
	uc := new(MockMovieUseCase)
	uc.On("List", entity.ListQuery{
		Page:      1,
		Limit:     10,
		SortBy:    "title",
		SortOrder: "asc",
	}).Return(&entity.MoviePage{Movies: []*entity.Movie{}, CurrentPage: 1, TotalPages: 0}, nil)

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.GET("/api/movies", handler.ListMovies)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/movies?sortBy=title&sortOrder=asc", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestMyMoviesHandler_ScopesToOwner(t *testing.T) {
	owner := &entity.User{ID: "user-123", Username: "alice"}
	uc := new(MockMovieUseCase)
	uc.On("List", mock.MatchedBy(func(q entity.ListQuery) bool {
		return q.OwnerID == "user-123"
	})).Return(&entity.MoviePage{Movies: []*entity.Movie{}, CurrentPage: 1, TotalPages: 0}, nil)

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.GET("/api/movies/user/my-movies", asUser(owner), handler.MyMovies)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/movies/user/my-movies", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestUpdateMovieHandler_Forbidden(t *testing.T) {
	intruder := &entity.User{ID: "user-456", Username: "bob"}
	uc := new(MockMovieUseCase)
	uc.On("Update", intruder, "movie-1", mock.AnythingOfType("usecase.UpdateMovieInput")).
		Return(nil, apperrors.Forbidden("you can only update your own movies"))

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.PUT("/api/movies/:id", asUser(intruder), handler.UpdateMovie)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/movies/movie-1", jsonBody(t, map[string]string{"title": "Hijacked"}))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "your own movies")
}

func TestUpdateMovieHandler_Success(t *testing.T) {
	owner := &entity.User{ID: "user-123", Username: "alice"}
	uc := new(MockMovieUseCase)
	uc.On("Update", owner, "movie-1", mock.MatchedBy(func(input usecase.UpdateMovieInput) bool {
		// Only the title key was in the body; everything else stays nil.
		return input.Title != nil && *input.Title == "Dune: Part Two" &&
			input.Description == nil && input.Rating == nil
	})).Return(testMovie("movie-1", owner), nil)

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.PUT("/api/movies/:id", asUser(owner), handler.UpdateMovie)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/movies/movie-1", jsonBody(t, map[string]string{"title": "Dune: Part Two"}))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "movie updated successfully")
	uc.AssertExpectations(t)
}

func TestDeleteMovieHandler_Success(t *testing.T) {
	owner := &entity.User{ID: "user-123", Username: "alice"}
	uc := new(MockMovieUseCase)
	uc.On("Delete", owner, "movie-1").Return(nil)

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.DELETE("/api/movies/:id", asUser(owner), handler.DeleteMovie)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/movies/movie-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "movie deleted successfully")
	uc.AssertExpectations(t)
}

func TestDeleteMovieHandler_NotFound(t *testing.T) {
	owner := &entity.User{ID: "user-123", Username: "alice"}
	uc := new(MockMovieUseCase)
	uc.On("Delete", owner, "missing-id").Return(apperrors.NotFound("movie not found"))

	handler := NewMovieHandler(uc, logger.New())
	router := setupTestRouter()
	router.DELETE("/api/movies/:id", asUser(owner), handler.DeleteMovie)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/movies/missing-id", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
