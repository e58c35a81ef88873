package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"movievault/internal/entity"
	"movievault/internal/repo/persistent"
	"movievault/pkg/apperrors"
	"movievault/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
	maxGenreLen       = 50
	minReleaseYear    = 1900
	movieCacheTTL     = 10 * time.Minute
)

// CreateMovieInput is the strict record built at the HTTP boundary.
// Optional numeric fields are pointers so "absent" and "zero" stay distinct.
type CreateMovieInput struct {
	Title       string
	Description string
	Genre       string
	ReleaseYear *int
	Rating      *float64
	PosterURL   string
}

// UpdateMovieInput carries only the fields present in the request body.
// A nil field is left untouched; a non-nil empty string overwrites.
type UpdateMovieInput struct {
	Title       *string
	Description *string
	Genre       *string
	ReleaseYear *int
	Rating      *float64
	PosterURL   *string
}

type MovieUseCase interface {
	Create(user *entity.User, input CreateMovieInput) (*entity.Movie, error)
	Get(movieID string) (*entity.Movie, error)
	List(query entity.ListQuery) (*entity.MoviePage, error)
	Update(user *entity.User, movieID string, input UpdateMovieInput) (*entity.Movie, error)
	Delete(user *entity.User, movieID string) error
}

type movieUseCase struct {
	movieRepo   persistent.MovieRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewMovieUseCase(movieRepo persistent.MovieRepository, redisClient *redis.Client, logger *logger.Logger) MovieUseCase {
	return &movieUseCase{
		movieRepo:   movieRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *movieUseCase) Create(user *entity.User, input CreateMovieInput) (*entity.Movie, error) {
	title := strings.TrimSpace(input.Title)

	fields := map[string]string{}
	if title == "" {
		fields["title"] = "title is required"
	} else if len(title) > maxTitleLen {
		fields["title"] = fmt.Sprintf("title must be at most %d characters", maxTitleLen)
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "description is required"
	} else if len(input.Description) > maxDescriptionLen {
		fields["description"] = fmt.Sprintf("description must be at most %d characters", maxDescriptionLen)
	}
	validateOptionalFields(fields, input.Genre, input.ReleaseYear, input.Rating)
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	exists, err := uc.movieRepo.ExistsByOwnerAndTitle(user.ID, title)
	if err != nil {
		uc.logger.Error("Failed to check duplicate title for user %s: %v", user.ID, err)
		return nil, apperrors.Internal("failed to create movie", err)
	}
	if exists {
		return nil, apperrors.Conflict("you already have a movie with this title")
	}

	movie := &entity.Movie{
		Title:       title,
		Description: input.Description,
		Genre:       input.Genre,
		PosterURL:   input.PosterURL,
		UploadedBy: entity.Uploader{
			ID:       user.ID,
			Username: user.Username,
		},
		UploadedAt: time.Now(),
	}
	if input.ReleaseYear != nil {
		movie.ReleaseYear = *input.ReleaseYear
	}
	if input.Rating != nil {
		movie.Rating = *input.Rating
	}

	if err := uc.movieRepo.Create(movie); err != nil {
		uc.logger.Error("Failed to create movie for user %s: %v", user.ID, err)
		return nil, apperrors.Internal("failed to create movie", err)
	}

	return movie, nil
}

func (uc *movieUseCase) Get(movieID string) (*entity.Movie, error) {
	// A malformed id is answered like an absent one.
	if _, err := uuid.Parse(movieID); err != nil {
		return nil, apperrors.NotFound("movie not found")
	}

	if cached := uc.cachedMovie(movieID); cached != nil {
		return cached, nil
	}

	movie, err := uc.movieRepo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("movie not found")
		}
		uc.logger.Error("Failed to fetch movie %s: %v", movieID, err)
		return nil, apperrors.Internal("failed to fetch movie", err)
	}

	uc.cacheMovie(movie)
	return movie, nil
}

func (uc *movieUseCase) List(query entity.ListQuery) (*entity.MoviePage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	movies, total, err := uc.movieRepo.List(query)
	if err != nil {
		uc.logger.Error("Failed to list movies: %v", err)
		return nil, apperrors.Internal("failed to list movies", err)
	}

	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))

	return &entity.MoviePage{
		Movies:      movies,
		CurrentPage: query.Page,
		TotalPages:  totalPages,
		TotalMovies: total,
	}, nil
}

func (uc *movieUseCase) Update(user *entity.User, movieID string, input UpdateMovieInput) (*entity.Movie, error) {
	movie, err := uc.ownedMovie(user, movieID, "you can only update your own movies")
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			fields["title"] = "title is required"
		} else if len(title) > maxTitleLen {
			fields["title"] = fmt.Sprintf("title must be at most %d characters", maxTitleLen)
		} else {
			// Duplicate titles are not re-checked on update.
			movie.Title = title
		}
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			fields["description"] = "description is required"
		} else if len(*input.Description) > maxDescriptionLen {
			fields["description"] = fmt.Sprintf("description must be at most %d characters", maxDescriptionLen)
		} else {
			movie.Description = *input.Description
		}
	}
	var genre string
	if input.Genre != nil {
		genre = *input.Genre
	}
	validateOptionalFields(fields, genre, input.ReleaseYear, input.Rating)
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	if input.Genre != nil {
		movie.Genre = *input.Genre
	}
	if input.ReleaseYear != nil {
		movie.ReleaseYear = *input.ReleaseYear
	}
	if input.Rating != nil {
		movie.Rating = *input.Rating
	}
	if input.PosterURL != nil {
		movie.PosterURL = *input.PosterURL
	}

	if err := uc.movieRepo.Update(movie); err != nil {
		uc.logger.Error("Failed to update movie %s: %v", movieID, err)
		return nil, apperrors.Internal("failed to update movie", err)
	}

	uc.invalidateMovie(movieID)
	return movie, nil
}

func (uc *movieUseCase) Delete(user *entity.User, movieID string) error {
	if _, err := uc.ownedMovie(user, movieID, "you can only delete your own movies"); err != nil {
		return err
	}

	if err := uc.movieRepo.Delete(movieID); err != nil {
		uc.logger.Error("Failed to delete movie %s: %v", movieID, err)
		return apperrors.Internal("failed to delete movie", err)
	}

	uc.invalidateMovie(movieID)
	return nil
}

// ownedMovie loads a movie and enforces that it belongs to the given user.
func (uc *movieUseCase) ownedMovie(user *entity.User, movieID, forbiddenMsg string) (*entity.Movie, error) {
	if _, err := uuid.Parse(movieID); err != nil {
		return nil, apperrors.NotFound("movie not found")
	}

	movie, err := uc.movieRepo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("movie not found")
		}
		uc.logger.Error("Failed to fetch movie %s: %v", movieID, err)
		return nil, apperrors.Internal("failed to fetch movie", err)
	}

	if movie.UploadedBy.ID != user.ID {
		return nil, apperrors.Forbidden(forbiddenMsg)
	}
	return movie, nil
}

func validateOptionalFields(fields map[string]string, genre string, releaseYear *int, rating *float64) {
	if len(genre) > maxGenreLen {
		fields["genre"] = fmt.Sprintf("genre must be at most %d characters", maxGenreLen)
	}
	if releaseYear != nil {
		maxYear := time.Now().Year() + 5
		if *releaseYear < minReleaseYear || *releaseYear > maxYear {
			fields["release_year"] = fmt.Sprintf("release year must be between %d and %d", minReleaseYear, maxYear)
		}
	}
	if rating != nil && (*rating < 0 || *rating > 10) {
		fields["rating"] = "rating must be between 0 and 10"
	}
}

func movieCacheKey(id string) string {
	return fmt.Sprintf("movie:%s", id)
}

func (uc *movieUseCase) cachedMovie(id string) *entity.Movie {
	if uc.redisClient == nil {
		return nil
	}
	data, err := uc.redisClient.Get(context.Background(), movieCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var movie entity.Movie
	if err := json.Unmarshal(data, &movie); err != nil {
		return nil
	}
	return &movie
}

func (uc *movieUseCase) cacheMovie(movie *entity.Movie) {
	if uc.redisClient == nil {
		return
	}
	data, err := json.Marshal(movie)
	if err != nil {
		return
	}
	uc.redisClient.Set(context.Background(), movieCacheKey(movie.ID), data, movieCacheTTL)
}

func (uc *movieUseCase) invalidateMovie(id string) {
	if uc.redisClient == nil {
		return
	}
	uc.redisClient.Del(context.Background(), movieCacheKey(id))
}
