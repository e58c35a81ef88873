package persistent

import (
	"movievault/internal/entity"
	"movievault/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovieRepository interface {
	Create(movie *entity.Movie) error
	GetByID(id string) (*entity.Movie, error)
	List(query entity.ListQuery) ([]*entity.Movie, int64, error)
	Update(movie *entity.Movie) error
	Delete(id string) error
	ExistsByOwnerAndTitle(ownerID, title string) (bool, error)
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// movieRow carries the uploader's username joined onto the movie columns.
type movieRow struct {
	model.MovieModel
	Username string
}

// sortColumns whitelists sortable fields; anything else falls back to the
// default so user input never reaches the ORDER BY clause verbatim.
var sortColumns = map[string]string{
	"title":        "title",
	"genre":        "genre",
	"rating":       "rating",
	"releaseYear":  "release_year",
	"release_year": "release_year",
	"uploadedAt":   "uploaded_at",
	"uploaded_at":  "uploaded_at",
	"createdAt":    "created_at",
	"created_at":   "created_at",
	"updatedAt":    "updated_at",
	"updated_at":   "updated_at",
}

func (r *movieRepository) Create(movie *entity.Movie) error {
	movieModel := ToMovieModel(movie)
	if movieModel.ID == "" {
		movieModel.ID = uuid.New().String()
	}
	if err := r.db.Create(movieModel).Error; err != nil {
		return err
	}
	// Keep the embedded username supplied by the caller.
	username := movie.UploadedBy.Username
	*movie = *ToMovieEntity(movieModel, username)
	return nil
}

func (r *movieRepository) GetByID(id string) (*entity.Movie, error) {
	var row movieRow
	err := r.db.Model(&model.MovieModel{}).
		Select("movies.*, users.username").
		Joins("JOIN users ON users.id = movies.uploaded_by").
		Where("movies.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return ToMovieEntity(&row.MovieModel, row.Username), nil
}

func (r *movieRepository) List(query entity.ListQuery) ([]*entity.Movie, int64, error) {
	base := r.db.Model(&model.MovieModel{})

	if query.OwnerID != "" {
		base = base.Where("movies.uploaded_by = ?", query.OwnerID)
	}
	if query.Search != "" {
		// Tokenized full-text match over title and description, not a
		// substring scan. Backed by the GIN index from the migrations.
		base = base.Where(
			"to_tsvector('english', movies.title || ' ' || movies.description) @@ plainto_tsquery('english', ?)",
			query.Search,
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = "uploaded_at"
	}
	direction := "DESC"
	if query.SortOrder == "asc" {
		direction = "ASC"
	}
	// No secondary tie-break column: equal sort keys resolve in store
	// order, so page boundaries are not stable for exact ties.
	offset := (query.Page - 1) * query.Limit

	var rows []movieRow
	err := base.
		Select("movies.*, users.username").
		Joins("JOIN users ON users.id = movies.uploaded_by").
		Order("movies." + column + " " + direction).
		Limit(query.Limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	movies := make([]*entity.Movie, len(rows))
	for i := range rows {
		movies[i] = ToMovieEntity(&rows[i].MovieModel, rows[i].Username)
	}
	return movies, total, nil
}

func (r *movieRepository) Update(movie *entity.Movie) error {
	movieModel := ToMovieModel(movie)
	return r.db.Save(movieModel).Error
}

func (r *movieRepository) Delete(id string) error {
	return r.db.Delete(&model.MovieModel{}, "id = ?", id).Error
}

func (r *movieRepository) ExistsByOwnerAndTitle(ownerID, title string) (bool, error) {
	var count int64
	err := r.db.Model(&model.MovieModel{}).
		Where("uploaded_by = ? AND title = ?", ownerID, title).
		Count(&count).Error
	return count > 0, err
}
