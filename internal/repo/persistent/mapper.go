package persistent

import (
	"movievault/internal/entity"
	"movievault/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Username:  e.Username,
		Email:     e.Email,
		Password:  e.Password,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToMovieEntity(m *model.MovieModel, username string) *entity.Movie {
	if m == nil {
		return nil
	}

	return &entity.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
		PosterURL:   m.PosterURL,
		UploadedBy: entity.Uploader{
			ID:       m.UploadedBy,
			Username: username,
		},
		UploadedAt: m.UploadedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToMovieModel(e *entity.Movie) *model.MovieModel {
	if e == nil {
		return nil
	}

	return &model.MovieModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Genre:       e.Genre,
		ReleaseYear: e.ReleaseYear,
		Rating:      e.Rating,
		PosterURL:   e.PosterURL,
		UploadedBy:  e.UploadedBy.ID,
		UploadedAt:  e.UploadedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
