package main

import (
	"fmt"
	"time"

	"movievault/internal/entity"
	"movievault/internal/repo/persistent"
	"movievault/pkg/config"
	"movievault/pkg/database"
	"movievault/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type seedMovie struct {
	title       string
	description string
	genre       string
	releaseYear int
	rating      float64
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	userRepo := persistent.NewUserRepository(db)
	movieRepo := persistent.NewMovieRepository(db)

	users := []struct {
		username string
		email    string
		movies   []seedMovie
	}{
		{
			username: "alice",
			email:    "alice@example.com",
			movies: []seedMovie{
				{"Dune", "Desert planet saga", "Sci-Fi", 2021, 8.5},
				{"Arrival", "Linguist decodes an alien language", "Sci-Fi", 2016, 7.9},
				{"Whiplash", "A drummer pushed to the limit", "Drama", 2014, 8.5},
			},
		},
		{
			username: "bob",
			email:    "bob@example.com",
			movies: []seedMovie{
				{"Heat", "Cat and mouse across Los Angeles", "Crime", 1995, 8.3},
				{"Ronin", "Mercenaries chase a briefcase", "Thriller", 1998, 7.2},
			},
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash seed password: %v", err)
		panic(err)
	}

	for _, u := range users {
		if _, err := userRepo.GetByEmail(u.email); err == nil {
			log.Info("User %s already exists, skipping", u.email)
			continue
		}

		user := &entity.User{
			Username: u.username,
			Email:    u.email,
			Password: string(hash),
		}
		if err := userRepo.Create(user); err != nil {
			log.Error("Failed to seed user %s: %v", u.email, err)
			panic(err)
		}

		for _, m := range u.movies {
			movie := &entity.Movie{
				Title:       m.title,
				Description: m.description,
				Genre:       m.genre,
				ReleaseYear: m.releaseYear,
				Rating:      m.rating,
				UploadedBy: entity.Uploader{
					ID:       user.ID,
					Username: user.Username,
				},
				UploadedAt: time.Now(),
			}
			if err := movieRepo.Create(movie); err != nil {
				log.Error("Failed to seed movie %q: %v", m.title, err)
				panic(err)
			}
		}

		log.Info("Seeded user %s with %d movies", u.username, len(u.movies))
	}

	log.Info("Database seeded successfully!")
}
