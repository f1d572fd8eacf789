// Command seed loads an initial catalog from a JSON file: categories,
// genres and titles referencing them by slug. Existing slugs are reused so
// the seed can run repeatedly.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"reviewhub/database"
	"reviewhub/internal/api/models"
	"reviewhub/internal/config"
)

type seedFile struct {
	Categories []seedSlugged `json:"categories"`
	Genres     []seedSlugged `json:"genres"`
	Titles     []seedTitle   `json:"titles"`
}

type seedSlugged struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type seedTitle struct {
	Name        string   `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: seed <seed-file.json>")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	seed, err := readSeedFile(os.Args[1])
	if err != nil {
		logger.Error("could not read seed file", "error", err)
		os.Exit(1)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		categories, err := importCategories(tx, seed.Categories)
		if err != nil {
			return fmt.Errorf("import categories: %w", err)
		}
		logger.Info("categories imported", "count", len(categories))

		genres, err := importGenres(tx, seed.Genres)
		if err != nil {
			return fmt.Errorf("import genres: %w", err)
		}
		logger.Info("genres imported", "count", len(genres))

		imported, linked, err := importTitles(tx, seed.Titles, categories, genres)
		if err != nil {
			return fmt.Errorf("import titles: %w", err)
		}
		logger.Info("titles imported", "count", imported, "genre_links", linked)
		return nil
	})
	if err != nil {
		logger.Error("seed failed, rolled back", "error", err)
		os.Exit(1)
	}

	logger.Info("seed completed")
}

func readSeedFile(path string) (*seedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var seed seedFile
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &seed, nil
}

func importCategories(tx *gorm.DB, in []seedSlugged) (map[string]*models.Category, error) {
	out := make(map[string]*models.Category, len(in))
	for _, c := range in {
		category := &models.Category{Name: c.Name, Slug: c.Slug}
		if err := upsertBySlug(tx, category, c.Slug); err != nil {
			return nil, err
		}
		out[c.Slug] = category
	}
	return out, nil
}

func importGenres(tx *gorm.DB, in []seedSlugged) (map[string]*models.Genre, error) {
	out := make(map[string]*models.Genre, len(in))
	for _, g := range in {
		genre := &models.Genre{Name: g.Name, Slug: g.Slug}
		if err := upsertBySlug(tx, genre, g.Slug); err != nil {
			return nil, err
		}
		out[g.Slug] = genre
	}
	return out, nil
}

// upsertBySlug loads the row by slug or creates it; the loaded row replaces
// the argument's fields through GORM's FirstOrCreate.
func upsertBySlug(tx *gorm.DB, dest any, slug string) error {
	return tx.Where("slug = ?", slug).FirstOrCreate(dest).Error
}

func importTitles(
	tx *gorm.DB,
	in []seedTitle,
	categories map[string]*models.Category,
	genres map[string]*models.Genre,
) (imported, linked int, err error) {
	for _, t := range in {
		title := models.Title{
			Name:        t.Name,
			Year:        t.Year,
			Description: t.Description,
		}

		if t.Category != nil {
			category, ok := categories[*t.Category]
			if !ok {
				// references may point at rows seeded in a previous run
				category = &models.Category{}
				if lookupErr := tx.Where("slug = ?", *t.Category).First(category).Error; lookupErr != nil {
					if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
						return imported, linked, fmt.Errorf("title %q: unknown category slug %q", t.Name, *t.Category)
					}
					return imported, linked, lookupErr
				}
			}
			title.CategoryID = &category.ID
		}

		for _, slug := range t.Genre {
			genre, ok := genres[slug]
			if !ok {
				genre = &models.Genre{}
				if lookupErr := tx.Where("slug = ?", slug).First(genre).Error; lookupErr != nil {
					if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
						return imported, linked, fmt.Errorf("title %q: unknown genre slug %q", t.Name, slug)
					}
					return imported, linked, lookupErr
				}
			}
			title.Genres = append(title.Genres, *genre)
		}

		if err := tx.Where("name = ?", title.Name).FirstOrCreate(&title).Error; err != nil {
			return imported, linked, fmt.Errorf("title %q: %w", t.Name, err)
		}
		imported++
		linked += len(title.Genres)
	}
	return imported, linked, nil
}
