package core

import "bookshelf/internal/core/model"

// SeedBooks is the collection used on first run. It covers every status
// and has one commented book so that each view has something to show.
func SeedBooks() []model.Book {
	return []model.Book{
		{
			ID:       "b1",
			Title:    "Le Petit Prince",
			Author:   "Antoine de Saint-Exupéry",
			Genre:    "Classique",
			Rating:   5,
			Status:   model.StatusRead,
			DateRead: "2024-01-15",
			Notes:    "Un chef-d'œuvre intemporel sur l'amitié et la pureté de l'enfance.",
			Comments: []model.Comment{{ID: "c1", Text: "Un livre magnifique, relu plusieurs fois !", Date: "2024-01-20"}},
			AddedAt:  "2024-01-15",
		},
		{
			ID:       "b2",
			Title:    "Dune",
			Author:   "Frank Herbert",
			Genre:    "Science-Fiction",
			Rating:   5,
			Status:   model.StatusRead,
			DateRead: "2024-03-20",
			Notes:    "Un monument de la science-fiction. Riche et complexe.",
			Comments: []model.Comment{},
			AddedAt:  "2024-03-20",
		},
		{
			ID:       "b3",
			Title:    "Fondation",
			Author:   "Isaac Asimov",
			Genre:    "Science-Fiction",
			Rating:   4,
			Status:   model.StatusReading,
			Notes:    "En cours de lecture, très captivant.",
			Comments: []model.Comment{},
			AddedAt:  "2025-01-05",
		},
		{
			ID:       "b4",
			Title:    "Sapiens",
			Author:   "Yuval Noah Harari",
			Genre:    "Histoire",
			Status:   model.StatusWantToRead,
			Notes:    "Recommandé par plusieurs amis.",
			Comments: []model.Comment{},
			AddedAt:  "2025-01-10",
		},
		{
			ID:       "b5",
			Title:    "L'Alchimiste",
			Author:   "Paulo Coelho",
			Genre:    "Roman",
			Rating:   4,
			Status:   model.StatusRead,
			DateRead: "2023-11-05",
			Notes:    "Une belle parabole sur la quête de soi.",
			Comments: []model.Comment{},
			AddedAt:  "2023-11-05",
		},
	}
}
