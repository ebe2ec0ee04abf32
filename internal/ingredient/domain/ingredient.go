package domain

import "time"

type ID int64

type Ingredient struct {
	ID        ID
	Name      string
	UserID    string
	DateAdded time.Time
}

func Names(items []Ingredient) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}
