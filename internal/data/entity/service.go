package entity

type Service struct {
	Base
	Name            string  `db:"name"`
	Description     string  `db:"description"`
	Category        string  `db:"category"`
	Price           float64 `db:"price"`
	DurationMinutes int     `db:"duration_minutes"`
	Active          bool    `db:"active"`
}
