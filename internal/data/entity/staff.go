package entity

type Staff struct {
	Base
	Name   string `db:"name"`
	Email  string `db:"email"`
	Phone  string `db:"phone"`
	Active bool   `db:"active"`
}
