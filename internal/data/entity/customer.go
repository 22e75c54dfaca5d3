package entity

type Customer struct {
	Base
	Name       string `db:"name"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	UitmMember bool   `db:"uitm_member"`
	Role       string `db:"role"`
}
