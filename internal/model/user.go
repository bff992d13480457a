package model

// User is a row of the users table.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`
}

// NewUser carries the columns written by AddUser.
// Password is expected to be hashed already.
type NewUser struct {
	Name     string
	Email    string
	Password string
}
