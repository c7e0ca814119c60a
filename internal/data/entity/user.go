package entity

// User is a registered account. Email is always stored normalized (lowercase).
type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	DOB          string   `db:"dob"`
	Phone        string   `db:"phone"`
	Language     string   `db:"language"`
	Preferences  []string `db:"preferences"`
}
