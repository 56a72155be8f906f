package models

// User is a record in the user directory.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// CreateUserParams holds the fields for a new user. The id is assigned by the
// repository.
type CreateUserParams struct {
	Name string
	Age  int
}

// UpdateUserParams holds a partial update. Nil fields keep their prior value.
type UpdateUserParams struct {
	ID   int64
	Name *string
	Age  *int
}

// Apply copies the set fields of p onto u.
func (p UpdateUserParams) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
}
