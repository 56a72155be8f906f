package cqrs

type CreateUserCommand struct {
	Name string
	Age  int
}

// UpdateUserCommand carries a partial update; nil fields are left untouched.
type UpdateUserCommand struct {
	UserID int64
	Name   *string
	Age    *int
}

type DeleteUserCommand struct {
	UserID int64
}
