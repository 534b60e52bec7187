package request

// UserBody is the payload of both create and update; all fields are replaced
// on update.
type UserBody struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}

// EmailParam binds the :email path segment. The segment must itself be a
// syntactically valid email before any store access happens.
type EmailParam struct {
	Email string `uri:"email" binding:"required,email"`
}

// SearchQuery binds the ?search= parameter of the search operation.
type SearchQuery struct {
	Search string `form:"search" binding:"required"`
}
