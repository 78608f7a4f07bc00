package transport

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TaskRequest struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

type GrantCreateRequest struct {
	UserID    string `json:"user_id"`
	CanRead   bool   `json:"can_read"`
	CanUpdate bool   `json:"can_update"`
}

type GrantUpdateRequest struct {
	CanRead   bool `json:"can_read"`
	CanUpdate bool `json:"can_update"`
}
