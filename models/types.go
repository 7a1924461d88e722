package models

import "time"

// Field limits shared by validation and the schema
const (
	MaxUsernameLen    = 50
	MaxEmailLen       = 100
	MaxPasswordBytes  = 72 // bcrypt input limit
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
	MinPriority       = 0
	MaxPriority       = 3
)

// Server modes
const (
	ModeAuth = "auth"
	ModeOpen = "open"
)

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
}

// UpdateTodoRequest is a partial update. Absent fields are left untouched.
type UpdateTodoRequest struct {
	Title       Optional[string] `json:"title,omitzero"`
	Description Optional[string] `json:"description,omitzero"`
	Completed   Optional[bool]   `json:"completed,omitzero"`
	Priority    Optional[int]    `json:"priority,omitzero"`
}

// Response types

type AuthResponse struct {
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type TodoResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    int        `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// OpenTodoResponse is the todo shape served when the API runs without
// accounts. It has no priority.
type OpenTodoResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// Domain types

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Todo struct {
	ID          int64
	Title       string
	Description *string
	Completed   bool
	Priority    int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	UserID      *int64
	Version     int64
}

// OwnedBy reports whether the todo belongs to userID.
func (t *Todo) OwnedBy(userID int64) bool {
	return t.UserID != nil && *t.UserID == userID
}

func (t *Todo) Response() TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (t *Todo) OpenResponse() OpenTodoResponse {
	return OpenTodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
