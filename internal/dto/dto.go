package dto

type RegisterDTO struct {
	FullName string `json:"fullname" validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=20"`
	Password string `json:"password" validate:"required,strongpwd"`
	Avatar   string `json:"avatar"   validate:"omitempty,url"`
	Cover    string `json:"coverImage" validate:"omitempty,url"`
}

// LoginDTO accepts a username or an email; exactly one non-empty identifier
// is required, enforced in the service.
type LoginDTO struct {
	Email    string `json:"email"    validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,alphanum"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strongpwd"`
}

type UpdateAccountDTO struct {
	FullName string `json:"fullname" validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email"`
}

type UpdateImageDTO struct {
	URL string `json:"url" validate:"required,url"`
}

type PublishVideoDTO struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required"`
	VideoFile   string  `json:"videoFile" validate:"required,url"`
	Thumbnail   string  `json:"thumbnail" validate:"required,url"`
	Duration    float64 `json:"duration" validate:"gte=0"`
}

type UpdateVideoDTO struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required"`
	Thumbnail   string `json:"thumbnail" validate:"omitempty,url"`
}

type ContentDTO struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type PlaylistDTO struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required,max=1000"`
}

// ListDTO carries the page window of a listing request. Values below 1 are
// clamped by the pagination engine.
type ListDTO struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

type ListVideosDTO struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   string `form:"userId"`
}
