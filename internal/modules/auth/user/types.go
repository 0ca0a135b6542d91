package user

import "errors"

var (
	errUserNotFound      = errors.New("user not found")
	errWrongPassword     = errors.New("wrong password")
	errUsernameTaken     = errors.New("username already taken")
	errPasswordSameAsOld = errors.New("new password must differ from the old one")
	errPasswordTooShort  = errors.New("password must be at least 8 characters")
)

type RegisterDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Mail     string `json:"mail"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserDTO struct {
	Name *string `json:"name"`
	Mail *string `json:"mail"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}
