package user

import (
	"github.com/lib/pq"
)

type User struct {
	ID           int64          `db:"id" json:"id"`
	PhoneNumber  string         `db:"phone_number" json:"phone_number"`
	Username     string         `db:"username" json:"username"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Roles        pq.StringArray `db:"roles" json:"roles" swaggertype:"array,string"`
	Deleted      bool           `db:"deleted" json:"-"`
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=2,max=64"`
	PhoneNumber string `json:"phone_number" binding:"required,min=7,max=20"`
	Password    string `json:"password" binding:"required,min=5"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
