package services

import (
	"errors"
	"regexp"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"
	"github.com/ZhatkinVyacheslav/foodgram-st/utils"

	"gorm.io/gorm"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

type RegisterInput struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Password  string `json:"password" binding:"required"`
}

// RegisterUser creates an account and returns its public profile.
func RegisterUser(in RegisterInput) (*UserPublic, error) {
	if !usernameRe.MatchString(in.Username) {
		return nil, validationf("username may contain only letters, digits and @/./+/-/_")
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:     in.Email,
		Username:  in.Username,
		Password:  hashed,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		var existing int64
		config.DB.Model(&models.User{}).
			Where("email = ? OR username = ?", in.Email, in.Username).
			Count(&existing)
		if existing > 0 {
			return nil, validationf("a user with this email or username already exists")
		}
		return nil, err
	}

	out := serializeUser(&user, 0)
	return &out, nil
}

// AuthenticateUser checks credentials and mints a JWT.
func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("invalid email or password")
		}
		return "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("invalid email or password")
	}

	return utils.GenerateJWT(user.ID, user.Email)
}
