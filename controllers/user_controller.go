package controllers

import (
	"net/http"
	"strconv"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/services"

	"github.com/gin-gonic/gin"
)

// Register creates a new account.
func Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.RegisterUser(input)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// ListUsers returns a page of profiles.
func ListUsers(c *gin.Context) {
	p := services.ParsePageParams(c.Request.URL.Query())
	users, count, err := services.ListUsers(currentUserID(c), p)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.BuildPage(count, users, c.Request.URL.Path, p))
}

// GetUser returns one public profile.
func GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	profile, err := services.GetUser(id, currentUserID(c))
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Me returns the caller's profile.
func Me(c *gin.Context) {
	profile, err := services.GetUser(currentUserID(c), currentUserID(c))
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type AvatarInput struct {
	Avatar string `json:"avatar" binding:"required"`
}

// SetAvatar replaces the caller's profile image from a base64 payload.
func SetAvatar(c *gin.Context) {
	var input AvatarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := services.SetAvatar(currentUserID(c), config.App.MediaRoot, input.Avatar)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": url})
}

// DeleteAvatar removes the caller's profile image.
func DeleteAvatar(c *gin.Context) {
	if err := services.DeleteAvatar(currentUserID(c), config.App.MediaRoot); err != nil {
		abortServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscribe follows the author in the path.
func Subscribe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	author, err := services.Subscribe(currentUserID(c), id)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, author)
}

// Unsubscribe removes the follow relation.
func Unsubscribe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := services.Unsubscribe(currentUserID(c), id); err != nil {
		abortServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscriptions lists the authors the caller follows.
func Subscriptions(c *gin.Context) {
	p := services.ParsePageParams(c.Request.URL.Query())

	recipesLimit := 0
	if v := c.Query("recipes_limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recipes_limit must be a positive number"})
			return
		}
		recipesLimit = n
	}

	authors, count, err := services.Subscriptions(currentUserID(c), p, recipesLimit)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.BuildPage(count, authors, c.Request.URL.Path, p))
}
