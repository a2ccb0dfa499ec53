package services

import (
	"errors"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"
	"github.com/ZhatkinVyacheslav/foodgram-st/utils"

	"gorm.io/gorm"
)

// GetUser returns one public profile. viewerID 0 means anonymous.
func GetUser(id, viewerID uint) (*UserPublic, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out := serializeUser(&user, viewerID)
	return &out, nil
}

// ListUsers returns a page of profiles, newest first.
func ListUsers(viewerID uint, p PageParams) ([]UserPublic, int64, error) {
	var count int64
	if err := config.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := config.DB.Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserPublic, 0, len(users))
	for i := range users {
		out = append(out, serializeUser(&users[i], viewerID))
	}
	return out, count, nil
}

// SetAvatar stores a base64 image as the user's avatar, replacing any
// previous file, and returns the new avatar URL.
func SetAvatar(userID uint, mediaRoot, data string) (string, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return "", err
	}

	relPath, err := utils.SaveBase64Image(mediaRoot, "users", data)
	if err != nil {
		return "", validationf("%s", err)
	}

	old := user.Avatar
	if err := config.DB.Model(&user).Update("avatar", relPath).Error; err != nil {
		utils.RemoveImage(mediaRoot, relPath)
		return "", err
	}
	utils.RemoveImage(mediaRoot, old)

	return utils.MediaURL(relPath), nil
}

// DeleteAvatar removes the user's avatar file and clears the field.
func DeleteAvatar(userID uint, mediaRoot string) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return err
	}
	if err := config.DB.Model(&user).Update("avatar", "").Error; err != nil {
		return err
	}
	utils.RemoveImage(mediaRoot, user.Avatar)
	return nil
}

// Subscribe makes follower follow the author with the given id.
func Subscribe(followerID, authorID uint) (*UserPublic, error) {
	if followerID == authorID {
		return nil, ErrSelfFollow
	}

	var author models.User
	if err := config.DB.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var n int64
	config.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, authorID).
		Count(&n)
	if n > 0 {
		return nil, ErrAlreadyExists
	}

	follow := models.Follow{FollowerID: followerID, FollowingID: authorID}
	if err := config.DB.Create(&follow).Error; err != nil {
		return nil, err
	}

	out := serializeUser(&author, followerID)
	return &out, nil
}

// Unsubscribe removes the follow relation; ErrNotFound if there is none.
func Unsubscribe(followerID, authorID uint) error {
	res := config.DB.
		Where("follower_id = ? AND following_id = ?", followerID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Subscriptions lists the authors the user follows, each with a truncated
// recipe list and a total recipe count. recipesLimit <= 0 means no cap.
func Subscriptions(userID uint, p PageParams, recipesLimit int) ([]SubscribedAuthor, int64, error) {
	base := config.DB.Model(&models.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Session(&gorm.Session{})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	err := base.Order("follows.created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]SubscribedAuthor, 0, len(authors))
	for i := range authors {
		author := SubscribedAuthor{UserPublic: serializeUser(&authors[i], userID)}
		author.IsSubscribed = true

		config.DB.Model(&models.Recipe{}).
			Where("author_id = ?", authors[i].ID).
			Count(&author.RecipesCount)

		q := config.DB.Where("author_id = ?", authors[i].ID).Order("created_at DESC")
		if recipesLimit > 0 {
			q = q.Limit(recipesLimit)
		}
		var recipes []models.Recipe
		if err := q.Find(&recipes).Error; err != nil {
			return nil, 0, err
		}
		author.Recipes = make([]RecipeCompact, 0, len(recipes))
		for j := range recipes {
			author.Recipes = append(author.Recipes, serializeCompactRecipe(&recipes[j]))
		}
		out = append(out, author)
	}
	return out, count, nil
}
