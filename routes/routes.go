package routes

import (
	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/controllers"
	"github.com/ZhatkinVyacheslav/foodgram-st/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(settings config.Settings) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.AllowedHosts(settings.AllowedHosts))

	if len(settings.CSRFTrustedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = settings.CSRFTrustedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	// Uploaded images, the collected static surface of the app.
	r.Static("/media", settings.MediaRoot)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/token/login", controllers.Login)
		auth.POST("/token/logout", middlewares.AuthMiddleware(), controllers.Logout)
	}

	users := api.Group("/users")
	users.Use(middlewares.OptionalAuth())
	{
		users.POST("/", controllers.Register)
		users.GET("/", controllers.ListUsers)
		users.GET("/:id", controllers.GetUser)

		authed := users.Group("")
		authed.Use(middlewares.AuthMiddleware())
		{
			authed.GET("/me", controllers.Me)
			authed.PUT("/me/avatar", controllers.SetAvatar)
			authed.DELETE("/me/avatar", controllers.DeleteAvatar)
			authed.POST("/:id/subscribe", controllers.Subscribe)
			authed.DELETE("/:id/subscribe", controllers.Unsubscribe)
			authed.GET("/subscriptions", controllers.Subscriptions)
		}
	}

	ingredients := api.Group("/ingredients")
	{
		ingredients.GET("/", controllers.ListIngredients)
		ingredients.GET("/:id", controllers.GetIngredient)
	}

	recipes := api.Group("/recipes")
	recipes.Use(middlewares.OptionalAuth())
	{
		recipes.GET("/", controllers.ListRecipes)
		recipes.GET("/:id", controllers.GetRecipe)

		authed := recipes.Group("")
		authed.Use(middlewares.AuthMiddleware())
		{
			authed.POST("/", controllers.CreateRecipe)
			authed.PATCH("/:id", controllers.UpdateRecipe)
			authed.DELETE("/:id", controllers.DeleteRecipe)
			authed.POST("/:id/favorite", controllers.AddFavorite)
			authed.DELETE("/:id/favorite", controllers.RemoveFavorite)
			authed.POST("/:id/shopping_cart", controllers.AddToCart)
			authed.DELETE("/:id/shopping_cart", controllers.RemoveFromCart)
			authed.GET("/download_shopping_cart", controllers.DownloadShoppingCart)
		}
	}

	return r
}
