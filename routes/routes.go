package routes

import (
	"github.com/BAlenkaA/foodgram-project-react/config"
	"github.com/BAlenkaA/foodgram-project-react/controllers"
	"github.com/BAlenkaA/foodgram-project-react/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter создаёт gin.Engine, регистрирует все маршруты и возвращает роутер
func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())

	cfg := config.LoadConfig()

	// CORS middleware ДО роутов
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	authController := controllers.NewAuthController(cfg)
	userController := controllers.NewUserController(cfg)
	tagController := controllers.NewTagController()
	ingredientController := controllers.NewIngredientController()
	recipeController := controllers.NewRecipeController(cfg)

	api := r.Group("/api")

	auth := api.Group("/auth/token")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", middleware.JWTAuthMiddleware(), authController.Logout)
	}

	users := api.Group("/users")
	{
		users.POST("", userController.Register)
		users.GET("", middleware.OptionalJWTMiddleware(), userController.List)
		users.GET("/me", middleware.JWTAuthMiddleware(), userController.Me)
		users.POST("/set_password", middleware.JWTAuthMiddleware(), userController.SetPassword)
		users.GET("/subscriptions", middleware.JWTAuthMiddleware(), userController.Subscriptions)
		users.GET("/:id", middleware.OptionalJWTMiddleware(), userController.Get)
		users.POST("/:id/subscribe", middleware.JWTAuthMiddleware(), userController.Subscribe)
		users.DELETE("/:id/subscribe", middleware.JWTAuthMiddleware(), userController.Unsubscribe)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", tagController.List)
		tags.GET("/:id", tagController.Get)
	}

	ingredients := api.Group("/ingredients")
	{
		ingredients.GET("", ingredientController.List)
		ingredients.GET("/:id", ingredientController.Get)
	}

	recipes := api.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalJWTMiddleware(), recipeController.List)
		recipes.POST("", middleware.JWTAuthMiddleware(), recipeController.Create)
		recipes.GET("/download_shopping_cart", middleware.JWTAuthMiddleware(), recipeController.DownloadShoppingCart)
		recipes.GET("/:id", middleware.OptionalJWTMiddleware(), recipeController.Get)
		recipes.PATCH("/:id", middleware.JWTAuthMiddleware(), recipeController.Update)
		recipes.PUT("/:id", middleware.JWTAuthMiddleware(), recipeController.Update)
		recipes.DELETE("/:id", middleware.JWTAuthMiddleware(), recipeController.Delete)
		recipes.POST("/:id/favorite", middleware.JWTAuthMiddleware(), recipeController.AddFavorite)
		recipes.DELETE("/:id/favorite", middleware.JWTAuthMiddleware(), recipeController.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", middleware.JWTAuthMiddleware(), recipeController.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.JWTAuthMiddleware(), recipeController.RemoveFromCart)
	}

	return r
}
