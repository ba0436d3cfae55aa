package auth

import "github.com/gin-gonic/gin"

// SetupAuthRoutes configures authentication and user routes. Paths match the
// original API surface.
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	user := rg.Group("/api/auth/user")
	{
		user.POST("/signUp", controller.SignUp)
		user.POST("/signIn", controller.SignIn)
		user.GET("/getUser", controller.GetUser)
		user.PUT("/updateUserPassword", controller.UpdateUserPassword)
		user.GET("/getAllUsers", controller.GetAllUsers)
	}
}
