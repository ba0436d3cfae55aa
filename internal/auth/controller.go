package auth

import (
	"net/http"

	"eventbook/internal/shared/apierror"
	"eventbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SignUp handles POST /api/auth/user/signUp
func (c *Controller) SignUp(ctx *gin.Context) {
	var req SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apierror.Wrap(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	user, err := c.service.SignUp(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, http.StatusOK, "User registered successfully", user)
}

// SignIn handles POST /api/auth/user/signIn
func (c *Controller) SignIn(ctx *gin.Context) {
	var req SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apierror.Wrap(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	result, err := c.service.SignIn(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, http.StatusOK, "Login successful", result)
}

// GetUser handles GET /api/auth/user/getUser
func (c *Controller) GetUser(ctx *gin.Context) {
	user, err := c.service.GetUser(ctx.Request.Context(), ctx.GetHeader("Authorization"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, http.StatusOK, "User fetched successfully", user)
}

// UpdateUserPassword handles PUT /api/auth/user/updateUserPassword
func (c *Controller) UpdateUserPassword(ctx *gin.Context) {
	var req UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apierror.Wrap(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	err := c.service.UpdateUserPassword(ctx.Request.Context(), ctx.GetHeader("Authorization"), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, http.StatusOK, "Password has been changed successfully", "Password updated successfully")
}

// GetAllUsers handles GET /api/auth/user/getAllUsers
func (c *Controller) GetAllUsers(ctx *gin.Context) {
	result, err := c.service.GetAllUsers(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	message := "Users fetched successfully"
	if len(result) == 0 {
		message = "No users found"
	}
	response.RespondJSON(ctx, http.StatusOK, message, result)
}
