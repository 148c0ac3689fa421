package controllers

import (
	"propshare/dto"
	"propshare/response"
	"propshare/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth   *services.AuthService
	Users  *services.UserService
	Tokens *services.TokenManager
}

func NewAuthController(auth *services.AuthService, users *services.UserService, tokens *services.TokenManager) *AuthController {
	return &AuthController{Auth: auth, Users: users, Tokens: tokens}
}

func (ctrl *AuthController) loginResponse(token string, user dto.UserResponse) dto.LoginResponse {
	return dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(ctrl.Tokens.TTL().Seconds()),
		User:        user,
	}
}

// Register tạo tài khoản chủ sở hữu
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.Auth.Register(c.Request.Context(), services.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.ToUserResponse(*user))
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, user, err := ctrl.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, ctrl.loginResponse(token, dto.ToUserResponse(*user)))
}

// GoogleLogin đăng nhập bằng ID token của Google
func (ctrl *AuthController) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, user, err := ctrl.Auth.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, ctrl.loginResponse(token, dto.ToUserResponse(*user)))
}

func (ctrl *AuthController) Me(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := ctrl.Users.Get(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(*user))
}

func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ctrl.Auth.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
