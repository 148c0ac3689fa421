package controllers

import (
	"propshare/dto"
	"propshare/models"
	"propshare/response"
	"propshare/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
	Roles *services.RoleService
}

func NewUserController(users *services.UserService, roles *services.RoleService) *UserController {
	return &UserController{Users: users, Roles: roles}
}

// GetUsers danh sách user cho admin, lọc theo tên, email, role, trạng thái
func (ctrl *UserController) GetUsers(c *gin.Context) {
	var query dto.UserListQuery
	if !bindQuery(c, &query) {
		return
	}
	page, limit := query.Normalize()
	users, total, err := ctrl.Users.List(c.Request.Context(), services.UserFilter{
		Name:   query.Name,
		Email:  query.Email,
		Role:   query.Role,
		Status: query.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.ToUserResponses(users), page, limit, int(total))
}

func (ctrl *UserController) GetUserDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	user, err := ctrl.Users.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(*user))
}

// UpdateProfile cập nhật thông tin của chính user đang đăng nhập
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.Users.UpdateProfile(c.Request.Context(), userID, services.ProfileInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Avatar:      req.Avatar,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(*user))
}

func (ctrl *UserController) ChangeUserStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.Users.UpdateStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(*user))
}

func (ctrl *UserController) ChangeUserRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UserRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.Users.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(*user))
}

func (ctrl *UserController) GetRoles(c *gin.Context) {
	roles, err := ctrl.Roles.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, roles)
}

func (ctrl *UserController) CreateRole(c *gin.Context) {
	var req dto.RoleRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := ctrl.Roles.Create(c.Request.Context(), models.Role{ID: req.ID, Name: req.Name, Description: req.Description})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, role)
}

func (ctrl *UserController) UpdateRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RoleRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := ctrl.Roles.Update(c.Request.Context(), int(id), req.Name, req.Description)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, role)
}

func (ctrl *UserController) DeleteRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Roles.Delete(c.Request.Context(), int(id)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
