package handler

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/pkg/response"
	"Amoria/internal/pkg/util"
	"Amoria/internal/service"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBind(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateRegDTO(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userSvc.Register(c.Request.Context(), &registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) Login(c *gin.Context) {
	var credentialDTO dto.CredentialDTO
	if err := c.ShouldBind(&credentialDTO); err != nil {
		response.Error(c, err)
		return
	}
	token, err := s.userSvc.Login(c.Request.Context(), &credentialDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"token": token})
}

func (s *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetMyInfo 获取当前登录用户资料
func (s *UserHandler) GetMyInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")
	res, err := s.userSvc.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetUserSimpleInfo 获取指定用户的轻量资料
func (s *UserHandler) GetUserSimpleInfo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.userSvc.GetUserSimpleInfo(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
