package service

import (
	"Amoria/internal/api/config"
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/redis"
	"Amoria/internal/pkg/security"
	"Amoria/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	GetUserSimpleInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	if regDTO.Username == nil || regDTO.Password == nil {
		return ErrMissingLoginCredentials
	}
	if regDTO.Role != consts.RoleMale && regDTO.Role != consts.RoleFemale {
		return ErrParamInvalid
	}

	findUser, err := s.userRepo.GetUserByUsername(ctx, *regDTO.Username)
	if err != nil {
		return UnExpectedError
	}
	if findUser != nil {
		return ErrUserUsernameExist
	}

	passwordHash, err := security.HashPassword(*regDTO.Password)
	if err != nil {
		return err
	}

	detail := model.UserDetail{}
	if err := copier.Copy(&detail, regDTO); err != nil {
		return err
	}

	user := &model.User{
		Username:       regDTO.Username,
		Password:       &passwordHash,
		Role:           regDTO.Role,
		MembershipTier: consts.TierBasic,
		UserDetail:     detail,
	}
	// 付费角色注册即送体验金币
	if regDTO.Role == consts.RoleMale {
		user.CoinBalance = config.Cfg.Billing.WelcomeCoins
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return err
	}

	log.Info("用户注册成功", "userId", user.ID, "role", user.Role)
	return nil
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error) {
	if credDTO.Username == nil || credDTO.Password == nil {
		return "", ErrMissingLoginCredentials
	}

	user, err := s.userRepo.GetUserByUsername(ctx, *credDTO.Username)
	if err != nil {
		return "", UnExpectedError
	}
	if user == nil || user.IsDelete {
		return "", ErrUserNotFound
	}
	if user.IsBan {
		return "", ErrUserBan
	}
	if user.Password == nil {
		return "", ErrPasswordIncorrect
	}
	if err := security.CheckPasswordHash(*credDTO.Password, *user.Password); err != nil {
		return "", ErrPasswordIncorrect
	}

	return security.GenerateToken(user.ID, []string{user.Role})
}

// Logout 把 token 签名写入黑名单，有效期对齐 token 生命周期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, security.JWTExpirationTime)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	if err := copier.Copy(userDTO, &user.UserDetail); err != nil {
		return nil, err
	}
	userDTO.UserID = &user.ID
	return userDTO, nil
}

// GetUserSimpleInfo 昵称头像等轻量资料，带 redis 缓存
func (s *UserServiceImpl) GetUserSimpleInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	key := consts.UserSimpleInfoKey + strconv.FormatUint(id, 10)
	value, err := redis.GetValue(ctx, key)
	if err == nil && value != "" {
		var cached dto.UserDTO
		if err := json.Unmarshal([]byte(value), &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	userDTO := &dto.UserDTO{
		UserID:    &user.ID,
		Nickname:  &user.UserDetail.Nickname,
		AvatarURL: &user.UserDetail.AvatarURL,
		Role:      &user.Role,
	}

	if jsonStr, err := json.Marshal(userDTO); err == nil {
		_ = redis.SetWithExpiration(ctx, key, string(jsonStr), time.Hour*1)
	}
	return userDTO, nil
}
