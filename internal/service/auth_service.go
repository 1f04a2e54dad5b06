package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService 单用户口令登录，签发会话 JWT
type AuthService interface {
	// Login 校验管理口令并签发会话令牌
	Login(ctx context.Context, params *dto.AuthRequest, client string, ip string) (*dto.AuthTokenDTO, error)
}

type authService struct {
	password string
	tokens   app.TokenManager
	expiry   time.Duration
}

// NewAuthService 创建 AuthService 实例
// password 为配置文件中的管理口令，支持 bcrypt 哈希或明文
func NewAuthService(password string, tokens app.TokenManager, expiry time.Duration) AuthService {
	if expiry == 0 {
		expiry = 30 * 24 * time.Hour
	}
	return &authService{
		password: password,
		tokens:   tokens,
		expiry:   expiry,
	}
}

// Login 校验管理口令并签发会话令牌
func (s *authService) Login(ctx context.Context, params *dto.AuthRequest, client string, ip string) (*dto.AuthTokenDTO, error) {
	if s.password == "" {
		return nil, code.ErrorUserLoginFailed.WithDetails("password login is not configured")
	}
	if !s.verify(params.Password) {
		global.Logger.Warn("login rejected",
			zap.String("client", client),
			zap.String("ip", ip),
		)
		return nil, code.ErrorUserLoginFailed
	}

	sessionID := uuid.NewString()
	token, err := s.tokens.Generate(sessionID, client, ip)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	global.Logger.Info("session issued",
		zap.String(logger.FieldSessionID, sessionID),
		zap.String("client", client),
	)
	return &dto.AuthTokenDTO{
		Token:     token,
		ExpiredAt: timex.Time(time.Now().Add(s.expiry)),
	}, nil
}

// verify 口令比对，bcrypt 哈希走 bcrypt，明文走常数时间比较
func (s *authService) verify(candidate string) bool {
	if strings.HasPrefix(s.password, "$2a$") || strings.HasPrefix(s.password, "$2b$") || strings.HasPrefix(s.password, "$2y$") {
		return util.CheckPasswordHash(s.password, candidate)
	}
	return subtle.ConstantTimeCompare([]byte(s.password), []byte(candidate)) == 1
}

var _ AuthService = (*authService)(nil)
