package service

import (
	"context"
	"crypto/subtle"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredential = errors.New("invalid username or password")

//go:generate mockgen -source ./auth_verify.go -destination ../../mock/service/mock_auth_verify_service.go -package mock
type AuthVerifyService interface {
	// Enabled 未配置用户名时不做认证
	Enabled() bool
	BasicVerify(ctx context.Context, username, password string) core.ServiceError
}

type authVerifyService struct {
	// auth 每次调用时读取，配置热更新后立即生效
	auth func() config.AuthCfg
}

func (r *authVerifyService) Enabled() bool {
	return r.auth().Username != ""
}

func (r *authVerifyService) BasicVerify(ctx context.Context, username, password string) core.ServiceError {
	cfg := r.auth()
	if cfg.Username == "" {
		return nil
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Username)) == 1
	// 用户名不匹配时仍然比较一次哈希，响应时间不泄露用户名是否存在
	pwdErr := bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(password))
	if !userOK || pwdErr != nil {
		log.Warnf("Unauthorized login attempt for user %q", username)
		return NewSvcUnauthorizedError(errBadCredential)
	}
	return nil
}

// HashPassword 生成配置文件 auth.passwordHash 使用的 bcrypt 哈希
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "generate bcrypt hash")
	}
	return string(hash), nil
}
