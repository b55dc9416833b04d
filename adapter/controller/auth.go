package controller

import (
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"github.com/gin-gonic/gin"
)

const basicRealm = `Basic realm="ship-fault-report", charset="UTF-8"`

// BasicAuth 单账号 HTTP Basic 认证，未配置账号时直接放行
func BasicAuth(authVerifyService service.AuthVerifyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authVerifyService.Enabled() {
			c.Next()
			return
		}
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", basicRealm)
			ReplyError(c, NewRestHTTPError(HTTPError[service.ErrTypeUnauthorized]))
			return
		}
		if err := authVerifyService.BasicVerify(c.Request.Context(), username, password); err != nil {
			c.Header("WWW-Authenticate", basicRealm)
			ReplyError(c, HandServiceError(err))
			return
		}
		c.Set(gin.AuthUserKey, username)
		c.Next()
	}
}

