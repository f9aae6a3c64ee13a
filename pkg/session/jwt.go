package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"TikLite.com/cmd/model"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/jwt"
)

const (
	payloadKey  = "JWT_PAYLOAD"
	loginErrKey = "login_error"
	loginUser   = "login_user"
)

// LoginFunc 校验邮箱密码，返回登录用户
type LoginFunc func(ctx context.Context, email, password string) (*model.User, error)

type LoginParam struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type TokenResponse struct {
	Token  string      `json:"token"`
	Expire int64       `json:"expire"`
	User   *model.User `json:"user,omitempty"`
}

// Manager 基于hertz-contrib/jwt的会话管理
type Manager struct {
	mw *jwt.HertzJWTMiddleware
}

func New(secret string, timeout, maxRefresh time.Duration, login LoginFunc) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	mw, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:          "tiklite",
		Key:            []byte(secret),
		Timeout:        timeout,
		MaxRefresh:     maxRefresh,
		IdentityKey:    constants.IdentityKey,
		TokenLookup:    "header: Authorization, query: token, cookie: " + constants.JWTCookie,
		TokenHeadName:  "Bearer",
		TimeFunc:       time.Now,
		SendCookie:     true,
		CookieName:     constants.JWTCookie,
		CookieHTTPOnly: true,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if user, ok := data.(*model.User); ok {
				// 雪花ID超出float64精度，按字符串保存
				return jwt.MapClaims{constants.IdentityKey: strconv.FormatInt(user.UserId, 10)}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			return identityFromClaims(jwt.ExtractClaims(ctx, c))
		},
		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			var req LoginParam
			if err := c.Bind(&req); err != nil {
				c.Set(loginErrKey, errno.ParamErr)
				return nil, err
			}
			user, err := login(ctx, req.Email, req.Password)
			if err != nil {
				c.Set(loginErrKey, err)
				return nil, err
			}
			c.Set(loginUser, user)
			return user, nil
		},
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			id, ok := data.(int64)
			return ok && id > 0
		},
		HTTPStatusMessageFunc: func(e error, ctx context.Context, c *app.RequestContext) string {
			return e.Error()
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			if v, ok := c.Get(loginErrKey); ok {
				if err, ok := v.(error); ok {
					pack.SendResponse(c, err, nil)
					return
				}
			}
			pack.SendResponse(c, errno.AuthorizationErr.WithMessage(message), nil)
		},
		LoginResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			resp := &TokenResponse{Token: token, Expire: expire.UnixMilli()}
			if v, ok := c.Get(loginUser); ok {
				resp.User, _ = v.(*model.User)
			}
			pack.SendResponse(c, errno.Success, resp)
		},
		RefreshResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			pack.SendResponse(c, errno.Success, &TokenResponse{Token: token, Expire: expire.UnixMilli()})
		},
		LogoutResponse: func(ctx context.Context, c *app.RequestContext, code int) {
			pack.SendResponse(c, errno.Success, nil)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Manager{mw: mw}, nil
}

func identityFromClaims(claims jwt.MapClaims) interface{} {
	raw, ok := claims[constants.IdentityKey].(string)
	if !ok {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return id
}

// RequireAuth 未登录时返回AuthorizationErr
func (m *Manager) RequireAuth() app.HandlerFunc {
	return m.mw.MiddlewareFunc()
}

// OptionalAuth 有合法token时注入用户ID，否则按游客继续
func (m *Manager) OptionalAuth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		claims, err := m.mw.GetClaimsFromJWT(ctx, c)
		if err == nil {
			c.Set(payloadKey, claims)
			if id := identityFromClaims(claims); id != nil {
				c.Set(constants.IdentityKey, id)
			}
		}
		c.Next(ctx)
	}
}

func (m *Manager) LoginHandler(ctx context.Context, c *app.RequestContext) {
	m.mw.LoginHandler(ctx, c)
}

func (m *Manager) RefreshHandler(ctx context.Context, c *app.RequestContext) {
	m.mw.RefreshHandler(ctx, c)
}

func (m *Manager) LogoutHandler(ctx context.Context, c *app.RequestContext) {
	m.mw.LogoutHandler(ctx, c)
}

// IssueToken 注册成功后直接签发token
func (m *Manager) IssueToken(user *model.User) (*TokenResponse, error) {
	token, expire, err := m.mw.TokenGenerator(user)
	if err != nil {
		hlog.Errorf("issue token for user %d failed: %v", user.UserId, err)
		return nil, errno.ServiceErr
	}
	return &TokenResponse{Token: token, Expire: expire.UnixMilli(), User: user}, nil
}

// CurrentUserID 未登录返回0
func CurrentUserID(c *app.RequestContext) int64 {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
