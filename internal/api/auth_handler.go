package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumecraft/internal/api/middleware"
	"resumecraft/internal/auth"
	"resumecraft/internal/database"
)

const (
	refreshCookieName   = "refresh_token"
	refreshBlacklistKey = "auth:refresh:blacklist:"

	loginRateKeyPrefix = "rate:login:"
	loginFailKeyPrefix = "lock:login:fail:"
	loginLockKeyPrefix = "lock:login:"
)

// AuthHandler 处理注册、登录、刷新与退出。
// 刷新令牌通过 HttpOnly Cookie 下发，旋转后旧 jti 进黑名单。
type AuthHandler struct {
	db           *gorm.DB
	authService  *auth.AuthService
	redis        redis.UniversalClient
	logger       *slog.Logger
	loginRate    int
	lockAfter    int
	lockTTL      time.Duration
	cookieDomain string
}

// NewAuthHandler 构造认证处理器。
func NewAuthHandler(db *gorm.DB, authService *auth.AuthService, redisClient redis.UniversalClient, logger *slog.Logger, loginRateLimitPerHour int, loginLockThreshold int, loginLockTTL time.Duration, cookieDomain string) *AuthHandler {
	return &AuthHandler{
		db:           db,
		authService:  authService,
		redis:        redisClient,
		logger:       logger,
		loginRate:    loginRateLimitPerHour,
		lockAfter:    loginLockThreshold,
		lockTTL:      loginLockTTL,
		cookieDomain: strings.TrimSpace(cookieDomain),
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// Register 创建新用户账号。用户名冲突返回 409。
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.log(c).With(slog.String("username", req.Username))

	err := h.db.WithContext(ctx).Where("username = ?", req.Username).First(&database.User{}).Error
	switch {
	case err == nil:
		logger.Info("register conflict: user already exists")
		Conflict(c, "username already taken")
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		logger.Error("register lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	hashed, err := h.authService.HashPassword(req.Password)
	if err != nil {
		logger.Error("hash password failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	user := database.User{Username: req.Username, PasswordHash: hashed}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		logger.Error("create user failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	c.Status(http.StatusCreated)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken        string `json:"access_token"`
	TokenType          string `json:"token_type"`
	ExpiresIn          int    `json:"expires_in"`
	MustChangePassword bool   `json:"must_change_password"`
}

// Login 校验口令并返回 TokenPair。
// 按 IP+用户名 做小时级限速，连续失败达到阈值后临时锁定账号。
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.log(c).With(slog.String("username", req.Username))
	key := strings.ToLower(req.Username)

	if h.loginThrottled(ctx, c.ClientIP(), key) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}
	if ttl, _ := h.redis.TTL(ctx, loginLockKeyPrefix+key).Result(); ttl > 0 {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "account temporarily locked"})
		return
	}

	var user database.User
	if err := h.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Info("login failed: user not found")
			h.recordLoginFailure(ctx, key)
			Unauthorized(c)
			return
		}
		logger.Error("login query failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if !h.authService.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Info("login failed: password mismatch", slog.Uint64("user_id", uint64(user.ID)))
		h.recordLoginFailure(ctx, key)
		Unauthorized(c)
		return
	}

	// 登录成功，清掉失败计数。
	_ = h.redis.Del(ctx, loginFailKeyPrefix+key).Err()

	h.issueTokens(c, user.ID, user.MustChangePassword, logger)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh 旋转刷新令牌：校验、拉黑旧 jti、颁发新 TokenPair。
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	logger := h.log(c)

	claims, ok := h.refreshClaims(c, logger)
	if !ok {
		Unauthorized(c)
		return
	}

	blacklisted, err := h.isRevoked(ctx, claims.ID)
	if err != nil {
		logger.Error("refresh token blacklist lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if blacklisted {
		logger.Info("refresh token revoked", slog.String("jti", claims.ID))
		Unauthorized(c)
		return
	}

	var user database.User
	if err := h.db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		logger.Info("refresh user not found", slog.Any("error", err))
		Unauthorized(c)
		return
	}

	// 先拉黑旧令牌，再颁发新的，避免同一令牌刷出两条链。
	if err := h.revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		logger.Error("refresh revoke old token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.issueTokens(c, user.ID, user.MustChangePassword, logger)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required,min=8,max=72"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=8,max=72"`
}

// ChangePassword 校验当前密码并更新为新密码，成功后旧刷新令牌失效。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		BadRequest(c, "password confirmation does not match")
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	logger := h.log(c).With(slog.Uint64("user_id", uint64(userID)))

	var user database.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		logger.Info("change password: user not found", slog.Any("error", err))
		Unauthorized(c)
		return
	}

	if !h.authService.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		logger.Info("change password: current password mismatch")
		Unauthorized(c)
		return
	}
	if strings.TrimSpace(req.NewPassword) == strings.TrimSpace(req.CurrentPassword) {
		BadRequest(c, "new password must be different from current password")
		return
	}

	hashed, err := h.authService.HashPassword(req.NewPassword)
	if err != nil {
		logger.Error("change password: hash failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if err := h.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"password_hash":        hashed,
		"must_change_password": false,
	}).Error; err != nil {
		logger.Error("change password: update failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	// 当前会话带着刷新令牌的话，顺手拉黑，强制换链。
	if token, err := c.Cookie(refreshCookieName); err == nil && token != "" {
		if claims, err := h.authService.ValidateToken(token); err == nil &&
			claims.TokenType == auth.TokenTypeRefresh && claims.ID != "" {
			if err := h.revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
				logger.Error("change password: revoke refresh failed", slog.Any("error", err))
				Internal(c, "internal error")
				return
			}
		}
	}

	h.issueTokens(c, user.ID, false, logger)
}

// Logout 拉黑刷新令牌并清除 Cookie。
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.extractRefreshToken(c) == "" {
		BadRequest(c, "refresh token missing")
		return
	}

	logger := h.log(c)
	claims, ok := h.refreshClaims(c, logger)
	if !ok {
		Unauthorized(c)
		return
	}

	if err := h.revoke(c.Request.Context(), claims.ID, claims.ExpiresAt); err != nil {
		logger.Error("logout revoke token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.writeRefreshCookie(c, "", -1)
	c.Status(http.StatusOK)
}

// issueTokens 颁发 TokenPair，刷新令牌写入 Cookie，访问令牌走响应体。
func (h *AuthHandler) issueTokens(c *gin.Context, userID uint, mustChangePassword bool, logger *slog.Logger) {
	pair, err := h.authService.GenerateTokenPair(userID, mustChangePassword)
	if err != nil {
		logger.Error("generate token pair failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	maxAge := int(h.authService.RefreshTokenTTL().Seconds())
	if maxAge <= 0 {
		maxAge = int(time.Hour.Seconds())
	}
	h.writeRefreshCookie(c, pair.RefreshToken, maxAge)

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:        pair.AccessToken,
		TokenType:          "Bearer",
		ExpiresIn:          int(h.authService.AccessTokenTTL().Seconds()),
		MustChangePassword: mustChangePassword,
	})
}

// refreshClaims 取出并校验刷新令牌，要求 refresh 类型且带 jti。
func (h *AuthHandler) refreshClaims(c *gin.Context, logger *slog.Logger) (*auth.TokenClaims, bool) {
	token := h.extractRefreshToken(c)
	if token == "" {
		return nil, false
	}
	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		logger.Info("refresh token invalid", slog.Any("error", err))
		return nil, false
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		logger.Info("refresh token wrong type", slog.String("token_type", claims.TokenType))
		return nil, false
	}
	if claims.ID == "" {
		logger.Info("refresh token missing jti")
		return nil, false
	}
	return claims, true
}

// extractRefreshToken 优先读 Cookie，其次读请求体。
func (h *AuthHandler) extractRefreshToken(c *gin.Context) string {
	if token, err := c.Cookie(refreshCookieName); err == nil && token != "" {
		return token
	}
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// writeRefreshCookie 写刷新令牌 Cookie，maxAge 为负时清除。
func (h *AuthHandler) writeRefreshCookie(c *gin.Context, value string, maxAge int) {
	cookie := &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Domain:   h.cookieDomain,
	}
	if maxAge > 0 {
		cookie.Expires = time.Now().Add(time.Duration(maxAge) * time.Second)
	}
	http.SetCookie(c.Writer, cookie)
}

func (h *AuthHandler) isRevoked(ctx context.Context, jti string) (bool, error) {
	err := h.redis.Get(ctx, refreshBlacklistKey+jti).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return false, err
}

// revoke 把 jti 写入黑名单，保留到令牌自身过期为止。
func (h *AuthHandler) revoke(ctx context.Context, jti string, expiresAt *jwt.NumericDate) error {
	ttl := h.authService.RefreshTokenTTL()
	if expiresAt != nil {
		ttl = time.Until(expiresAt.Time)
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return h.redis.Set(ctx, refreshBlacklistKey+jti, "revoked", ttl).Err()
}

// loginThrottled 按 IP+用户名 统计小时窗口内的尝试次数。
// Redis 不可用时放行，登录可用性优先于限速。
func (h *AuthHandler) loginThrottled(ctx context.Context, ip, username string) bool {
	key := loginRateKeyPrefix + ip + ":" + username + ":" + time.Now().UTC().Format("2006010215")
	count, err := incrWithTTL(ctx, h.redis, key, time.Hour)
	if err != nil {
		return false
	}
	return count > int64(h.loginRate)
}

// recordLoginFailure 累计失败次数，达到阈值则锁定账号。
func (h *AuthHandler) recordLoginFailure(ctx context.Context, username string) {
	failKey := loginFailKeyPrefix + username
	count, err := h.redis.Incr(ctx, failKey).Result()
	if err != nil {
		return
	}
	if count == 1 {
		_ = h.redis.Expire(ctx, failKey, h.lockTTL).Err()
	}
	if count >= int64(h.lockAfter) {
		_ = h.redis.Set(ctx, loginLockKeyPrefix+username, "1", h.lockTTL).Err()
	}
}

func (h *AuthHandler) log(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func isHTTPSRequest(c *gin.Context) bool {
	if c.Request == nil {
		return false
	}
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.Request.Header.Get("X-Forwarded-Proto"), "https")
}
