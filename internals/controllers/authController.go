package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bu6wer8/student-services-V2/internals/auth"
	"github.com/bu6wer8/student-services-V2/internals/config"
	"github.com/bu6wer8/student-services-V2/internals/middleware"
	"github.com/bu6wer8/student-services-V2/internals/utils"
)

// sessionCookieMaxAge matches the absolute session TTL, so the cookie and the
// server-side session expire together.
const sessionCookieMaxAge = int(auth.SessionTTL / time.Second)

type AuthController struct {
	Auth    *auth.Service
	Cookies *config.CookieConfig
}

func NewAuthController(svc *auth.Service, cookies *config.CookieConfig) *AuthController {
	return &AuthController{Auth: svc, Cookies: cookies}
}

// GetCaptcha hands the login form a fresh challenge.
func (a *AuthController) GetCaptcha(c *gin.Context) {
	c.JSON(http.StatusOK, a.Auth.Captcha.Generate())
}

// LoginPage reports the state the login form needs: whether the caller is
// already authenticated and whether its IP is currently locked out.
func (a *AuthController) LoginPage(c *gin.Context) {
	if sessionID, err := c.Cookie(middleware.SessionCookieName); err == nil {
		ip := utils.ClientIP(c.Request)
		if _, ok := a.Auth.VerifySession(sessionID, ip); ok {
			c.JSON(http.StatusOK, gin.H{"authenticated": true, "redirect": "/admin"})
			return
		}
	}

	ip := utils.ClientIP(c.Request)
	remaining, locked := a.Auth.Attempts.LockoutRemaining(ip)

	resp := gin.H{"authenticated": false, "rate_limited": locked}
	if locked {
		resp["lockout_time"] = int(remaining.Seconds())
	}
	c.JSON(http.StatusOK, resp)
}

// Login runs the login gate and sets the session cookie on success.
func (a *AuthController) Login(c *gin.Context) {
	var body struct {
		Username      string `form:"username" binding:"required"`
		Password      string `form:"password" binding:"required"`
		CaptchaAnswer string `form:"captcha_answer" binding:"required"`
		CaptchaToken  string `form:"captcha_token" binding:"required"`
	}

	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Missing login fields"})
		return
	}

	res := a.Auth.Login(auth.LoginRequest{
		Username:      body.Username,
		Password:      body.Password,
		CaptchaToken:  body.CaptchaToken,
		CaptchaAnswer: body.CaptchaAnswer,
		IP:            utils.ClientIP(c.Request),
	})

	switch res.Status {
	case auth.LoginRateLimited:
		c.JSON(http.StatusTooManyRequests, gin.H{
			"detail":       "Too many failed attempts. Please wait before trying again.",
			"rate_limited": true,
			"lockout_time": res.LockoutSeconds,
		})

	case auth.LoginBadCaptcha:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid CAPTCHA. Please try again."})

	case auth.LoginBadCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password."})

	case auth.LoginOK:
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookieName, res.SessionID, sessionCookieMaxAge,
			"/", a.Cookies.Domain, a.Cookies.IsSecure, a.Cookies.HttpOnly)
		c.JSON(http.StatusOK, gin.H{"detail": "Login successful", "redirect": "/admin"})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "An error occurred during login. Please try again."})
	}
}

// Logout revokes the session, clears the cookie and sends the caller back to
// the login page. Safe to call without a session.
func (a *AuthController) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(middleware.SessionCookieName); err == nil && sessionID != "" {
		a.Auth.Logout(sessionID, utils.ClientIP(c.Request))
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1,
		"/", a.Cookies.Domain, a.Cookies.IsSecure, a.Cookies.HttpOnly)
	c.Redirect(http.StatusFound, "/admin/login")
}

// CreateToken mints a short-lived bearer token for the REST API. Only
// reachable behind the session guard.
func (a *AuthController) CreateToken(c *gin.Context) {
	principal := c.GetString(middleware.PrincipalKey)

	token, err := a.Auth.Tokens.Issue(principal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(auth.AccessTokenTTL.Seconds()),
	})
}
