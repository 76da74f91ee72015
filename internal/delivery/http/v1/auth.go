package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/adanyl0v/go-planner/internal/services"
)

const sessionCookie = "sessionid"

const (
	signupPage = "signup.html"
	loginPage  = "login.html"
)

type signupRequest struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type signupResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (h *handlerImpl) HandleSignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, signupPage, gin.H{})
}

func (h *handlerImpl) HandleSignup(c *gin.Context) {
	var req signupRequest
	err := c.ShouldBind(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		respondForm(c, signupPage, gin.H{}, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	form := gin.H{"username": req.Username}

	user, err := h.auth.Signup(c, services.SignupParams{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to sign up")
		switch {
		case errors.Is(err, services.ErrEmptyUsername),
			errors.Is(err, services.ErrUsernameTooLong),
			errors.Is(err, services.ErrEmptyPassword),
			errors.Is(err, services.ErrPasswordMismatch),
			errors.Is(err, services.ErrUserAlreadyExists):
			respondForm(c, signupPage, form, newBadRequestError(err.Error()))
		default:
			respondForm(c, signupPage, form, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	if !isJSONRequest(c) {
		c.Redirect(http.StatusSeeOther, "/login/?registered=1")
		return
	}
	c.JSON(http.StatusCreated, signupResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *handlerImpl) HandleLoginPage(c *gin.Context) {
	data := gin.H{}
	if c.Query("registered") != "" {
		data["message"] = "Signup successful! You can now log in."
	}
	c.HTML(http.StatusOK, loginPage, data)
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBind(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		respondForm(c, loginPage, gin.H{}, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	form := gin.H{"username": req.Username}

	fingerprint, err := generateFingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		respondForm(c, loginPage, form, newStatusTextError(http.StatusInternalServerError))
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Username:    req.Username,
		Password:    req.Password,
		Fingerprint: fingerprint,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			respondForm(c, loginPage, form, newUnauthorizedError(services.ErrInvalidCredentials.Error()))
		default:
			respondForm(c, loginPage, form, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	h.setSessionCookie(c, result.Token, time.Until(result.ExpiresAt))

	if !isJSONRequest(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		UserID:    result.UserID,
		ExpiresAt: result.ExpiresAt,
	})
}

func (h *handlerImpl) HandleLogout(c *gin.Context) {
	token, _ := c.Cookie(sessionCookie)

	err := h.auth.Logout(c, token)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to logout")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login/")
}

// respondForm reports err as JSON to API clients and re-renders the page
// with the error for browser form submissions.
func respondForm(c *gin.Context, page string, data gin.H, err apiError) {
	if isJSONRequest(c) {
		abort(c, err)
		return
	}

	data["error"] = err.Message
	c.HTML(err.Code, page, data)
	c.Abort()
}

func isJSONRequest(c *gin.Context) bool {
	return c.ContentType() == binding.MIMEJSON
}

func generateFingerprint(c *gin.Context) (string, error) {
	fingerprintBytes, err := json.Marshal(map[string]string{
		"client_ip":  c.ClientIP(),
		"user_agent": c.Request.UserAgent(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal json: %w", err)
	}
	return string(fingerprintBytes), nil
}

func (h *handlerImpl) setSessionCookie(c *gin.Context, token string, maxAge time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(maxAge.Seconds()),
		"/", "", h.secureCookies, true)
}

func (h *handlerImpl) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1,
		"/", "", h.secureCookies, true)
}
