package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "session"

func checkAuthHandler(mgr AuthManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			c.JSON(http.StatusOK, gin.H{"loggedIn": false})
			return
		}
		email, err := mgr.Verify(token)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"loggedIn": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"loggedIn": true, "email": email})
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func loginHandler(mgr AuthManager, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if !bindAndValidate(c, &req) {
			return
		}
		token, err := mgr.Login(req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
			return
		}
		c.SetCookie(sessionCookie, token, int(mgr.TTL().Seconds()), "/", "", secureCookie, true)
		c.JSON(http.StatusOK, gin.H{"loggedIn": true, "email": req.Email})
	}
}

func logoutHandler(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(sessionCookie, "", -1, "/", "", secureCookie, true)
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
	}
}
