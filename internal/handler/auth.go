package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/amir01mn/parking-space-reservation/internal/utils"
)

// AuthHandler implements the single-admin login.  There is no user
// registration here; the admin credential is configured at deploy time as
// an email plus a bcrypt hash, and a successful login yields a short-lived
// access token for the mutating booking endpoints.
type AuthHandler struct {
	AdminEmail        string // configured admin login email
	AdminPasswordHash string // bcrypt hash of the admin password
	JWTSecret         string // secret for signing access tokens
	AccessTTLMin      int    // access token lifetime in minutes
}

// NewAuthHandler constructs an AuthHandler from the configured credential.
func NewAuthHandler(email, passwordHash, jwtSecret string, accessTTLMin int) *AuthHandler {
	return &AuthHandler{
		AdminEmail:        email,
		AdminPasswordHash: passwordHash,
		JWTSecret:         jwtSecret,
		AccessTTLMin:      accessTTLMin,
	}
}

// Login handles POST /v1/auth/login.  The request body carries the admin
// email and password; on a match an HS256 access token is returned.  Both
// a wrong email and a wrong password answer the same 401 so the response
// does not reveal which half was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Email != h.AdminEmail ||
		bcrypt.CompareHashAndPassword([]byte(h.AdminPasswordHash), []byte(body.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.JWTSecret, h.AdminEmail, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
	})
}
