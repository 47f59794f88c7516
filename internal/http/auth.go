package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelflife/shelflife/internal/auth"
	"github.com/shelflife/shelflife/internal/config"
)

type AuthController struct {
	service *auth.Service
	cfg     config.Auth
}

func NewAuthController(service *auth.Service, cfg config.Auth) *AuthController {
	return &AuthController{service: service, cfg: cfg}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Admno    string `json:"admno"`
	Branch   string `json:"branch"`
	Semester string `json:"semester"`
}

func (controller *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "All fields are required")
		return
	}

	_, err := controller.service.Register(auth.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		AdmissionNumber: req.Admno,
		Branch:          req.Branch,
		Semester:        req.Semester,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrFieldsRequired):
			respondBadRequest(c, "All fields are required")
		case errors.Is(err, auth.ErrEmailInvalid):
			respondBadRequest(c, err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			respondBadRequest(c, "User already exists")
		case errors.Is(err, auth.ErrAdmissionNumberTaken):
			respondBadRequest(c, "Admission number already exists")
		default:
			respondInternalError(c, err, "register")
		}
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (controller *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondBadRequest(c, "Email and password are required")
		return
	}

	user, err := controller.service.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Invalid email or password"})
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	token, err := auth.CreateToken(user, controller.cfg.TokenSecret, controller.cfg.TokenExpiry)
	if err != nil {
		respondInternalError(c, err, "login: sign token")
		return
	}

	// The token travels both in a same-site cookie and in the body so
	// API clients without cookie jars can use the Authorization header.
	maxAge := int(controller.cfg.TokenExpiry.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", controller.cfg.SecureCookies, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Sign-in successful",
		"token":   token,
		"user":    user,
	})
}

func (controller *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", controller.cfg.SecureCookies, true)
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
