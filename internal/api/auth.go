package api

import (
	"errors"
	"net/http" // HTTP status codes

	"fintrack/internal/domain"  // Domain errors
	"fintrack/internal/service" // Use-case services

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`            // Display name must be provided
	Email    string `json:"email" binding:"required,email"`     // Email must be provided and well-formed
	Password string `json:"password" binding:"required,min=4"`  // Password must be provided
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// AuthResponse carries the session token and the user it belongs to
type AuthResponse struct {
	User  *domain.User `json:"user"`  // Authenticated user, hash filtered by json:"-"
	Token string       `json:"token"` // JWT token
}

// RegisterHandler creates a new user account
func RegisterHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// Duplicate email is a caller mistake, not a server fault
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Return the created user
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, token, err := users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, domain.ErrUserNotFound) {
			// Unknown email and wrong password look the same to the caller
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
	}
}

// ProfileHandler returns the authenticated user's record
func ProfileHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.Profile(c.Request.Context(), userID.(string))
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
