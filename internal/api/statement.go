package api

import (
	"context"  // Context for Redis operations
	"errors"   // Domain-error matching
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"fintrack/internal/domain"  // Domain models and errors
	"fintrack/internal/service" // Use-case services
	"fintrack/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Exact decimal amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// balanceCacheTTL bounds how stale a cached balance response may be.
const balanceCacheTTL = 60 * time.Second

// StatementRequest is the payload for deposits and withdrawals
type StatementRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"` // Operation amount
	Description string          `json:"description"`               // Free-text description
}

// balanceCacheKey builds the Redis key for a user's balance response
func balanceCacheKey(userID string) string {
	return "balance:user:" + userID
}

// CreateStatementHandler appends a deposit or withdrawal for the
// authenticated user
func CreateStatementHandler(statements *service.StatementService, rdb *redis.Client, opType domain.OperationType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req StatementRequest // Bind JSON request to struct
		// Non-positive amounts are a boundary concern, rejected here
		if err := c.ShouldBindJSON(&req); err != nil || !req.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		statement, err := statements.CreateStatement(c.Request.Context(), userID.(string), opType, req.Amount, req.Description)
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		case errors.Is(err, domain.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
			return
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"type":    opType,
				"error":   err.Error(),
			}).Error("Statement creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create statement"})
			return
		}
		// Invalidate the cached balance for this user
		if rdb != nil {
			_ = utils.DeleteCache(context.Background(), rdb, balanceCacheKey(userID.(string)))
		}
		// Return the persisted statement
		c.JSON(http.StatusCreated, gin.H{"statement": statement})
	}
}

// GetBalanceHandler returns the user's statements and derived balance
func GetBalanceHandler(statements *service.StatementService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background() // Context for Redis operations
		cacheKey := balanceCacheKey(userID.(string))
		var cached service.Balance
		if rdb != nil {
			// Serve from cache when present; the ledger remains the source of
			// truth, this only bounds read load
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
			if err == nil && found {
				c.JSON(http.StatusOK, gin.H{"balance": cached, "cached": true})
				return
			}
		}
		balance, err := statements.GetBalance(c.Request.Context(), userID.(string))
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
			return
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, balance, balanceCacheTTL)
		}
		c.JSON(http.StatusOK, gin.H{"balance": balance, "cached": false})
	}
}

// GetStatementOperationHandler returns a single statement of the
// authenticated user
func GetStatementOperationHandler(statements *service.StatementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		statementID := c.Param("statement_id")
		statement, err := statements.GetStatementOperation(c.Request.Context(), userID.(string), statementID)
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		case errors.Is(err, domain.ErrStatementNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Statement not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statement"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"statement": statement})
	}
}
