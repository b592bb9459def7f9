package handlers

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"altura-network/internal/commission"
	"altura-network/internal/database/models"
	"altura-network/internal/gateway/middleware"
	"altura-network/internal/network"
	"altura-network/internal/store"
	"altura-network/internal/utils"
)

const referralCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateReferralCode() string {
	const length = 8
	b := make([]byte, length)
	for i := range b {
		b[i] = referralCodeCharset[rand.Intn(len(referralCodeCharset))]
	}
	return string(b)
}

type UserHTTPHandler struct {
	users     *store.UserStore
	network   *network.Service
	jwtSecret []byte
}

func NewUserHTTPHandler(users *store.UserStore, networkService *network.Service, jwtSecret []byte) *UserHTTPHandler {
	return &UserHTTPHandler{
		users:     users,
		network:   networkService,
		jwtSecret: jwtSecret,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	// Sponsor is the sponsor's id or referral code; optional for the
	// first user.
	Sponsor string `json:"sponsor"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHTTPHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	ctx := c.Request.Context()

	var sponsor commission.User
	haveSponsor := false
	if req.Sponsor != "" {
		existing, err := h.users.ListUsers(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("Failed to resolve sponsor"))
			return
		}
		sponsor, haveSponsor = commission.ResolveSponsor(existing, req.Sponsor)
		if !haveSponsor {
			c.JSON(http.StatusNotFound, errorResponse("Sponsor not found"))
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to hash password"))
		return
	}

	row := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashed),
		ReferralCode: generateReferralCode(),
		IsActive:     true,
	}
	if haveSponsor {
		sponsorRef := req.Sponsor
		row.SponsorRef = &sponsorRef
	}

	if err := h.users.Create(ctx, &row); err != nil {
		c.JSON(http.StatusConflict, errorResponse("Failed to create user: "+err.Error()))
		return
	}

	if haveSponsor {
		if err := h.network.PlaceUnder(ctx, row.ID, sponsor.ID); err != nil {
			// Registration stands; placement can be repaired out of band.
			log.Printf("failed to place user %d under sponsor %d: %v", row.ID, sponsor.ID, err)
		}
	}

	c.JSON(http.StatusCreated, successResponse("User registered", gin.H{
		"id":            row.ID,
		"name":          row.Name,
		"referral_code": row.ReferralCode,
	}))
}

func (h *UserHTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	row, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("Invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("Invalid credentials"))
		return
	}

	token, exp, err := utils.GenerateToken(h.jwtSecret, row.ID, row.Email, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Login successful", gin.H{
		"token":      token,
		"expires_at": exp,
	}))
}

// Me returns the authenticated user's profile.
func (h *UserHTTPHandler) Me(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse("User not found"))
		return
	}

	c.JSON(http.StatusOK, successResponse("User fetched", gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"referral_code": user.ReferralCode,
		"sponsor":       user.SponsorRef,
	}))
}
