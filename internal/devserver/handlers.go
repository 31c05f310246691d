package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trufund/trufund/internal/common"
)

type registerReq struct {
	UserID   string `json:"id" binding:"required"`
	FullName string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address" binding:"required"`
	DOB      string `json:"dob" binding:"required"`
	Aadhar   string `json:"aadhar" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid registration payload")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not process the registration")
		return
	}

	otp, err := common.MakeRandDigitString(otpLength)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not process the registration")
		return
	}

	u := &user{
		ID:           req.UserID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		DOB:          req.DOB,
		Aadhar:       req.Aadhar,
		PasswordHash: hash,
		OTP:          otp,
		OTPIssuedAt:  time.Now(),
	}

	if err := s.store.createUser(u); err != nil {
		fail(c, http.StatusBadRequest, "An account with this ID or email already exists")
		return
	}

	// dev mode: the code is logged instead of emailed
	s.log.Info(context.Background(), "verification code issued", "email", req.Email, "otp", otp)

	c.JSON(http.StatusOK, gin.H{"message": "Registered, check your email for the verification code"})
}

type verifyEmailReq struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

func (s *Server) verifyEmail(c *gin.Context) {
	var req verifyEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid verification payload")
		return
	}

	if err := s.store.verifyEmail(req.Email, req.OTP, otpValidity); err != nil {
		fail(c, http.StatusBadRequest, "Invalid or expired verification code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

type finalizeReq struct {
	UserID string `json:"userid" binding:"required"`
}

func (s *Server) finalizeRegistration(c *gin.Context) {
	var req finalizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	if err := s.store.activate(req.UserID); err != nil {
		fail(c, http.StatusBadRequest, "Email is not verified")
		return
	}

	if err := s.setSessionCookie(c, req.UserID); err != nil {
		fail(c, http.StatusInternalServerError, "Could not create a session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration complete"})
}

type loginReq struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid login payload")
		return
	}

	u, err := s.store.byIdentifier(req.Identifier)
	if err != nil || !checkPassword(u.PasswordHash, req.Password) {
		// one message for both cases, do not reveal which part was wrong
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !u.Activated {
		fail(c, http.StatusUnauthorized, "Account is not activated")
		return
	}

	if err := s.setSessionCookie(c, u.ID); err != nil {
		fail(c, http.StatusInternalServerError, "Could not create a session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userData": gin.H{
			"userid": u.ID,
			"email":  u.Email,
		},
	})
}

type makeRequestReq struct {
	Amount      float64   `json:"amount" binding:"required"`
	Incentive   float64   `json:"incentive"`
	Description string    `json:"description" binding:"required"`
	EndDate     time.Time `json:"end_date"`
}

func (s *Server) makeRequest(c *gin.Context) {
	var req makeRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid loan request")
		return
	}
	if req.Amount <= 0 {
		fail(c, http.StatusBadRequest, "Loan amount must be positive")
		return
	}

	s.store.addLoan(loanRequest{
		UserID:      c.GetString("userID"),
		Amount:      req.Amount,
		Incentive:   req.Incentive,
		Description: req.Description,
		EndDate:     req.EndDate,
		ReceivedAt:  time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Loan request received"})
}

func (s *Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
