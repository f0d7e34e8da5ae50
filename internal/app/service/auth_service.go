package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/internal/app/repository"
	"github.com/ikkim/gadgetshop-backend/pkg/logger"
	"github.com/ikkim/gadgetshop-backend/pkg/util"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

type AuthService interface {
	// Register creates the account and its customer profile together.
	Register(input RegisterInput) (*model.User, *model.Customer, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	// GetMe returns the account and its customer profile; the profile is nil
	// for accounts created without one.
	GetMe(userID uint) (*model.User, *model.Customer, error)
}

type authService struct {
	db            *gorm.DB
	userRepo      repository.UserRepository
	customerRepo  repository.CustomerRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	validate      *validator.Validate
}

func NewAuthService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		db:            db,
		userRepo:      userRepo,
		customerRepo:  customerRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		validate:      newValidator(),
	}
}

func (s *authService) Register(input RegisterInput) (*model.User, *model.Customer, *util.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
	})

	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, nil, nil, invalid("email", "must be a valid address")
	}
	if len(input.Password) < minPasswordLength {
		return nil, nil, nil, invalid("password", "must be at least 8 characters")
	}

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         model.RoleUser,
	}
	customer := &model.Customer{
		Phone:   input.Phone,
		Address: input.Address,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		customer.UserID = user.ID
		return s.customerRepo.WithTx(tx).Create(customer)
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			logger.Warn("Registration failed: email already exists", map[string]interface{}{
				"email": email,
			})
			return nil, nil, nil, ErrEmailAlreadyExists
		}
		logger.Error("Failed to register user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, nil, err
	}

	tokens, err := s.issueTokens(user, customer.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":     user.ID,
		"customer_id": customer.ID,
	})
	return user, customer, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if repository.IsNotFound(err) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	var customerID uint
	customer, err := s.customerRepo.FindByUserID(user.ID)
	switch {
	case err == nil:
		customerID = customer.ID
	case !repository.IsNotFound(err):
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user, customerID)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, tokens, nil
}

func (s *authService) issueTokens(user *model.User, customerID uint) (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(
		user.ID,
		customerID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}
	return tokens, nil
}

func (s *authService) GetMe(userID uint) (*model.User, *model.Customer, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": userID,
			})
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	customer, err := s.customerRepo.FindByUserID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, customer, nil
}
