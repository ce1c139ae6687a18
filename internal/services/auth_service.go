package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/config"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	maxPasswordBytes = 72
)

// ClientInfo identifies the device a session is opened from.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	photos *PhotoService
}

func NewAuthService(db *gorm.DB, cfg *config.Config, photos *PhotoService) *AuthService {
	return &AuthService{db: db, cfg: cfg, photos: photos}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the user and signs them in.
func (s *AuthService) Register(req *dto.SignupRequest, client ClientInfo) (*dto.AuthResponse, error) {
	v := NewValidationError()
	email := normalizeEmail(req.Email)

	if email == "" {
		v.Add("email", MsgBlank)
	} else {
		var count int64
		if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if count > 0 {
			v.Add("email", MsgTaken)
		}
	}

	switch {
	case req.Password == "":
		v.Add("password", MsgBlank)
	case len(req.Password) < minPasswordLength:
		v.Add("password", fmt.Sprintf("is too short (minimum is %d characters)", minPasswordLength))
	case len(req.Password) > maxPasswordBytes:
		v.Add("password", fmt.Sprintf("is too long (maximum is %d bytes)", maxPasswordBytes))
	}

	switch {
	case req.PasswordConfirmation == "":
		v.Add("password_confirmation", MsgBlank)
	case req.PasswordConfirmation != req.Password:
		v.Add("password_confirmation", "doesn't match Password")
	}

	if v.Any() {
		return nil, v
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Email: email, PasswordHash: string(hash)}
	var session models.Session

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		session = models.Session{UserID: user.ID, IPAddress: client.IPAddress, UserAgent: client.UserAgent}
		return tx.Omit(clause.Associations).Create(&session).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		v.Add("email", MsgTaken)
		return nil, v
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID)
	return s.issueToken(&user, &session)
}

// Login verifies the credentials and opens a new session.
func (s *AuthService) Login(req *dto.LoginRequest, client ClientInfo) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := models.Session{UserID: user.ID, IPAddress: client.IPAddress, UserAgent: client.UserAgent}
	if err := s.db.Omit(clause.Associations).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.issueToken(&user, &session)
}

// Logout ends a single session. Tokens that reference it stop working.
func (s *AuthService) Logout(userID, sessionID uint) error {
	return s.db.Where("id = ? AND user_id = ?", sessionID, userID).Delete(&models.Session{}).Error
}

// Authenticate checks that the session referenced by a verified token is
// still open.
func (s *AuthService) Authenticate(userID, sessionID uint) error {
	var count int64
	if err := s.db.Model(&models.Session{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	if count == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteAccount removes the user and everything they own, after confirming
// the password.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint, password string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return ErrUserNotFound
	}

	if password == "" {
		v := NewValidationError()
		v.Add("password", MsgBlank)
		return v
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	var photoKeys []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		keys, err := ownedPhotoKeys(tx, userID)
		if err != nil {
			return err
		}
		photoKeys = keys

		recipes := tx.Model(&models.Recipe{}).Select("id").Where("user_id = ?", userID)
		ingredients := tx.Model(&models.Ingredient{}).Select("id").Where("user_id = ?", userID)

		if err := tx.Where("user_id = ?", userID).Delete(&models.Batch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id IN (?)", recipes).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.InventoryItem{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM ingredients_tags WHERE ingredient_id IN (?)", ingredients).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.photos.Discard(ctx, photoKeys...)
	slog.Info("account deleted", "user_id", userID, "photos", len(photoKeys))
	return nil
}

func ownedPhotoKeys(tx *gorm.DB, userID uint) ([]string, error) {
	var keys []string
	for _, model := range []interface{}{&models.Ingredient{}, &models.InventoryItem{}, &models.Recipe{}} {
		var found []string
		if err := tx.Model(model).
			Where("user_id = ? AND photo_key <> ''", userID).
			Pluck("photo_key", &found).Error; err != nil {
			return nil, err
		}
		keys = append(keys, found...)
	}
	return keys, nil
}

func (s *AuthService) issueToken(user *models.User, session *models.Session) (*dto.AuthResponse, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.SessionTTL)

	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"sid":   strconv.FormatUint(uint64(session.ID), 10),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	}, nil
}
