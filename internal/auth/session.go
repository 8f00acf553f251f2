package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/navigatingnc/bid-management-system/internal/config"
	"github.com/navigatingnc/bid-management-system/internal/util"
	"go.uber.org/zap"
)

// MailSession remembers which authenticated Gmail account the email screens
// should pre-select, carried in a signed cookie. The console has no users
// of its own; account credentials stay entirely on the backend.
type MailSession struct {
	logger    *zap.SugaredLogger
	jwtSecret string
}

type MailSessionInterface interface {
	IssueAccountToken(account string) (string, error)
	VerifyAccountToken(token string) (string, error)
}

const accountTokenTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid account token")

func NewMailSession(cfg config.SessionConfig, logger *zap.SugaredLogger) *MailSession {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("development")
	}

	return &MailSession{
		jwtSecret: cfg.JWT_SECRET,
		logger:    logger,
	}
}

func (m MailSession) IssueAccountToken(account string) (string, error) {
	claims := jwt.MapClaims{
		"account": account,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(accountTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.jwtSecret))
}

func (m MailSession) VerifyAccountToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(m.jwtSecret), nil
	})
	if err != nil {
		m.logger.Debugf("Failed to verify account token. Error: %v", err)
		return "", err
	}

	if !parsedToken.Valid {
		m.logger.Debug("Account token is not valid")
		return "", ErrInvalidToken
	}

	account, ok := claims["account"].(string)
	if !ok || account == "" {
		return "", ErrInvalidToken
	}

	return account, nil
}
