package adminController

import (
	"server/config"
	"server/internal/logger"

	. "server/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// AdminController gates the admin views behind the single shared secret. The
// configured password is hashed once at construction so login comparisons are
// constant-time; there is no lockout or attempt tracking.
type AdminController struct {
	passwordHash []byte
	Config       config.Config
	log          logger.Logger
}

func New(config config.Config) (*AdminController, error) {
	log := logger.New("AdminController")

	hash, err := bcrypt.GenerateFromPassword([]byte(config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash admin password", err)
	}

	return &AdminController{
		passwordHash: hash,
		Config:       config,
		log:          log,
	}, nil
}

func (c *AdminController) Login(password string) error {
	log := c.log.Function("Login")

	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
		log.Warn("rejected admin login attempt")
		return ErrBadCredentials
	}

	log.Info("Admin authenticated")
	return nil
}
