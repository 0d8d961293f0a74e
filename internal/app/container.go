package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/userhub/domain"
	"github.com/you/userhub/internal/config"
	"github.com/you/userhub/internal/infrastructure/auth"
	"github.com/you/userhub/internal/infrastructure/database"
	"github.com/you/userhub/internal/infrastructure/notifications"
	"github.com/you/userhub/internal/infrastructure/ratelimit"
	"github.com/you/userhub/internal/infrastructure/repositories"
	"github.com/you/userhub/internal/logging"
	"github.com/you/userhub/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo    domain.UserRepository
	PasswordSvc domain.PasswordService
	StrengthSvc domain.StrengthChecker
	TokenSvc    domain.TokenService
	Verifier    domain.PhoneVerifier
	Limiter     domain.RateLimiter
	Audit       domain.AuditLogger
	AccountSvc  domain.AccountService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initServices() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.PasswordSvc = auth.NewPasswordService()
	c.StrengthSvc = auth.NewStrengthChecker()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.TokenTTL)
	c.Verifier = notifications.NewTwilioVerifyService(c.Config.TwilioSID, c.Config.TwilioToken, c.Config.TwilioVerifySID)
	c.Limiter = ratelimit.NewRedisLimiter(c.RedisClient)
	c.Audit = logging.NewAuditLogger(logging.New(c.Config.Environment))

	c.AccountSvc = services.NewAccountService(
		c.UserRepo,
		c.PasswordSvc,
		c.StrengthSvc,
		c.TokenSvc,
		c.Verifier,
		c.Audit,
		c.Config.TokenTTL,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
