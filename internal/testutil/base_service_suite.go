package testutil

import (
	"context"
	"time"

	"github.com/learnhub/learnhub/internal/cache"
	"github.com/learnhub/learnhub/internal/config"
	"github.com/learnhub/learnhub/internal/domain/coupon"
	"github.com/learnhub/learnhub/internal/domain/course"
	"github.com/learnhub/learnhub/internal/domain/user"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/postgres"
	"github.com/learnhub/learnhub/internal/types"
	"github.com/learnhub/learnhub/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	CouponRepo      coupon.Repository
	CouponUsageRepo coupon.UsageRepository
	CourseRepo      course.Repository
	UserRepo        user.Repository
}

// BaseServiceTestSuite provides common functionality for all service test
// suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	cache.Initialize(s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	couponStore := NewInMemoryCouponStore()
	usageStore := NewInMemoryCouponUsageStore()

	s.stores = Stores{
		CouponRepo:      couponStore,
		CouponUsageRepo: usageStore,
		CourseRepo:      NewInMemoryCourseStore(),
		UserRepo:        NewInMemoryUserStore(),
	}

	s.db = NewMockPostgresClient(s.logger, couponStore, usageStore)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.CouponRepo.(*InMemoryCouponStore).Clear()
	s.stores.CouponUsageRepo.(*InMemoryCouponUsageStore).Clear()
	s.stores.CourseRepo.(*InMemoryCourseStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the mock db client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the time captured at test setup
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
