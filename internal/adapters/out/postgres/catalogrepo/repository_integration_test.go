package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"commerce/internal/adapters/out/postgres/catalogrepo"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CatalogRepositoryIntegrationTestSuite provides integration tests for
// CatalogRepository, in particular the atomic counter updates.
type CatalogRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *catalogrepo.GormCatalogRepository
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&catalogrepo.CourseDTO{},
		&catalogrepo.EventDTO{},
		&catalogrepo.DigitalGoodDTO{},
	))
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE courses, events, digital_goods").Error)
	suite.repository = catalogrepo.NewGormCatalogRepository(suite.db)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGetCourse_ExistingCourse_ReturnsSnapshot() {
	ctx := context.Background()
	id := suite.seedCourse("Go Fundamentals", "79.00", true, 12)

	course, err := suite.repository.GetCourse(ctx, id)
	suite.Require().NoError(err)

	suite.Equal(id, course.ID)
	suite.Equal("Go Fundamentals", course.Title)
	suite.True(course.Price.Equal(decimal.RequireFromString("79.00")))
	suite.True(course.Purchasable)
	suite.Equal(12, course.EnrolledCount)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGetCourse_NonExistent_ReturnsNotFoundError() {
	_, err := suite.repository.GetCourse(context.Background(), kernel.NewUUID())

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGetEventForUpdate_ReturnsSnapshot() {
	ctx := context.Background()
	id := suite.seedEvent("Release Party", 100, 40)

	event, err := suite.repository.GetEventForUpdate(ctx, id)
	suite.Require().NoError(err)

	suite.Equal(100, event.Capacity)
	suite.Equal(40, event.AvailableCapacity)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestIncrementCourseEnrollment_BumpsCounter() {
	ctx := context.Background()
	id := suite.seedCourse("Go Fundamentals", "79.00", true, 0)

	suite.Require().NoError(suite.repository.IncrementCourseEnrollment(ctx, id))
	suite.Require().NoError(suite.repository.IncrementCourseEnrollment(ctx, id))

	course, err := suite.repository.GetCourse(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(2, course.EnrolledCount)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestDecrementCourseEnrollment_FlooredAtZero() {
	ctx := context.Background()
	id := suite.seedCourse("Go Fundamentals", "79.00", true, 1)

	suite.Require().NoError(suite.repository.DecrementCourseEnrollment(ctx, id))
	suite.Require().NoError(suite.repository.DecrementCourseEnrollment(ctx, id))

	course, err := suite.repository.GetCourse(ctx, id)
	suite.Require().NoError(err)
	suite.Zero(course.EnrolledCount)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestIncrementCourseEnrollment_MissingCourse_ReturnsNotFoundError() {
	err := suite.repository.IncrementCourseEnrollment(context.Background(), kernel.NewUUID())

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestReserveEventCapacity_DecrementsWithinBounds() {
	ctx := context.Background()
	id := suite.seedEvent("Release Party", 10, 5)

	suite.Require().NoError(suite.repository.ReserveEventCapacity(ctx, id, 3))

	event, err := suite.repository.GetEvent(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(2, event.AvailableCapacity)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestReserveEventCapacity_Insufficient_ReturnsConflictError() {
	ctx := context.Background()
	id := suite.seedEvent("Release Party", 10, 2)

	err := suite.repository.ReserveEventCapacity(ctx, id, 3)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	// Counter must be untouched after the rejected reservation
	event, getErr := suite.repository.GetEvent(ctx, id)
	suite.Require().NoError(getErr)
	suite.Equal(2, event.AvailableCapacity)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestReserveEventCapacity_MissingEvent_ReturnsNotFoundError() {
	err := suite.repository.ReserveEventCapacity(context.Background(), kernel.NewUUID(), 1)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestReleaseEventCapacity_CappedAtTotalCapacity() {
	ctx := context.Background()
	id := suite.seedEvent("Release Party", 10, 9)

	suite.Require().NoError(suite.repository.ReleaseEventCapacity(ctx, id, 5))

	event, err := suite.repository.GetEvent(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(10, event.AvailableCapacity)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestDownloadCounters_RoundTrip() {
	ctx := context.Background()
	id := suite.seedDigitalGood("Ebook", 4)

	suite.Require().NoError(suite.repository.IncrementDownloadCount(ctx, id))
	suite.Require().NoError(suite.repository.DecrementDownloadCount(ctx, id))
	suite.Require().NoError(suite.repository.DecrementDownloadCount(ctx, id))

	good, err := suite.repository.GetDigitalGood(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(3, good.DownloadCount)
}

// seedCourse inserts a course row and returns its identifier.
func (suite *CatalogRepositoryIntegrationTestSuite) seedCourse(
	title, price string, purchasable bool, enrolled int,
) kernel.UUID {
	id := kernel.NewUUID()
	dto := catalogrepo.CourseDTO{
		ID:            id.Bytes(),
		Title:         title,
		Price:         decimal.RequireFromString(price),
		Purchasable:   purchasable,
		EnrolledCount: enrolled,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

// seedEvent inserts an event row and returns its identifier.
func (suite *CatalogRepositoryIntegrationTestSuite) seedEvent(
	title string, capacity, available int,
) kernel.UUID {
	id := kernel.NewUUID()
	dto := catalogrepo.EventDTO{
		ID:                id.Bytes(),
		Title:             title,
		Price:             decimal.RequireFromString("25.00"),
		Purchasable:       true,
		Capacity:          capacity,
		AvailableCapacity: available,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

// seedDigitalGood inserts a digital-good row and returns its identifier.
func (suite *CatalogRepositoryIntegrationTestSuite) seedDigitalGood(title string, downloads int) kernel.UUID {
	id := kernel.NewUUID()
	dto := catalogrepo.DigitalGoodDTO{
		ID:            id.Bytes(),
		Title:         title,
		Price:         decimal.RequireFromString("9.90"),
		Purchasable:   true,
		DownloadCount: downloads,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func TestCatalogRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositoryIntegrationTestSuite))
}
