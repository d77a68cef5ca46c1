package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "nlivrilik/internal/adapters/out/postgres"
	"nlivrilik/internal/adapters/out/postgres/orderrepo"
	"nlivrilik/internal/adapters/out/postgres/ratingrepo"
	"nlivrilik/internal/adapters/out/postgres/userrepo"
	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/core/domain/model/rating"
	"nlivrilik/internal/core/domain/model/user"
	"nlivrilik/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &userrepo.UserDTO{}, &ratingrepo.RatingDTO{})
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, users, delivery_ratings").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.UserRepository(), "First instance should provide user repository")
	suite.NotNil(uow1.RatingRepository(), "First instance should provide rating repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Visible within the transaction
	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Persists after commit
	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
	suite.Equal(order.Pending, retrievedOrder.Status())
}

// TestUnitOfWork_ClaimWorkflow verifies the order claim workflow spanning the
// order and user repositories within a single transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ClaimWorkflow() {
	ctx := context.Background()
	now := time.Now()

	testOrder := suite.createTestOrder()
	testCourier := suite.createTestCourier()

	setupUow := suite.factory.Create()
	err := setupUow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = setupUow.UserRepository().Add(ctx, testCourier)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	claimedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	err = claimedOrder.Assign(testCourier.ID(), now)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Claim(ctx, claimedOrder)
	suite.Require().NoError(err)

	courier, err := uow.UserRepository().Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	err = courier.AddActiveDelivery(claimedOrder.ID())
	suite.Require().NoError(err)
	err = uow.UserRepository().Update(ctx, courier)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Both sides of the claim persisted atomically
	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Ready, retrievedOrder.Status())
	suite.Require().NotNil(retrievedOrder.Courier())
	suite.True(retrievedOrder.Courier().IsEqual(testCourier.ID()))

	retrievedCourier, err := newUow.UserRepository().Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	profile, err := retrievedCourier.CourierProfile()
	suite.Require().NoError(err)
	suite.True(profile.HasActiveDelivery(testOrder.ID()),
		"Courier should carry the claimed order in the active set")
}

// TestUnitOfWork_ClaimConflict verifies that a claim on an already-assigned
// order fails with the domain conflict error.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ClaimConflict() {
	ctx := context.Background()
	now := time.Now()

	testOrder := suite.createTestOrder()
	firstCourier := suite.createTestCourier()
	secondCourier := suite.createTestCourier()

	setupUow := suite.factory.Create()
	err := setupUow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Both couriers read the order while it is still unassigned
	winner, err := setupUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	loser, err := setupUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = winner.Assign(firstCourier.ID(), now)
	suite.Require().NoError(err)
	err = loser.Assign(secondCourier.ID(), now)
	suite.Require().NoError(err)

	// First claim wins
	uow1 := suite.factory.Create()
	err = uow1.Begin(ctx)
	suite.Require().NoError(err)
	err = uow1.OrderRepository().Claim(ctx, winner)
	suite.Require().NoError(err)
	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	// Second claim built from the stale read loses
	uow2 := suite.factory.Create()
	err = uow2.Begin(ctx)
	suite.Require().NoError(err)
	err = uow2.OrderRepository().Claim(ctx, loser)
	suite.Require().ErrorIs(err, order.ErrAlreadyAssigned)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Winner's assignment stands
	finalUow := suite.factory.Create()
	retrievedOrder, err := finalUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrievedOrder.Courier())
	suite.True(retrievedOrder.Courier().IsEqual(firstCourier.ID()))
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()
	testCourier := suite.createTestCourier()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.UserRepository().Add(ctx, testCourier)
	suite.Require().NoError(err)

	// Visible within the transaction
	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	_, err = uow.UserRepository().Get(ctx, testCourier.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Gone after rollback
	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	_, err = newUow.UserRepository().Get(ctx, testCourier.ID())
	suite.Require().Error(err, "Courier should not exist after rollback")
}

// TestUnitOfWork_RatingAfterDelivery verifies the rating repository within the
// unit of work, including the one-rating-per-order conflict on a second submission.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RatingAfterDelivery() {
	ctx := context.Background()
	now := time.Now()

	courierID := kernel.NewUUID()
	deliveredOrder := suite.createDeliveredOrder(courierID, now)

	setupUow := suite.factory.Create()
	err := setupUow.OrderRepository().Add(ctx, deliveredOrder)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	newRating, err := rating.NewDeliveryRating(
		kernel.NewUUID(), deliveredOrder, nil, 5, "fast and friendly", now)
	suite.Require().NoError(err)

	err = uow.RatingRepository().Add(ctx, newRating)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrievedRating, err := newUow.RatingRepository().GetByOrderID(ctx, deliveredOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(5, retrievedRating.Rating())
	suite.True(retrievedRating.CourierID().IsEqual(courierID))

	// Second submission for the same order hits the unique index
	duplicate, err := rating.NewDeliveryRating(
		kernel.NewUUID(), deliveredOrder, nil, 1, "changed my mind", now)
	suite.Require().NoError(err)

	err = newUow.RatingRepository().Add(ctx, duplicate)
	suite.Require().ErrorIs(err, rating.ErrAlreadyRated)
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := suite.createTestOrder()
	order2 := suite.createTestOrder()

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)

	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	// Each transaction sees only its own changes
	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	_, err = uow2.OrderRepository().Get(ctx, order2.ID())
	suite.Require().NoError(err, "UOW2 should see order2")

	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Only order1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()

	// Add without beginning transaction (auto-commit)
	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// createTestOrder creates a valid pending order for testing purposes.
func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	contact, err := order.NewContactInfo("Yassine El Mouss", "yassine@example.com", "+212600000000")
	suite.Require().NoError(err)

	point, err := kernel.NewGeoPoint(-6.8498, 33.9716)
	suite.Require().NoError(err)
	address, err := order.NewDeliveryAddress("12 Avenue Mohammed V, Rabat", point, "")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), nil, contact, address, "two pizzas", time.Now())
	suite.Require().NoError(err)
	return testOrder
}

// createTestCourier creates a valid courier for testing purposes with a
// unique email to satisfy the unique index.
func (suite *UnitOfWorkIntegrationTestSuite) createTestCourier() *user.User {
	id := kernel.NewUUID()
	courier, err := user.NewCourier(id, "Karim", id.String()+"@example.com")
	suite.Require().NoError(err)
	return courier
}

// createDeliveredOrder walks an order through the full delivery workflow so
// rating preconditions hold.
func (suite *UnitOfWorkIntegrationTestSuite) createDeliveredOrder(courierID kernel.UUID, now time.Time) *order.Order {
	testOrder := suite.createTestOrder()

	err := testOrder.Assign(courierID, now)
	suite.Require().NoError(err)

	actor := kernel.Actor{ID: courierID, Role: kernel.RoleCourier}
	_, err = testOrder.ChangeStatus(order.InTransit, actor, "", now)
	suite.Require().NoError(err)

	financials, err := order.NewFinancialDetails(10000, 2000, nil, "CASH", true)
	suite.Require().NoError(err)

	err = testOrder.CompleteDelivery(courierID, financials, "left at reception", now)
	suite.Require().NoError(err)

	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
