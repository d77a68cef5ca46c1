package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"nlivrilik/internal/adapters/out/postgres/orderrepo"
	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's tracker dependency for tests that
// exercise persistence without a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// OrderRepositoryIntegrationTestSuite tests order persistence against a real
// PostgreSQL database, including the conditional claim under concurrency.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestAddAndGet_RoundTrip verifies a pending order survives persistence with
// contact, address and the initial history entry intact.
func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal("Yassine El Mouss", retrieved.Contact().FullName())
	suite.Equal("12 Avenue Mohammed V, Rabat", retrieved.Address().Formatted())
	suite.Equal("two pizzas", retrieved.Content())
	suite.Nil(retrieved.Courier())
	suite.False(retrieved.Financials().IsReconciled())

	history := retrieved.History()
	suite.Require().Len(history, 1)
	suite.Equal(order.Pending, history[0].Status)
}

// TestUpdate_PersistsFullWorkflow walks an order to Delivered and verifies the
// financials, history and timestamps round-trip through the database.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsFullWorkflow() {
	ctx := context.Background()
	now := time.Now()
	courierID := kernel.NewUUID()

	testOrder := suite.createTestOrder()
	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = testOrder.Assign(courierID, now)
	suite.Require().NoError(err)

	actor := kernel.Actor{ID: courierID, Role: kernel.RoleCourier}
	_, err = testOrder.ChangeStatus(order.InTransit, actor, "picked up", now)
	suite.Require().NoError(err)

	financials, err := order.NewFinancialDetails(10000, 2000, nil, "CASH", true)
	suite.Require().NoError(err)
	err = testOrder.CompleteDelivery(courierID, financials, "left at reception", now)
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Delivered, retrieved.Status())
	suite.Require().NotNil(retrieved.Courier())
	suite.True(retrieved.Courier().IsEqual(courierID))
	suite.True(retrieved.Financials().IsReconciled())
	suite.Equal(order.Cents(12000), retrieved.Financials().Total())
	suite.Equal("left at reception", retrieved.DeliveryNotes())
	suite.NotNil(retrieved.ActualDeliveryTime())

	// Pending, Ready, InTransit, Delivered
	suite.Len(retrieved.History(), 4)
}

// TestUpdate_MissingOrder verifies updating a row that was never persisted fails.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	err := suite.repo.Update(ctx, testOrder)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGet_NotFound verifies the domain not-found error for unknown IDs.
func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repo.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestClaim_ConcurrentClaims runs two claims for the same order in parallel
// and verifies exactly one wins while the other observes the conflict.
func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_ConcurrentClaims() {
	ctx := context.Background()
	now := time.Now()

	testOrder := suite.createTestOrder()
	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	courierA := kernel.NewUUID()
	courierB := kernel.NewUUID()

	// Both couriers hold a copy read before anyone claimed
	copyA, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	copyB, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = copyA.Assign(courierA, now)
	suite.Require().NoError(err)
	err = copyB.Assign(courierB, now)
	suite.Require().NoError(err)

	var wg sync.WaitGroup
	results := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0] = suite.repo.Claim(ctx, copyA)
	}()
	go func() {
		defer wg.Done()
		results[1] = suite.repo.Claim(ctx, copyB)
	}()
	wg.Wait()

	winners := 0
	losers := 0
	for _, claimErr := range results {
		switch {
		case claimErr == nil:
			winners++
		default:
			suite.Require().ErrorIs(claimErr, order.ErrAlreadyAssigned)
			losers++
		}
	}
	suite.Equal(1, winners, "Exactly one claim should win")
	suite.Equal(1, losers, "Exactly one claim should lose")

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.Courier())
	suite.Equal(order.Ready, retrieved.Status())
}

// TestClaim_AfterCancel verifies a claim whose pre-read copy was still open
// cannot overwrite a row that was cancelled in the meantime: the cancelled
// status and its history entry survive.
func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_AfterCancel() {
	ctx := context.Background()
	now := time.Now()

	testOrder := suite.createTestOrder()
	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Courier reads the order while it is still open
	staleCopy, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	err = staleCopy.Assign(kernel.NewUUID(), now)
	suite.Require().NoError(err)

	// Admin cancels before the claim lands
	adminActor := kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleAdmin}
	_, err = testOrder.ChangeStatus(order.Cancelled, adminActor, "customer withdrew", now)
	suite.Require().NoError(err)
	err = suite.repo.Update(ctx, testOrder)
	suite.Require().NoError(err)

	err = suite.repo.Claim(ctx, staleCopy)
	suite.Require().ErrorIs(err, order.ErrInvalidState)

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, retrieved.Status())
	suite.Nil(retrieved.Courier())

	history := retrieved.History()
	suite.Require().Len(history, 2)
	suite.Equal(order.Cancelled, history[1].Status)
	suite.Equal("customer withdrew", history[1].Note)
}

// TestClaim_MissingOrder verifies claiming a never-persisted order reports not found.
func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_MissingOrder() {
	ctx := context.Background()
	now := time.Now()

	testOrder := suite.createTestOrder()
	err := testOrder.Assign(kernel.NewUUID(), now)
	suite.Require().NoError(err)

	err = suite.repo.Claim(ctx, testOrder)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestCountActiveForCourier verifies only Ready and InTransit orders count
// against the courier's load.
func (suite *OrderRepositoryIntegrationTestSuite) TestCountActiveForCourier() {
	ctx := context.Background()
	now := time.Now()
	courierID := kernel.NewUUID()

	// Two active deliveries
	for range 2 {
		active := suite.createTestOrder()
		err := active.Assign(courierID, now)
		suite.Require().NoError(err)
		err = suite.repo.Add(ctx, active)
		suite.Require().NoError(err)
	}

	// One delivered order, which no longer counts
	done := suite.createTestOrder()
	err := done.Assign(courierID, now)
	suite.Require().NoError(err)
	actor := kernel.Actor{ID: courierID, Role: kernel.RoleCourier}
	_, err = done.ChangeStatus(order.InTransit, actor, "", now)
	suite.Require().NoError(err)
	financials, err := order.NewFinancialDetails(5000, 1000, nil, "CARD", true)
	suite.Require().NoError(err)
	err = done.CompleteDelivery(courierID, financials, "", now)
	suite.Require().NoError(err)
	err = suite.repo.Add(ctx, done)
	suite.Require().NoError(err)

	// Another courier's active order
	other := suite.createTestOrder()
	err = other.Assign(kernel.NewUUID(), now)
	suite.Require().NoError(err)
	err = suite.repo.Add(ctx, other)
	suite.Require().NoError(err)

	count, err := suite.repo.CountActiveForCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.Equal(2, count)
}

// TestGetAllUnassignedBefore verifies the stale order scan returns only
// unassigned, non-terminal orders older than the cutoff, oldest first.
func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllUnassignedBefore() {
	ctx := context.Background()
	base := time.Now().Add(-2 * time.Hour)

	oldest := suite.createTestOrderAt(base)
	older := suite.createTestOrderAt(base.Add(30 * time.Minute))
	fresh := suite.createTestOrderAt(time.Now())

	assigned := suite.createTestOrderAt(base)
	err := assigned.Assign(kernel.NewUUID(), base)
	suite.Require().NoError(err)

	cancelled := suite.createTestOrderAt(base)
	adminActor := kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleAdmin}
	_, err = cancelled.ChangeStatus(order.Cancelled, adminActor, "out of zone", base)
	suite.Require().NoError(err)

	for _, o := range []*order.Order{oldest, older, fresh, assigned, cancelled} {
		err = suite.repo.Add(ctx, o)
		suite.Require().NoError(err)
	}

	stale, err := suite.repo.GetAllUnassignedBefore(ctx, time.Now().Add(-time.Hour))
	suite.Require().NoError(err)

	suite.Require().Len(stale, 2)
	suite.Equal(oldest.ID(), stale[0].ID())
	suite.Equal(older.ID(), stale[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	return suite.createTestOrderAt(time.Now())
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderAt(createdAt time.Time) *order.Order {
	contact, err := order.NewContactInfo("Yassine El Mouss", "yassine@example.com", "+212600000000")
	suite.Require().NoError(err)

	point, err := kernel.NewGeoPoint(-6.8498, 33.9716)
	suite.Require().NoError(err)
	address, err := order.NewDeliveryAddress("12 Avenue Mohammed V, Rabat", point, "")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), nil, contact, address, "two pizzas", createdAt)
	suite.Require().NoError(err)
	return testOrder
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
