package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
)

type orderFixture struct {
	cartSvc  *CartService
	orderSvc *OrderService
	products *fakeProducts
	carts    *fakeCarts
	orders   *fakeOrders
	users    *fakeUsers
}

func newOrderFixture() *orderFixture {
	products := newFakeProducts()
	carts := newFakeCarts()
	orders := newFakeOrders()
	users := newFakeUsers()
	return &orderFixture{
		cartSvc:  NewCartService(products, carts),
		orderSvc: NewOrderService(products, carts, orders, users),
		products: products,
		carts:    carts,
		orders:   orders,
		users:    users,
	}
}

func admin() Actor {
	return Actor{UserID: primitive.NewObjectID(), Role: models.RoleAdmin}
}

func regular() Actor {
	return Actor{UserID: primitive.NewObjectID(), Role: models.RoleUser}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newOrderFixture()
	userID := primitive.NewObjectID()

	_, err := f.orderSvc.PlaceOrder(context.Background(), userID, "1 Main St", models.PaymentCash)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.orders.orders)
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newOrderFixture()
	userID := primitive.NewObjectID()
	productID := f.products.add(models.Product{Name: "Mug", Price: 10})
	require.NoError(t, f.cartSvc.AddItem(context.Background(), userID, productID, 1))

	_, err := f.orderSvc.PlaceOrder(context.Background(), userID, "  ", models.PaymentCash)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = f.orderSvc.PlaceOrder(context.Background(), userID, "1 Main St", "bitcoin")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = f.orderSvc.PlaceOrder(context.Background(), userID, "1 Main St", "")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	// Failed attempts keep the cart intact and place nothing
	view, err := f.cartSvc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Empty(t, f.orders.orders)
}

func TestPlaceOrderSnapshotsTotalAndClearsCart(t *testing.T) {
	f := newOrderFixture()
	userID := primitive.NewObjectID()
	productA := f.products.add(models.Product{Name: "A", Price: 10})
	productB := f.products.add(models.Product{Name: "B", Price: 5})

	require.NoError(t, f.cartSvc.AddItem(context.Background(), userID, productA, 2))
	require.NoError(t, f.cartSvc.AddItem(context.Background(), userID, productB, 1))

	order, err := f.orderSvc.PlaceOrder(context.Background(), userID, "1 Main St", models.PaymentCard)
	require.NoError(t, err)

	assert.Equal(t, 25.0, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentCard, order.PaymentMethod)
	assert.False(t, order.ID.IsZero())
	require.Len(t, order.Items, 2)

	sum := 0.0
	for _, item := range order.Items {
		sum += item.PriceAtTime * float64(item.Quantity)
	}
	assert.Equal(t, order.Total, sum)

	view, err := f.cartSvc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestPlaceOrderPriceIsFrozen(t *testing.T) {
	f := newOrderFixture()
	userID := primitive.NewObjectID()
	productID := f.products.add(models.Product{Name: "Mug", Price: 10})
	require.NoError(t, f.cartSvc.AddItem(context.Background(), userID, productID, 2))

	order, err := f.orderSvc.PlaceOrder(context.Background(), userID, "1 Main St", models.PaymentCash)
	require.NoError(t, err)

	f.products.setPrice(productID, 99)

	stored, err := f.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, stored.Items[0].PriceAtTime)
	assert.Equal(t, 20.0, stored.Total)
}

func TestPlaceOrderAppliesDiscountToSnapshot(t *testing.T) {
	f := newOrderFixture()
	userID := primitive.NewObjectID()
	productID := f.products.add(models.Product{Name: "Mug", Price: 20, DiscountPercent: 50})
	require.NoError(t, f.cartSvc.AddItem(context.Background(), userID, productID, 1))

	order, err := f.orderSvc.PlaceOrder(context.Background(), userID, "1 Main St", models.PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, 10.0, order.Items[0].PriceAtTime)
	assert.Equal(t, 10.0, order.Total)
}

func TestPlaceOrderInsertFailureKeepsCart(t *testing.T) {
	f := newOrderFixture()
	userID := primitive.NewObjectID()
	productID := f.products.add(models.Product{Name: "Mug", Price: 10})
	require.NoError(t, f.cartSvc.AddItem(context.Background(), userID, productID, 1))

	f.orders.insertErr = errors.New("write concern failure")

	_, err := f.orderSvc.PlaceOrder(context.Background(), userID, "1 Main St", models.PaymentCash)
	require.Error(t, err)

	view, err := f.cartSvc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Empty(t, f.orders.orders)
}

func placeTestOrder(t *testing.T, f *orderFixture, userID primitive.ObjectID) *models.Order {
	t.Helper()
	productID := f.products.add(models.Product{Name: "Mug", Price: 10})
	require.NoError(t, f.cartSvc.AddItem(context.Background(), userID, productID, 1))
	order, err := f.orderSvc.PlaceOrder(context.Background(), userID, "1 Main St", models.PaymentCash)
	require.NoError(t, err)
	return order
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	f := newOrderFixture()
	order := placeTestOrder(t, f, primitive.NewObjectID())

	_, err := f.orderSvc.UpdateStatus(context.Background(), regular(), order.ID, models.StatusShipped, "")
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := f.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestUpdateStatusAcceptsAnyRecognizedTransition(t *testing.T) {
	f := newOrderFixture()
	order := placeTestOrder(t, f, primitive.NewObjectID())

	// No adjacency is enforced; every recognized status is reachable from
	// every other, including leaving a terminal state.
	statuses := []string{
		models.StatusProcessing,
		models.StatusCompleted,
		models.StatusPending,
		models.StatusShipped,
		models.StatusCancelled,
	}
	for _, status := range statuses {
		updated, err := f.orderSvc.UpdateStatus(context.Background(), admin(), order.ID, status, "")
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newOrderFixture()
	order := placeTestOrder(t, f, primitive.NewObjectID())

	_, err := f.orderSvc.UpdateStatus(context.Background(), admin(), order.ID, "delivered", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	f := newOrderFixture()

	_, err := f.orderSvc.UpdateStatus(context.Background(), admin(), primitive.NewObjectID(), models.StatusShipped, "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusGeneratesTrackingOnShipped(t *testing.T) {
	f := newOrderFixture()
	order := placeTestOrder(t, f, primitive.NewObjectID())

	updated, err := f.orderSvc.UpdateStatus(context.Background(), admin(), order.ID, models.StatusShipped, "")
	require.NoError(t, err)
	assert.NotEmpty(t, updated.TrackingNumber)

	// A later status change keeps the assigned tracking number
	completed, err := f.orderSvc.UpdateStatus(context.Background(), admin(), order.ID, models.StatusCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, updated.TrackingNumber, completed.TrackingNumber)
}

func TestUpdateStatusKeepsSuppliedTracking(t *testing.T) {
	f := newOrderFixture()
	order := placeTestOrder(t, f, primitive.NewObjectID())

	updated, err := f.orderSvc.UpdateStatus(context.Background(), admin(), order.ID, models.StatusShipped, "ZX-1234")
	require.NoError(t, err)
	assert.Equal(t, "ZX-1234", updated.TrackingNumber)
}

func TestUpdateStatusDoesNotChangeTotal(t *testing.T) {
	f := newOrderFixture()
	order := placeTestOrder(t, f, primitive.NewObjectID())

	_, err := f.orderSvc.UpdateStatus(context.Background(), admin(), order.ID, models.StatusCancelled, "")
	require.NoError(t, err)

	stored, err := f.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total, stored.Total)
	assert.Equal(t, order.Items, stored.Items)
}

func TestListOrdersForUserScopesToOwner(t *testing.T) {
	f := newOrderFixture()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	placeTestOrder(t, f, alice)
	placeTestOrder(t, f, bob)

	orders, err := f.orderSvc.ListOrdersForUser(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, alice, orders[0].UserID)
}

func TestListAllOrdersRequiresAdmin(t *testing.T) {
	f := newOrderFixture()
	placeTestOrder(t, f, primitive.NewObjectID())

	_, err := f.orderSvc.ListAllOrders(context.Background(), regular())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListAllOrdersResolvesUsers(t *testing.T) {
	f := newOrderFixture()
	userID := f.users.add(models.User{Name: "Alice", Email: "alice@example.com"})
	placeTestOrder(t, f, userID)
	placeTestOrder(t, f, primitive.NewObjectID()) // owner with no user record

	orders, err := f.orderSvc.ListAllOrders(context.Background(), admin())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	byUser := map[primitive.ObjectID]models.AdminOrder{}
	for _, o := range orders {
		byUser[o.UserID] = o
	}
	assert.Equal(t, "Alice", byUser[userID].UserName)
	assert.Equal(t, "alice@example.com", byUser[userID].UserEmail)
}
