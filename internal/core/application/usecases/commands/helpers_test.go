package commands_test

import (
	"testing"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

func testContact(t *testing.T) order.ContactInfo {
	t.Helper()
	contact, err := order.NewContactInfo("Yassine El Mouss", "yassine@example.com", "+212600000000")
	require.NoError(t, err)
	return contact
}

func testAddress(t *testing.T) order.DeliveryAddress {
	t.Helper()
	point, err := kernel.NewGeoPoint(-6.8498, 33.9716)
	require.NoError(t, err)
	address, err := order.NewDeliveryAddress("12 Avenue Mohammed V, Rabat", point, "")
	require.NoError(t, err)
	return address
}

func testPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), nil, testContact(t), testAddress(t), "two pizzas", time.Now())
	require.NoError(t, err)
	return o
}

func testCourier(t *testing.T) *user.User {
	t.Helper()
	courier, err := user.NewCourier(kernel.NewUUID(), "Karim", "karim@example.com")
	require.NoError(t, err)
	return courier
}
