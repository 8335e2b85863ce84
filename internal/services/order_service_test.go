package services_test

import (
	"fmt"
	"testing"
	"time"

	"delivery/internal/models"
	"delivery/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var orderNow = time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)

func newOrderService(t *testing.T) (*services.OrderService, *MockOrderRepository, *MockUserRepository, *MockEventPublisher) {
	t.Helper()
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	publisher := new(MockEventPublisher)
	service := services.NewOrderService(orderRepo, userRepo, publisher, func() time.Time { return orderNow })
	return service, orderRepo, userRepo, publisher
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	service, orderRepo, _, publisher := newOrderService(t)

	pending := &models.Order{ID: "order-1", ClientID: "client-1", Status: models.StatusPending}
	orderRepo.On("GetByID", "order-1").Return(pending, nil).Once()
	orderRepo.On("UpdateStatus", "order-1", models.StatusShipped).Return(nil).Once()
	publisher.On("Publish", "order", "order.status_changed", mock.Anything).Return(nil).Once()

	err := service.UpdateOrderStatus("order-1", models.StatusShipped)
	assert.NoError(t, err)
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	service, orderRepo, _, _ := newOrderService(t)

	err := service.UpdateOrderStatus("order-1", "Teleported")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderStatus_DeliveredStampsTime(t *testing.T) {
	service, orderRepo, _, publisher := newOrderService(t)

	shipped := &models.Order{ID: "order-1", ClientID: "client-1", Status: models.StatusShipped}
	orderRepo.On("GetByID", "order-1").Return(shipped, nil).Once()
	orderRepo.On("Update", mock.MatchedBy(func(o *models.Order) bool {
		return o.Status == models.StatusDelivered && o.DeliveredAt != nil && o.DeliveredAt.Equal(orderNow)
	})).Return(nil).Once()
	publisher.On("Publish", "order", "order.status_changed", mock.Anything).Return(nil).Once()

	err := service.UpdateOrderStatus("order-1", models.StatusDelivered)
	assert.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus_TerminalStatesAreAbsorbing(t *testing.T) {
	service, orderRepo, _, publisher := newOrderService(t)

	for _, terminal := range []string{models.StatusDelivered, models.StatusCanceled} {
		order := &models.Order{ID: "order-1", ClientID: "client-1", Status: terminal}
		orderRepo.On("GetByID", "order-1").Return(order, nil).Once()

		err := service.UpdateOrderStatus("order-1", models.StatusPending)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot change status")
	}
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderStatus_CancelFromAnyNonTerminalState(t *testing.T) {
	service, orderRepo, _, publisher := newOrderService(t)

	for _, from := range []string{models.StatusPending, models.StatusShipped} {
		order := &models.Order{ID: "order-1", ClientID: "client-1", Status: from}
		orderRepo.On("GetByID", "order-1").Return(order, nil).Once()
		orderRepo.On("UpdateStatus", "order-1", models.StatusCanceled).Return(nil).Once()
		publisher.On("Publish", "order", "order.status_changed", mock.Anything).Return(nil).Once()

		err := service.UpdateOrderStatus("order-1", models.StatusCanceled)
		assert.NoError(t, err)
	}
	orderRepo.AssertExpectations(t)
}

func TestOrderService_AssignEmployee(t *testing.T) {
	service, orderRepo, userRepo, _ := newOrderService(t)

	employee := &models.User{ID: "emp-1", Username: "handler", Role: models.RoleEmployee}
	order := &models.Order{ID: "order-1", ClientID: "client-1", Status: models.StatusPending}
	userRepo.On("GetByID", "emp-1").Return(employee, nil).Once()
	orderRepo.On("GetByID", "order-1").Return(order, nil).Once()
	orderRepo.On("Update", mock.MatchedBy(func(o *models.Order) bool {
		return o.EmployeeID == "emp-1"
	})).Return(nil).Once()

	err := service.AssignEmployee("order-1", "emp-1")
	assert.NoError(t, err)
	orderRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestOrderService_AssignEmployee_RejectsClients(t *testing.T) {
	service, orderRepo, userRepo, _ := newOrderService(t)

	client := &models.User{ID: "client-2", Username: "shopper", Role: models.RoleClient}
	userRepo.On("GetByID", "client-2").Return(client, nil).Once()

	err := service.AssignEmployee("order-1", "client-2")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not an employee")
	orderRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestOrderService_GetOrders(t *testing.T) {
	service, orderRepo, _, _ := newOrderService(t)

	expected := []models.Order{
		{ID: "order-1", ClientID: "client-1", Status: models.StatusPending},
		{ID: "order-2", ClientID: "client-2", Status: models.StatusShipped},
	}
	orderRepo.On("GetAll").Return(expected, nil).Once()
	orders, err := service.GetAllOrders()
	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	orderRepo.On("GetByClientID", "client-1").Return(expected[:1], nil).Once()
	mine, err := service.GetClientOrders("client-1")
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	orderRepo.On("GetByID", "missing").Return(nil, fmt.Errorf("order with ID missing not found")).Once()
	_, err = service.GetOrderByID("missing")
	assert.Error(t, err)
	orderRepo.AssertExpectations(t)
}
