package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"delivery/internal/models"
	"delivery/internal/repositories"
)

// OrderService handles business logic related to existing orders: listing,
// status transitions and employee assignment for the order panel.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	publisher EventPublisher
	now       func() time.Time
}

// NewOrderService creates a new OrderService. A nil clock defaults to time.Now.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, publisher EventPublisher, clock func() time.Time) *OrderService {
	if clock == nil {
		clock = time.Now
	}
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		publisher: publisher,
		now:       clock,
	}
}

// GetAllOrders retrieves all orders (order panel view).
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetClientOrders retrieves the orders placed by the given client.
func (s *OrderService) GetClientOrders(clientID string) ([]models.Order, error) {
	return s.orderRepo.GetByClientID(clientID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus moves an order to the given status. Transitions are
// free-form except that Delivered and Canceled are absorbing: once an order
// reaches either, further updates are rejected. Reaching Delivered stamps
// the delivery time.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.StatusPending:   true,
		models.StatusShipped:   true,
		models.StatusDelivered: true,
		models.StatusCanceled:  true,
	}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid order status: %s", status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	if models.TerminalStatus(order.Status) {
		return fmt.Errorf("order %s is already %s and cannot change status", id, order.Status)
	}

	if status == models.StatusDelivered {
		deliveredAt := s.now()
		order.Status = status
		order.DeliveredAt = &deliveredAt
		if err := s.orderRepo.Update(order); err != nil {
			return fmt.Errorf("failed to update order status for order %s: %w", id, err)
		}
	} else {
		if err := s.orderRepo.UpdateStatus(id, status); err != nil {
			return fmt.Errorf("failed to update order status for order %s: %w", id, err)
		}
	}

	s.publishStatusChanged(order, status)
	return nil
}

// AssignEmployee assigns an employee as the handler of an order.
func (s *OrderService) AssignEmployee(orderID, employeeID string) error {
	employee, err := s.userRepo.GetByID(employeeID)
	if err != nil {
		return fmt.Errorf("failed to assign order %s: %w", orderID, err)
	}
	if employee.Role != models.RoleEmployee {
		return fmt.Errorf("user %s is not an employee", employeeID)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("failed to assign order %s: %w", orderID, err)
	}
	order.EmployeeID = employeeID
	if err := s.orderRepo.Update(order); err != nil {
		return fmt.Errorf("failed to assign order %s: %w", orderID, err)
	}
	return nil
}

func (s *OrderService) publishStatusChanged(order *models.Order, status string) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	payload := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.ClientID,
		"status":  status,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal status change event for order %s: %v", order.ID, err)
		return
	}
	if err := s.publisher.Publish("order", "order.status_changed", body); err != nil {
		log.Printf("Warning: Failed to publish status change event for order %s: %v", order.ID, err)
	}
}
