package store

import (
	"github.com/danishansari-dev/scrunchcreate/internal/models"
)

func (s *Store) CreateOrder(order *models.Order) error {
	query := `
		INSERT INTO orders (order_ref, customer_name, customer_phone, customer_email, address, items_json, subtotal, delivery_fee, total, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.Exec(query, order.OrderRef, order.CustomerName, order.CustomerPhone,
		order.CustomerEmail, order.Address, order.ItemsJSON,
		order.Subtotal, order.DeliveryFee, order.Total, order.Status)
	return err
}

func (s *Store) GetOrders(limit, offset int) ([]models.Order, error) {
	query := `
		SELECT id, order_ref, customer_name, customer_phone, customer_email, address, items_json, subtotal, delivery_fee, total, status, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.DB.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderRef, &o.CustomerName, &o.CustomerPhone,
			&o.CustomerEmail, &o.Address, &o.ItemsJSON,
			&o.Subtotal, &o.DeliveryFee, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) CountOrders() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
