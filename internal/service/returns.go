package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jswan/mercantile/internal/domain"
)

// ReturnService handles return requests and staff decisions.
type ReturnService struct {
	store Store
}

// NewReturnService creates a new return service.
func NewReturnService(store Store) *ReturnService {
	return &ReturnService{store: store}
}

// RequestReturn opens a pending return for items of a delivered order. Each
// requested quantity is validated against the quantity originally ordered;
// one bad line rejects the whole request and nothing is written.
func (s *ReturnService) RequestReturn(ctx context.Context, userID, orderID uuid.UUID, reason string, items []domain.RequestReturnItem) (*domain.ReturnDetail, error) {
	if len(items) == 0 {
		return nil, domain.Invalid("return.request", "at least one item is required")
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	if order.Status != domain.OrderStatusDelivered {
		return nil, domain.ErrOrderNotReturnable
	}

	// Validate every line before writing anything.
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		orderItem, err := s.store.GetOrderItem(ctx, item.OrderItemID)
		if err != nil {
			return nil, err
		}
		if orderItem.OrderID != orderID {
			return nil, domain.Invalid("return.request", "order item does not belong to this order")
		}
		if item.Quantity > orderItem.Quantity {
			return nil, domain.ErrExceedsOrderedQuantity
		}
	}

	var detail *domain.ReturnDetail
	err = s.store.WithinTx(ctx, func(tx Store) error {
		ret := &domain.Return{
			OrderID: orderID,
			Status:  domain.ReturnStatusPending,
			Reason:  reason,
		}
		if err := tx.CreateReturn(ctx, ret); err != nil {
			return err
		}

		created := make([]domain.ReturnItem, len(items))
		for i, item := range items {
			ri := domain.ReturnItem{
				ReturnID:    ret.ID,
				OrderItemID: item.OrderItemID,
				Quantity:    item.Quantity,
				Reason:      item.Reason,
			}
			if err := tx.CreateReturnItem(ctx, &ri); err != nil {
				return err
			}
			created[i] = ri
		}

		if err := tx.AppendActivity(ctx, userID, domain.ActivityReturnRequested, "return", ret.ID); err != nil {
			return err
		}

		detail = &domain.ReturnDetail{Return: *ret, Items: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// DecideReturn records the staff decision on a pending return. Approval
// restocks every returned item and issues exactly one refund for the sum of
// snapshot unit price times returned quantity, all in one transaction.
// Rejection changes only the status. A decided return cannot be decided
// again.
func (s *ReturnService) DecideReturn(ctx context.Context, actorID, returnID uuid.UUID, approve bool) (*domain.Return, error) {
	ret, err := s.store.GetReturn(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if ret.Status != domain.ReturnStatusPending {
		return nil, domain.ErrReturnAlreadyDecided
	}

	now := time.Now()

	if !approve {
		if err := s.store.UpdateReturnStatus(ctx, returnID, domain.ReturnStatusRejected, now); err != nil {
			return nil, err
		}
		if err := s.store.AppendActivity(ctx, actorID, domain.ActivityReturnDecided, "return", returnID); err != nil {
			return nil, err
		}
		ret.Status = domain.ReturnStatusRejected
		ret.DecidedAt = &now
		return ret, nil
	}

	err = s.store.WithinTx(ctx, func(tx Store) error {
		if err := tx.UpdateReturnStatus(ctx, returnID, domain.ReturnStatusApproved, now); err != nil {
			return err
		}

		items, err := tx.ListReturnItems(ctx, returnID)
		if err != nil {
			return err
		}

		amount := decimal.Zero
		for _, item := range items {
			orderItem, err := tx.GetOrderItem(ctx, item.OrderItemID)
			if err != nil {
				return err
			}
			if err := tx.IncrementStock(ctx, orderItem.ProductID, item.Quantity); err != nil {
				return err
			}
			amount = amount.Add(orderItem.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		refund := &domain.Refund{ReturnID: returnID, Amount: amount.Round(2)}
		if err := tx.CreateRefund(ctx, refund); err != nil {
			return err
		}

		return tx.AppendActivity(ctx, actorID, domain.ActivityReturnDecided, "return", returnID)
	})
	if err != nil {
		return nil, err
	}

	ret.Status = domain.ReturnStatusApproved
	ret.DecidedAt = &now
	return ret, nil
}

// GetReturn returns a return request with its lines. Customers may only see
// returns on their own orders; staff may see any.
func (s *ReturnService) GetReturn(ctx context.Context, requester *domain.User, returnID uuid.UUID) (*domain.ReturnDetail, error) {
	ret, err := s.store.GetReturn(ctx, returnID)
	if err != nil {
		return nil, err
	}

	if !requester.IsStaff() {
		order, err := s.store.GetOrder(ctx, ret.OrderID)
		if err != nil {
			return nil, err
		}
		if order.UserID != requester.ID {
			return nil, domain.ErrReturnNotFound
		}
	}

	items, err := s.store.ListReturnItems(ctx, returnID)
	if err != nil {
		return nil, err
	}
	return &domain.ReturnDetail{Return: *ret, Items: items}, nil
}

// ListPendingReturns returns the staff review queue.
func (s *ReturnService) ListPendingReturns(ctx context.Context) ([]domain.Return, error) {
	return s.store.ListPendingReturns(ctx)
}
