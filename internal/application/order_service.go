package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/errors"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/kafka"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/metrics"
)

// OrderService handles production board use cases
type OrderService struct {
	orders    domain.OrderRepository
	archived  domain.ArchivedOrderRepository
	stock     domain.StockRepository
	movements domain.MovementRepository
	clients   domain.ClientRepository
	products  domain.ProductRepository
	tx        TxRunner
	producer  EventPublisher
	topic     string
	metrics   *metrics.Metrics
	logger    *logging.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders domain.OrderRepository,
	archived domain.ArchivedOrderRepository,
	stock domain.StockRepository,
	movements domain.MovementRepository,
	clients domain.ClientRepository,
	products domain.ProductRepository,
	tx TxRunner,
	producer EventPublisher,
	topic string,
	m *metrics.Metrics,
	logger *logging.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		archived:  archived,
		stock:     stock,
		movements: movements,
		clients:   clients,
		products:  products,
		tx:        tx,
		producer:  producer,
		topic:     topic,
		metrics:   m,
		logger:    logger,
	}
}

// CreateOrder places a new order on the board in the order_entered stage.
// An omitted order number is allocated from the per-year counter.
func (s *OrderService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*OrderDTO, error) {
	client, err := s.clients.FindByID(ctx, cmd.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, errors.ErrNotFoundWithID("client", cmd.ClientID)
	}

	orderNumber := cmd.OrderNumber
	if orderNumber == "" {
		orderNumber, err = s.orders.NextOrderNumber(ctx, time.Now().UTC().Year())
		if err != nil {
			return nil, fmt.Errorf("failed to allocate order number: %w", err)
		}
	} else {
		existing, err := s.orders.FindByOrderNumber(ctx, orderNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to check order number: %w", err)
		}
		if existing != nil {
			return nil, errors.ErrConflict(fmt.Sprintf("order number %s already exists", orderNumber))
		}
	}

	items, err := s.resolveItems(ctx, cmd.Items)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(orderNumber, cmd.ClientID, client.Name, items, cmd.DueDate, cmd.CreatedBy)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.orders.Save(ctx, order); err != nil {
		s.logger.WithError(err).Error("Failed to save order", "orderNumber", orderNumber)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.publishEvents(ctx, order)
	if s.metrics != nil {
		s.metrics.RecordOrderCreated(client.Name)
	}

	s.logger.Info("Created order", "orderId", order.ID.Hex(), "orderNumber", order.OrderNumber, "total", order.Total)
	return ToOrderDTO(order), nil
}

// resolveItems maps requested lines to priced order items. A missing product
// fails the whole command. A zero request price falls back to the catalog price.
func (s *OrderService) resolveItems(ctx context.Context, inputs []OrderItemInput) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		product, err := s.products.FindByID(ctx, in.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		if product == nil {
			return nil, errors.ErrNotFoundWithID("product", in.ProductID)
		}
		if in.Quantity <= 0 {
			return nil, errors.ErrValidation(fmt.Sprintf("quantity for product %s must be positive", product.Code))
		}

		price := in.UnitPrice
		if price == 0 {
			price = product.UnitPrice
		}

		items = append(items, domain.OrderItem{
			ProductID:   product.ID.Hex(),
			ProductCode: product.Code,
			Description: product.Description,
			Quantity:    in.Quantity,
			UnitPrice:   price,
		})
	}
	return items, nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id string) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderDTO(order), nil
}

// ListOrders lists orders with filters and pagination
func (s *OrderService) ListOrders(ctx context.Context, query ListOrdersQuery) (api.PageResponse[*OrderDTO], error) {
	page := api.PageRequest{Page: query.Page, PageSize: query.PageSize}
	if page.Page < 1 {
		page = api.DefaultPageRequest()
	}

	filter := domain.OrderFilter{Stage: query.Stage, Status: query.Status, ClientID: query.ClientID}
	orders, total, err := s.orders.List(ctx, filter, page.Skip(), page.Limit())
	if err != nil {
		return api.PageResponse[*OrderDTO]{}, fmt.Errorf("failed to list orders: %w", err)
	}

	dtos := make([]*OrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, ToOrderDTO(o))
	}
	return api.NewPageResponse(dtos, page.Page, page.PageSize, total), nil
}

// UpdateOrder replaces the editable details of an order still at order entry
func (s *OrderService) UpdateOrder(ctx context.Context, cmd UpdateOrderCommand) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, cmd.Items)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateDetails(items, cmd.DueDate, cmd.Notes); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.orders.Save(ctx, order); err != nil {
		s.logger.WithError(err).Error("Failed to update order", "orderId", cmd.OrderID)
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return ToOrderDTO(order), nil
}

// MoveStage advances or regresses an order one stage on the board
func (s *OrderService) MoveStage(ctx context.Context, cmd MoveStageCommand) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	switch cmd.Direction {
	case "forward":
		err = order.AdvanceStage(cmd.ChangedBy)
	case "back":
		err = order.RegressStage(cmd.ChangedBy)
	default:
		return nil, errors.ErrValidation("direction must be forward or back")
	}
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	return s.persistTransition(ctx, order, cmd.ChangedBy)
}

// JumpStage moves an order directly to the requested stage
func (s *OrderService) JumpStage(ctx context.Context, cmd JumpStageCommand) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if err := order.JumpToStage(cmd.Target, cmd.ChangedBy); err != nil {
		return nil, errors.MapDomainError(err)
	}

	return s.persistTransition(ctx, order, cmd.ChangedBy)
}

// persistTransition saves a stage change. Clearing an order also archives its
// allocation movements and writes the archived snapshot, all in one
// transaction.
func (s *OrderService) persistTransition(ctx context.Context, order *domain.Order, changedBy string) (*OrderDTO, error) {
	if order.IsCleared() {
		err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.orders.Save(ctx, order); err != nil {
				return fmt.Errorf("failed to save order: %w", err)
			}
			archivedCount, err := s.movements.ArchiveByOrder(ctx, order.ID.Hex(), changedBy)
			if err != nil {
				return fmt.Errorf("failed to archive movements: %w", err)
			}
			if err := s.archived.Save(ctx, domain.NewArchivedOrder(order, changedBy)); err != nil {
				return fmt.Errorf("failed to archive order: %w", err)
			}
			s.logger.Info("Cleared order", "orderNumber", order.OrderNumber, "movementsArchived", archivedCount)
			return nil
		})
		if err != nil {
			s.logger.WithError(err).Error("Failed to clear order", "orderId", order.ID.Hex())
			return nil, err
		}

		s.logger.Audit(ctx, "order.cleared", "order", order.ID.Hex(), changedBy, map[string]any{
			"orderNumber": order.OrderNumber,
		})
		if s.metrics != nil {
			s.metrics.RecordOrderCompleted()
		}
	} else {
		if err := s.orders.Save(ctx, order); err != nil {
			s.logger.WithError(err).Error("Failed to save order", "orderId", order.ID.Hex())
			return nil, fmt.Errorf("failed to save order: %w", err)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordStageTransition(string(order.Stage))
	}
	s.publishEvents(ctx, order)

	return ToOrderDTO(order), nil
}

// DeleteOrder removes an order from the board. Orders on a machine stage are
// protected. All non-archived allocation movements are returned to stock
// before the order is deleted.
func (s *OrderService) DeleteOrder(ctx context.Context, cmd DeleteOrderCommand) (*DeleteOrderResultDTO, error) {
	order, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if err := order.EnsureDeletable(); err != nil {
		return nil, errors.MapDomainError(err)
	}

	result := &DeleteOrderResultDTO{OrderNumber: order.OrderNumber}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		allocations, err := s.movements.FindActiveAllocationsByOrder(ctx, order.ID.Hex())
		if err != nil {
			return fmt.Errorf("failed to load allocations: %w", err)
		}

		for _, alloc := range allocations {
			returned, err := s.returnAllocation(ctx, order, alloc, cmd.DeletedBy)
			if err != nil {
				return err
			}
			if returned {
				result.ItemsReturned++
				result.QuantityReturned += alloc.AbsQuantity()
			}
		}

		if err := s.orders.Delete(ctx, order.ID.Hex()); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to delete order", "orderId", cmd.OrderID)
		return nil, err
	}

	s.logger.Audit(ctx, "order.deleted", "order", order.ID.Hex(), cmd.DeletedBy, map[string]any{
		"orderNumber":   order.OrderNumber,
		"itemsReturned": result.ItemsReturned,
	})
	s.publishDeleted(ctx, order, result.ItemsReturned)

	return result, nil
}

// returnAllocation puts one allocation back into stock and archives the
// original movement. A missing stock document is logged and skipped.
func (s *OrderService) returnAllocation(ctx context.Context, order *domain.Order, alloc *domain.StockMovement, actor string) (bool, error) {
	entry, err := s.stock.AdjustQuantity(ctx, alloc.StockID, alloc.AbsQuantity())
	if err != nil {
		return false, fmt.Errorf("failed to return stock: %w", err)
	}
	if entry == nil {
		s.logger.Warn("Stock entry missing for allocation, skipping return",
			"stockId", alloc.StockID, "movementId", alloc.ID.Hex(), "orderNumber", order.OrderNumber)
		return false, nil
	}

	ret, err := domain.NewStockMovement(entry, domain.MovementReturn, alloc.AbsQuantity(),
		order.ID.Hex(), order.OrderNumber, "returned on order deletion", actor)
	if err != nil {
		return false, errors.MapDomainError(err)
	}
	if err := s.movements.Append(ctx, ret); err != nil {
		return false, fmt.Errorf("failed to append return movement: %w", err)
	}
	if err := s.movements.ArchiveOne(ctx, alloc.ID.Hex(), actor); err != nil {
		return false, fmt.Errorf("failed to archive allocation: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordStockReturn()
	}
	return true, nil
}

// BoardReport returns orders grouped per stage with counts
func (s *OrderService) BoardReport(ctx context.Context, includeOrders bool) (*BoardReportDTO, error) {
	counts, err := s.orders.CountByStage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	report := &BoardReportDTO{GeneratedAt: nowUTC()}
	for _, stage := range domain.Stages() {
		column := BoardColumnDTO{Stage: string(stage), Count: counts[stage]}
		if includeOrders && counts[stage] > 0 {
			orders, _, err := s.orders.List(ctx, domain.OrderFilter{Stage: stage}, 0, 100)
			if err != nil {
				return nil, fmt.Errorf("failed to list stage orders: %w", err)
			}
			for _, o := range orders {
				column.Orders = append(column.Orders, *ToOrderDTO(o))
			}
		}
		report.Columns = append(report.Columns, column)
		report.TotalOrders += counts[stage]
	}
	return report, nil
}

// GetArchivedOrder retrieves a cleared-order snapshot by order number
func (s *OrderService) GetArchivedOrder(ctx context.Context, orderNumber string) (*ArchivedOrderDTO, error) {
	archived, err := s.archived.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get archived order: %w", err)
	}
	if archived == nil {
		return nil, errors.ErrNotFoundWithID("archived order", orderNumber)
	}
	return ToArchivedOrderDTO(archived), nil
}

// ListArchivedOrders lists cleared-order snapshots
func (s *OrderService) ListArchivedOrders(ctx context.Context, clientID string, page api.PageRequest) (api.PageResponse[*ArchivedOrderDTO], error) {
	archived, total, err := s.archived.List(ctx, clientID, page.Skip(), page.Limit())
	if err != nil {
		return api.PageResponse[*ArchivedOrderDTO]{}, fmt.Errorf("failed to list archived orders: %w", err)
	}

	dtos := make([]*ArchivedOrderDTO, 0, len(archived))
	for _, a := range archived {
		dtos = append(dtos, ToArchivedOrderDTO(a))
	}
	return api.NewPageResponse(dtos, page.Page, page.PageSize, total), nil
}

func (s *OrderService) findOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, errors.ErrNotFoundWithID("order", id)
	}
	return order, nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *domain.Order) {
	if s.producer == nil {
		order.ClearDomainEvents()
		return
	}
	for _, event := range order.GetDomainEvents() {
		evt := kafka.NewEvent(event.EventType(), eventSource, order.OrderNumber, event)
		if err := s.producer.PublishEvent(ctx, s.topic, evt); err != nil {
			s.logger.WithError(err).Warn("Failed to publish order event", "type", event.EventType())
		}
	}
	order.ClearDomainEvents()
}

func (s *OrderService) publishDeleted(ctx context.Context, order *domain.Order, returned int) {
	if s.producer == nil {
		return
	}
	event := domain.OrderDeletedEvent{
		BaseEvent:     domain.BaseEvent{Type: domain.EventOrderDeleted, ID: order.ID.Hex(), Timestamp: nowUTC()},
		OrderNumber:   order.OrderNumber,
		ReturnedItems: returned,
	}
	evt := kafka.NewEvent(event.EventType(), eventSource, order.OrderNumber, event)
	if err := s.producer.PublishEvent(ctx, s.topic, evt); err != nil {
		s.logger.WithError(err).Warn("Failed to publish order event", "type", event.EventType())
	}
}
