package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/errors"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/kafka"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/metrics"
)

// StockService handles inventory use cases. Balance changes go through
// filtered updates so concurrent allocations cannot oversell an entry.
type StockService struct {
	stock     domain.StockRepository
	movements domain.MovementRepository
	orders    domain.OrderRepository
	products  domain.ProductRepository
	tx        TxRunner
	producer  EventPublisher
	topic     string
	metrics   *metrics.Metrics
	logger    *logging.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	stock domain.StockRepository,
	movements domain.MovementRepository,
	orders domain.OrderRepository,
	products domain.ProductRepository,
	tx TxRunner,
	producer EventPublisher,
	topic string,
	m *metrics.Metrics,
	logger *logging.Logger,
) *StockService {
	return &StockService{
		stock:     stock,
		movements: movements,
		orders:    orders,
		products:  products,
		tx:        tx,
		producer:  producer,
		topic:     topic,
		metrics:   m,
		logger:    logger,
	}
}

// CreateEntry registers a stocked product with an opening balance
func (s *StockService) CreateEntry(ctx context.Context, cmd CreateStockEntryCommand) (*StockEntryDTO, error) {
	product, err := s.products.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.ErrNotFoundWithID("product", cmd.ProductID)
	}

	existing, err := s.stock.FindByProductCode(ctx, product.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check stock entry: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("stock entry for %s already exists", product.Code))
	}

	entry := domain.NewStockEntry(cmd.ClientID, cmd.ProductID, product.Code, product.Description,
		product.Unit, cmd.OpeningQuantity, cmd.MinimumStockLevel, cmd.Location)

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.stock.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save stock entry: %w", err)
		}
		if cmd.OpeningQuantity > 0 {
			mov, err := domain.NewStockMovement(entry, domain.MovementAddition, cmd.OpeningQuantity,
				"", "", "opening balance", cmd.CreatedBy)
			if err != nil {
				return errors.MapDomainError(err)
			}
			if err := s.movements.Append(ctx, mov); err != nil {
				return fmt.Errorf("failed to append movement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to create stock entry", "productCode", product.Code)
		return nil, err
	}

	s.logger.Info("Created stock entry", "stockId", entry.ID.Hex(), "productCode", entry.ProductCode)
	return ToStockEntryDTO(entry), nil
}

// GetEntry retrieves a stock entry by ID
func (s *StockService) GetEntry(ctx context.Context, id string) (*StockEntryDTO, error) {
	entry, err := s.findEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStockEntryDTO(entry), nil
}

// ListEntries lists stock entries, optionally low-stock only
func (s *StockService) ListEntries(ctx context.Context, clientID string, lowOnly bool, page api.PageRequest) (api.PageResponse[*StockEntryDTO], error) {
	entries, total, err := s.stock.List(ctx, clientID, lowOnly, page.Skip(), page.Limit())
	if err != nil {
		return api.PageResponse[*StockEntryDTO]{}, fmt.Errorf("failed to list stock: %w", err)
	}

	dtos := make([]*StockEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, ToStockEntryDTO(e))
	}
	return api.NewPageResponse(dtos, page.Page, page.PageSize, total), nil
}

// AddStock records received stock
func (s *StockService) AddStock(ctx context.Context, cmd AddStockCommand) (*StockEntryDTO, error) {
	if cmd.Quantity <= 0 {
		return nil, errors.ErrValidation("quantity must be positive")
	}

	var entry *domain.StockEntry
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.stock.AdjustQuantity(ctx, cmd.StockID, cmd.Quantity)
		if err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		if entry == nil {
			return errors.ErrNotFoundWithID("stock entry", cmd.StockID)
		}

		mov, err := domain.NewStockMovement(entry, domain.MovementAddition, cmd.Quantity, "", "", cmd.Note, cmd.CreatedBy)
		if err != nil {
			return errors.MapDomainError(err)
		}
		return s.movements.Append(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Added stock", "stockId", cmd.StockID, "quantity", cmd.Quantity)
	return ToStockEntryDTO(entry), nil
}

// ConsumeStock records stock used outside an order. The decrement is guarded,
// insufficient stock is a conflict and no movement is written.
func (s *StockService) ConsumeStock(ctx context.Context, cmd ConsumeStockCommand) (*StockEntryDTO, error) {
	if cmd.Quantity <= 0 {
		return nil, errors.ErrValidation("quantity must be positive")
	}

	var entry *domain.StockEntry
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.stock.AdjustQuantity(ctx, cmd.StockID, -cmd.Quantity)
		if err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		if entry == nil {
			return errors.ErrConflict(domain.ErrInsufficientStock.Error())
		}

		mov, err := domain.NewStockMovement(entry, domain.MovementConsumption, cmd.Quantity, "", "", cmd.Note, cmd.CreatedBy)
		if err != nil {
			return errors.MapDomainError(err)
		}
		return s.movements.Append(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	s.alertIfLow(ctx, entry)
	return ToStockEntryDTO(entry), nil
}

// Allocate reserves stock against an order. The decrement only matches when
// quantity_on_hand covers the request, so two racing allocations cannot both
// succeed past the balance.
func (s *StockService) Allocate(ctx context.Context, cmd AllocateStockCommand) (*StockMovementDTO, error) {
	if cmd.Quantity <= 0 {
		return nil, errors.ErrValidation("quantity must be positive")
	}

	order, err := s.orders.FindByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, errors.ErrNotFoundWithID("order", cmd.OrderID)
	}

	var mov *domain.StockMovement
	var entry *domain.StockEntry
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.stock.AdjustQuantity(ctx, cmd.StockID, -cmd.Quantity)
		if err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		if entry == nil {
			return errors.ErrConflict(domain.ErrInsufficientStock.Error())
		}

		mov, err = domain.NewStockMovement(entry, domain.MovementAllocation, cmd.Quantity,
			order.ID.Hex(), order.OrderNumber, cmd.Note, cmd.AllocatedBy)
		if err != nil {
			return errors.MapDomainError(err)
		}
		return s.movements.Append(ctx, mov)
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordStockAllocation(false)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordStockAllocation(true)
	}
	s.publishStockEvent(ctx, domain.StockAllocatedEvent{
		BaseEvent:   domain.BaseEvent{Type: domain.EventStockAllocated, ID: entry.ID.Hex(), Timestamp: nowUTC()},
		ProductCode: entry.ProductCode,
		OrderNumber: order.OrderNumber,
		Quantity:    cmd.Quantity,
	}, entry.ProductCode)
	s.alertIfLow(ctx, entry)

	s.logger.Info("Allocated stock", "stockId", cmd.StockID, "orderNumber", order.OrderNumber, "quantity", cmd.Quantity)
	return ToStockMovementDTO(mov), nil
}

// AllocationsByOrder lists the active allocation movements for an order
func (s *StockService) AllocationsByOrder(ctx context.Context, orderID string) ([]*StockMovementDTO, error) {
	allocations, err := s.movements.FindActiveAllocationsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	dtos := make([]*StockMovementDTO, 0, len(allocations))
	for _, m := range allocations {
		dtos = append(dtos, ToStockMovementDTO(m))
	}
	return dtos, nil
}

// History queries the movement ledger
func (s *StockService) History(ctx context.Context, query StockHistoryQuery) (api.PageResponse[*StockMovementDTO], error) {
	page := api.PageRequest{Page: query.Page, PageSize: query.PageSize}
	if page.Page < 1 {
		page = api.DefaultPageRequest()
	}

	filter := domain.MovementFilter{StockID: query.StockID, OrderID: query.OrderID, Type: query.Type}
	movements, total, err := s.movements.List(ctx, filter, page.Skip(), page.Limit())
	if err != nil {
		return api.PageResponse[*StockMovementDTO]{}, fmt.Errorf("failed to query ledger: %w", err)
	}

	dtos := make([]*StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		dtos = append(dtos, ToStockMovementDTO(m))
	}
	return api.NewPageResponse(dtos, page.Page, page.PageSize, total), nil
}

// Report summarises a page of stock entries against their movement ledgers
// and lists every entry at or below its minimum level.
func (s *StockService) Report(ctx context.Context, clientID string, page api.PageRequest) (*StockReportDTO, error) {
	entries, _, err := s.stock.List(ctx, clientID, false, page.Skip(), page.Limit())
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}

	report := &StockReportDTO{Lines: make([]StockReportLineDTO, 0, len(entries))}
	for _, entry := range entries {
		line := StockReportLineDTO{Entry: ToStockEntryDTO(entry)}

		const batch = int64(500)
		filter := domain.MovementFilter{StockID: entry.ID.Hex()}
		for skip := int64(0); ; skip += batch {
			movements, _, err := s.movements.List(ctx, filter, skip, batch)
			if err != nil {
				return nil, fmt.Errorf("failed to query ledger: %w", err)
			}
			for _, m := range movements {
				line.MovementCount++
				switch m.Type {
				case domain.MovementAddition:
					line.TotalAdded += m.Quantity
				case domain.MovementConsumption:
					line.TotalConsumed += -m.Quantity
				case domain.MovementAllocation:
					line.TotalAllocated += -m.Quantity
				case domain.MovementReturn:
					line.TotalReturned += m.Quantity
				}
			}
			if int64(len(movements)) < batch {
				break
			}
		}
		report.Lines = append(report.Lines, line)
	}

	low, _, err := s.stock.List(ctx, clientID, true, 0, 500)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock: %w", err)
	}
	for _, e := range low {
		report.LowStock = append(report.LowStock, ToStockEntryDTO(e))
	}
	return report, nil
}

// ExportHistoryCSV streams the movement ledger as CSV
func (s *StockService) ExportHistoryCSV(ctx context.Context, query StockHistoryQuery, w io.Writer) error {
	filter := domain.MovementFilter{StockID: query.StockID, OrderID: query.OrderID, Type: query.Type}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "product_code", "type", "quantity", "order_number", "note", "archived", "created_by"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	const batch = int64(500)
	for skip := int64(0); ; skip += batch {
		movements, _, err := s.movements.List(ctx, filter, skip, batch)
		if err != nil {
			return fmt.Errorf("failed to query ledger: %w", err)
		}
		for _, m := range movements {
			record := []string{
				m.CreatedAt.Format("2006-01-02 15:04:05"),
				m.ProductCode,
				string(m.Type),
				strconv.FormatFloat(m.Quantity, 'f', -1, 64),
				m.OrderNumber,
				m.Note,
				strconv.FormatBool(m.IsArchived),
				m.CreatedBy,
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
		if int64(len(movements)) < batch {
			break
		}
	}

	writer.Flush()
	return writer.Error()
}

// ArchiveMovementsForOrder archives all movements referencing an order.
// Already archived rows are untouched, re-running is safe.
func (s *StockService) ArchiveMovementsForOrder(ctx context.Context, orderID, archivedBy string) (int64, error) {
	count, err := s.movements.ArchiveByOrder(ctx, orderID, archivedBy)
	if err != nil {
		return 0, fmt.Errorf("failed to archive movements: %w", err)
	}

	s.logger.Audit(ctx, "stock.movements_archived", "order", orderID, archivedBy, map[string]any{
		"archived": count,
	})
	return count, nil
}

// ArchiveEntry archives a stock entry so it no longer appears in listings
func (s *StockService) ArchiveEntry(ctx context.Context, id string) error {
	entry, err := s.findEntry(ctx, id)
	if err != nil {
		return err
	}
	if entry.IsArchived {
		return nil
	}
	if err := s.stock.Archive(ctx, id); err != nil {
		return fmt.Errorf("failed to archive stock entry: %w", err)
	}
	s.logger.Info("Archived stock entry", "stockId", id, "productCode", entry.ProductCode)
	return nil
}

func (s *StockService) findEntry(ctx context.Context, id string) (*domain.StockEntry, error) {
	entry, err := s.stock.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock entry: %w", err)
	}
	if entry == nil {
		return nil, errors.ErrNotFoundWithID("stock entry", id)
	}
	return entry, nil
}

// alertIfLow publishes a low-stock event after a decrement leaves the balance
// at or below the minimum level
func (s *StockService) alertIfLow(ctx context.Context, entry *domain.StockEntry) {
	if entry == nil || !entry.IsLow() {
		return
	}
	s.logger.Warn("Stock at or below minimum level",
		"productCode", entry.ProductCode, "onHand", entry.QuantityOnHand, "minimum", entry.MinimumStockLevel)
	s.publishStockEvent(ctx, domain.LowStockEvent{
		BaseEvent:    domain.BaseEvent{Type: domain.EventLowStock, ID: entry.ID.Hex(), Timestamp: nowUTC()},
		ProductCode:  entry.ProductCode,
		OnHand:       entry.QuantityOnHand,
		ReorderLevel: entry.MinimumStockLevel,
	}, entry.ProductCode)
}

func (s *StockService) publishStockEvent(ctx context.Context, event domain.DomainEvent, subject string) {
	if s.producer == nil {
		return
	}
	evt := kafka.NewEvent(event.EventType(), eventSource, subject, event)
	if err := s.producer.PublishEvent(ctx, s.topic, evt); err != nil {
		s.logger.WithError(err).Warn("Failed to publish stock event", "type", event.EventType())
	}
}
