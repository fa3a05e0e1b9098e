package application

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/errors"
)

func newTestStockService(stock *stubStockRepo, movements *stubMovementRepo, orders *stubOrderRepo, products *stubProductRepo) *StockService {
	return NewStockService(stock, movements, orders, products, stubTx{}, nil, "", nil, testLogger())
}

func thermalStock(onHand, minimum float64) *domain.StockEntry {
	return domain.NewStockEntry("client-1", "prod-1", "THERM-80", "Thermal paper 80mm", "roll", onHand, minimum, "rack A3")
}

func TestAllocateAppendsSignedMovement(t *testing.T) {
	entry := thermalStock(100, 0)
	order := boardOrder(t, domain.StagePendingMaterial)
	var appended *domain.StockMovement

	stock := &stubStockRepo{
		AdjustQuantityFn: func(ctx context.Context, id string, delta float64) (*domain.StockEntry, error) {
			entry.QuantityOnHand += delta
			return entry, nil
		},
	}
	movements := &stubMovementRepo{
		AppendFn: func(ctx context.Context, movement *domain.StockMovement) error {
			appended = movement
			return nil
		},
	}
	orders := &stubOrderRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return order, nil
		},
	}
	svc := newTestStockService(stock, movements, orders, &stubProductRepo{})

	dto, err := svc.Allocate(context.Background(), AllocateStockCommand{
		StockID:     entry.ID.Hex(),
		OrderID:     order.ID.Hex(),
		Quantity:    30,
		AllocatedBy: "production",
	})

	require.NoError(t, err)
	assert.Equal(t, 70.0, entry.QuantityOnHand)
	require.NotNil(t, appended)
	assert.Equal(t, domain.MovementAllocation, appended.Type)
	assert.Equal(t, -30.0, appended.Quantity)
	assert.Equal(t, "ADM-2025-0001", appended.OrderNumber)
	assert.Equal(t, -30.0, dto.Quantity)
}

func TestAllocateInsufficientStockIsConflict(t *testing.T) {
	order := boardOrder(t, domain.StagePendingMaterial)

	stock := &stubStockRepo{
		AdjustQuantityFn: func(ctx context.Context, id string, delta float64) (*domain.StockEntry, error) {
			return nil, nil // guarded decrement did not match
		},
	}
	movements := &stubMovementRepo{
		AppendFn: func(ctx context.Context, movement *domain.StockMovement) error {
			t.Fatal("no movement may be written for a failed allocation")
			return nil
		},
	}
	orders := &stubOrderRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return order, nil
		},
	}
	svc := newTestStockService(stock, movements, orders, &stubProductRepo{})

	_, err := svc.Allocate(context.Background(), AllocateStockCommand{
		StockID:     "stock-1",
		OrderID:     order.ID.Hex(),
		Quantity:    500,
		AllocatedBy: "production",
	})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}

func TestConsumeStockGuardedDecrement(t *testing.T) {
	stock := &stubStockRepo{
		AdjustQuantityFn: func(ctx context.Context, id string, delta float64) (*domain.StockEntry, error) {
			return nil, nil
		},
	}
	movements := &stubMovementRepo{
		AppendFn: func(ctx context.Context, movement *domain.StockMovement) error {
			t.Fatal("no movement may be written for a failed consumption")
			return nil
		},
	}
	svc := newTestStockService(stock, movements, &stubOrderRepo{}, &stubProductRepo{})

	_, err := svc.ConsumeStock(context.Background(), ConsumeStockCommand{StockID: "stock-1", Quantity: 10})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}

func TestAddStockMissingEntry(t *testing.T) {
	svc := newTestStockService(&stubStockRepo{}, &stubMovementRepo{}, &stubOrderRepo{}, &stubProductRepo{})

	_, err := svc.AddStock(context.Background(), AddStockCommand{StockID: "missing", Quantity: 5})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestAddStockRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestStockService(&stubStockRepo{}, &stubMovementRepo{}, &stubOrderRepo{}, &stubProductRepo{})

	_, err := svc.AddStock(context.Background(), AddStockCommand{StockID: "stock-1", Quantity: 0})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestCreateEntryRejectsDuplicateProductCode(t *testing.T) {
	existing := thermalStock(40, 0)

	stock := &stubStockRepo{
		FindByProductCodeFn: func(ctx context.Context, productCode string) (*domain.StockEntry, error) {
			return existing, nil
		},
	}
	products := &stubProductRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Product, error) {
			return domain.NewProduct("THERM-80", "Thermal paper 80mm", "client-1", "roll", 1.25, 17, 80, 76), nil
		},
	}
	svc := newTestStockService(stock, &stubMovementRepo{}, &stubOrderRepo{}, products)

	_, err := svc.CreateEntry(context.Background(), CreateStockEntryCommand{ClientID: "client-1", ProductID: "prod-1"})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}

func TestCreateEntryRecordsOpeningBalance(t *testing.T) {
	var appended *domain.StockMovement

	movements := &stubMovementRepo{
		AppendFn: func(ctx context.Context, movement *domain.StockMovement) error {
			appended = movement
			return nil
		},
	}
	products := &stubProductRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Product, error) {
			return domain.NewProduct("THERM-80", "Thermal paper 80mm", "client-1", "roll", 1.25, 17, 80, 76), nil
		},
	}
	svc := newTestStockService(&stubStockRepo{}, movements, &stubOrderRepo{}, products)

	dto, err := svc.CreateEntry(context.Background(), CreateStockEntryCommand{
		ClientID:        "client-1",
		ProductID:       "prod-1",
		OpeningQuantity: 120,
		CreatedBy:       "admin",
	})

	require.NoError(t, err)
	assert.Equal(t, 120.0, dto.QuantityOnHand)
	require.NotNil(t, appended)
	assert.Equal(t, domain.MovementAddition, appended.Type)
	assert.Equal(t, 120.0, appended.Quantity)
	assert.Equal(t, "opening balance", appended.Note)
}

func TestExportHistoryCSV(t *testing.T) {
	entry := thermalStock(100, 0)
	mov, err := domain.NewStockMovement(entry, domain.MovementAllocation, 25, "order-1", "ADM-2025-0001", "", "production")
	require.NoError(t, err)
	mov.CreatedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	movements := &stubMovementRepo{
		ListFn: func(ctx context.Context, filter domain.MovementFilter, skip, limit int64) ([]*domain.StockMovement, int64, error) {
			if skip > 0 {
				return nil, 1, nil
			}
			return []*domain.StockMovement{mov}, 1, nil
		},
	}
	svc := newTestStockService(&stubStockRepo{}, movements, &stubOrderRepo{}, &stubProductRepo{})

	var buf bytes.Buffer
	err = svc.ExportHistoryCSV(context.Background(), StockHistoryQuery{}, &buf)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,product_code,type,quantity,order_number,note,archived,created_by", lines[0])
	assert.Equal(t, "2025-03-14 09:30:00,THERM-80,allocation,-25,ADM-2025-0001,,false,production", lines[1])
}

func TestStockReportTotalsLedgerByType(t *testing.T) {
	entry := thermalStock(95, 50)

	addition, err := domain.NewStockMovement(entry, domain.MovementAddition, 100, "", "", "", "admin")
	require.NoError(t, err)
	alloc, err := domain.NewStockMovement(entry, domain.MovementAllocation, 30, "order-1", "ADM-2025-0001", "", "production")
	require.NoError(t, err)
	ret, err := domain.NewStockMovement(entry, domain.MovementReturn, 30, "order-1", "ADM-2025-0001", "", "manager")
	require.NoError(t, err)
	consumed, err := domain.NewStockMovement(entry, domain.MovementConsumption, 5, "", "", "", "production")
	require.NoError(t, err)

	stock := &stubStockRepo{
		ListFn: func(ctx context.Context, clientID string, lowOnly bool, skip, limit int64) ([]*domain.StockEntry, int64, error) {
			if lowOnly {
				return nil, 0, nil
			}
			return []*domain.StockEntry{entry}, 1, nil
		},
	}
	movements := &stubMovementRepo{
		ListFn: func(ctx context.Context, filter domain.MovementFilter, skip, limit int64) ([]*domain.StockMovement, int64, error) {
			if skip > 0 {
				return nil, 4, nil
			}
			return []*domain.StockMovement{addition, alloc, ret, consumed}, 4, nil
		},
	}
	svc := newTestStockService(stock, movements, &stubOrderRepo{}, &stubProductRepo{})

	report, err := svc.Report(context.Background(), "client-1", api.PageRequest{Page: 1, PageSize: 20})

	require.NoError(t, err)
	require.Len(t, report.Lines, 1)
	line := report.Lines[0]
	assert.Equal(t, 100.0, line.TotalAdded)
	assert.Equal(t, 30.0, line.TotalAllocated)
	assert.Equal(t, 30.0, line.TotalReturned)
	assert.Equal(t, 5.0, line.TotalConsumed)
	assert.Equal(t, int64(4), line.MovementCount)
	assert.Empty(t, report.LowStock)
}

func TestStockReportListsLowStock(t *testing.T) {
	low := thermalStock(10, 50)

	stock := &stubStockRepo{
		ListFn: func(ctx context.Context, clientID string, lowOnly bool, skip, limit int64) ([]*domain.StockEntry, int64, error) {
			if lowOnly {
				return []*domain.StockEntry{low}, 1, nil
			}
			return []*domain.StockEntry{low}, 1, nil
		},
	}
	svc := newTestStockService(stock, &stubMovementRepo{}, &stubOrderRepo{}, &stubProductRepo{})

	report, err := svc.Report(context.Background(), "", api.PageRequest{Page: 1, PageSize: 20})

	require.NoError(t, err)
	require.Len(t, report.LowStock, 1)
	assert.Equal(t, "THERM-80", report.LowStock[0].ProductCode)
}

func TestArchiveMovementsForOrderIsIdempotent(t *testing.T) {
	calls := 0

	movements := &stubMovementRepo{
		ArchiveByOrderFn: func(ctx context.Context, orderID, archivedBy string) (int64, error) {
			calls++
			if calls == 1 {
				return 3, nil
			}
			return 0, nil
		},
	}
	svc := newTestStockService(&stubStockRepo{}, movements, &stubOrderRepo{}, &stubProductRepo{})

	count, err := svc.ArchiveMovementsForOrder(context.Background(), "order-1", "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = svc.ArchiveMovementsForOrder(context.Background(), "order-1", "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestArchiveEntryAlreadyArchived(t *testing.T) {
	entry := thermalStock(0, 0)
	entry.IsArchived = true

	stock := &stubStockRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.StockEntry, error) {
			return entry, nil
		},
		ArchiveFn: func(ctx context.Context, id string) error {
			t.Fatal("an archived entry must not be archived again")
			return nil
		},
	}
	svc := newTestStockService(stock, &stubMovementRepo{}, &stubOrderRepo{}, &stubProductRepo{})

	require.NoError(t, svc.ArchiveEntry(context.Background(), entry.ID.Hex()))
}
