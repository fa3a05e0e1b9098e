package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
)

func TestObjectIDHelper(t *testing.T) {
	oid := primitive.NewObjectID()
	parsed, ok := objectID(oid.Hex())
	require.True(t, ok)
	assert.Equal(t, oid, parsed)

	_, ok = objectID("not-a-hex-id")
	assert.False(t, ok)

	_, ok = objectID("")
	assert.False(t, ok)
}

func TestRepositoryConstructors(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("order repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewOrderRepository(mt.DB))
	})

	mt.Run("archived order repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewArchivedOrderRepository(mt.DB))
	})

	mt.Run("stock repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewStockRepository(mt.DB))
	})

	mt.Run("movement repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewMovementRepository(mt.DB))
	})

	mt.Run("timesheet repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewTimesheetRepository(mt.DB))
	})

	mt.Run("payroll repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewPayrollRepository(mt.DB))
	})

	mt.Run("employee repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewEmployeeRepository(mt.DB))
	})

	mt.Run("leave repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewLeaveRepository(mt.DB))
	})

	mt.Run("leave adjustment repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewLeaveAdjustmentRepository(mt.DB))
	})

	mt.Run("client repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewClientRepository(mt.DB))
	})

	mt.Run("product repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewProductRepository(mt.DB))
	})

	mt.Run("invoice repository", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NotNil(t, NewInvoiceRepository(mt.DB))
	})
}

func TestStockRepository_MockOps(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("operations", func(mt *mtest.T) {
		coll := mt.DB.Collection("stock_entries")
		repo := &StockRepository{collection: coll}
		ctx := context.Background()
		ns := coll.Database().Name() + "." + coll.Name()
		oid := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		err := repo.Save(ctx, &domain.StockEntry{ID: oid, ProductCode: "THERM-80"})
		require.NoError(t, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "product_code", Value: "THERM-80"},
			{Key: "quantity_on_hand", Value: 100.0},
		}))
		entry, err := repo.FindByID(ctx, oid.Hex())
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, 100.0, entry.QuantityOnHand)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		entry, err = repo.FindByID(ctx, primitive.NewObjectID().Hex())
		require.NoError(t, err)
		require.Nil(t, entry)

		entry, err = repo.FindByID(ctx, "not-an-object-id")
		require.NoError(t, err)
		require.Nil(t, entry)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: oid},
			{Key: "product_code", Value: "THERM-80"},
			{Key: "quantity_on_hand", Value: 70.0},
		}}))
		entry, err = repo.AdjustQuantity(ctx, oid.Hex(), -30)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, 70.0, entry.QuantityOnHand)

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		entry, err = repo.AdjustQuantity(ctx, oid.Hex(), -500)
		require.NoError(t, err)
		require.Nil(t, entry)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		err = repo.Archive(ctx, oid.Hex())
		require.NoError(t, err)
	})
}

func TestMovementRepository_MockOps(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("operations", func(mt *mtest.T) {
		coll := mt.DB.Collection("stock_movements")
		repo := &MovementRepository{collection: coll}
		ctx := context.Background()
		ns := coll.Database().Name() + "." + coll.Name()

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		err := repo.Append(ctx, &domain.StockMovement{
			StockID:     "stock-1",
			ProductCode: "THERM-80",
			Type:        domain.MovementAllocation,
			Quantity:    -30,
		})
		require.NoError(t, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "order_id", Value: "order-1"},
			{Key: "type", Value: string(domain.MovementAllocation)},
			{Key: "quantity", Value: -30.0},
		}))
		allocations, err := repo.FindActiveAllocationsByOrder(ctx, "order-1")
		require.NoError(t, err)
		require.Len(t, allocations, 1)
		assert.Equal(t, domain.MovementAllocation, allocations[0].Type)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 3},
			bson.E{Key: "nModified", Value: 3},
		))
		archived, err := repo.ArchiveByOrder(ctx, "order-1", "admin")
		require.NoError(t, err)
		assert.Equal(t, int64(3), archived)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		archived, err = repo.ArchiveByOrder(ctx, "order-1", "admin")
		require.NoError(t, err)
		assert.Equal(t, int64(0), archived)
	})
}

func TestOrderRepository_MockOps(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("operations", func(mt *mtest.T) {
		coll := mt.DB.Collection("orders")
		repo := &OrderRepository{collection: coll}
		ctx := context.Background()
		ns := coll.Database().Name() + "." + coll.Name()
		oid := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "order_number", Value: "ADM-2025-0001"},
			{Key: "stage", Value: string(domain.StageWinding)},
		}))
		order, err := repo.FindByOrderNumber(ctx, "ADM-2025-0001")
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, domain.StageWinding, order.Stage)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		order, err = repo.FindByOrderNumber(ctx, "ADM-2025-9999")
		require.NoError(t, err)
		require.Nil(t, order)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		err = repo.Delete(ctx, oid.Hex())
		require.NoError(t, err)
	})
}

func TestTimesheetRepository_TransitionStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the pre-image on match", func(mt *mtest.T) {
		repo := &TimesheetRepository{collection: mt.DB.Collection("timesheets")}
		oid := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: oid},
			{Key: "employee_id", Value: "emp-1"},
			{Key: "status", Value: string(domain.TimesheetSubmitted)},
		}}))
		previous, err := repo.TransitionStatus(context.Background(), oid.Hex(), domain.TimesheetSubmitted, domain.TimesheetApproved, "manager-1", "")
		require.NoError(t, err)
		require.NotNil(t, previous)
		assert.Equal(t, domain.TimesheetSubmitted, previous.Status)
	})

	mt.Run("returns nil when the status already moved", func(mt *mtest.T) {
		repo := &TimesheetRepository{collection: mt.DB.Collection("timesheets")}

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		previous, err := repo.TransitionStatus(context.Background(), primitive.NewObjectID().Hex(), domain.TimesheetSubmitted, domain.TimesheetApproved, "manager-1", "")
		require.NoError(t, err)
		require.Nil(t, previous)
	})

	mt.Run("returns nil for a malformed id", func(mt *mtest.T) {
		repo := &TimesheetRepository{collection: mt.DB.Collection("timesheets")}

		previous, err := repo.TransitionStatus(context.Background(), "nope", domain.TimesheetSubmitted, domain.TimesheetApproved, "manager-1", "")
		require.NoError(t, err)
		require.Nil(t, previous)
	})
}

func TestEmployeeRepository_LeaveBalances(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("debit returns the updated profile", func(mt *mtest.T) {
		repo := &EmployeeRepository{collection: mt.DB.Collection("employees")}
		oid := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Dana"},
			{Key: "leave_balances", Value: bson.D{
				{Key: "annual", Value: 32.0},
				{Key: "sick", Value: 40.0},
			}},
		}}))
		employee, err := repo.DebitLeave(context.Background(), oid.Hex(), domain.LeaveAnnual, 8)
		require.NoError(t, err)
		require.NotNil(t, employee)
		assert.Equal(t, 32.0, employee.LeaveBalances.Annual)
	})

	mt.Run("debit misses when the balance is short", func(mt *mtest.T) {
		repo := &EmployeeRepository{collection: mt.DB.Collection("employees")}

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		employee, err := repo.DebitLeave(context.Background(), primitive.NewObjectID().Hex(), domain.LeaveAnnual, 500)
		require.NoError(t, err)
		require.Nil(t, employee)
	})

	mt.Run("accrue fails for an unknown employee", func(mt *mtest.T) {
		repo := &EmployeeRepository{collection: mt.DB.Collection("employees")}

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		err := repo.AccrueLeave(context.Background(), primitive.NewObjectID().Hex(), 2.923, 1.461)
		require.Error(t, err)
	})
}

func TestOrderRepository_NextOrderNumber(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("formats the yearly sequence", func(mt *mtest.T) {
		repo := &OrderRepository{
			collection: mt.DB.Collection("orders"),
			counters:   mt.DB.Collection("counters"),
		}

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: "order-2025"},
			{Key: "seq", Value: int64(12)},
		}}))
		number, err := repo.NextOrderNumber(context.Background(), 2025)
		require.NoError(t, err)
		assert.Equal(t, "ADM-2025-0012", number)
	})
}

func TestInvoiceRepository_NextInvoiceNumber(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("formats the yearly sequence", func(mt *mtest.T) {
		repo := &InvoiceRepository{
			collection: mt.DB.Collection("invoices"),
			counters:   mt.DB.Collection("counters"),
		}

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: "invoice-2025"},
			{Key: "seq", Value: int64(7)},
		}}))
		number, err := repo.NextInvoiceNumber(context.Background(), 2025)
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-0007", number)
	})
}
