package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"expense-management/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var expenseColumns = []string{
	"ExpenseId", "UserId", "CategoryId", "StatusId", "AmountMinor", "Currency",
	"ExpenseDate", "Description", "ReceiptFile", "SubmittedAt", "ReviewedBy",
	"ReviewedAt", "CreatedAt", "UserName", "CategoryName", "StatusName", "ReviewerName",
}

func newMockGateway(t *testing.T) (*StoredProcGateway, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewStoredProcGateway(db), mock
}

func TestStoredProcGateway_ListExpensesMapsRows(t *testing.T) {
	g, mock := newMockGateway(t)

	expenseDate := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, time.January, 16, 9, 30, 0, 0, time.UTC)
	submitted := created.Add(time.Hour)

	rows := sqlmock.NewRows(expenseColumns).
		AddRow(1, 1, 1, 2, 12000, "GBP", expenseDate, "Taxi", nil, submitted, nil, nil, created,
			"Alice Example", "Travel", "Submitted", nil).
		AddRow(5, 1, 2, 1, 2550, nil, expenseDate, nil, nil, nil, nil, nil, created,
			"Alice Example", "Meals", "Draft", nil)

	mock.ExpectQuery(regexp.QuoteMeta("CALL sp_GetExpenses(?, ?)")).
		WithArgs("Submitted", "Travel").
		WillReturnRows(rows)

	got, err := g.ListExpenses(context.Background(), "Submitted", "Travel")
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, 1, first.ExpenseID)
	assert.Equal(t, int64(12000), first.AmountMinor)
	assert.Equal(t, "£120.00", first.AmountFormatted())
	assert.Equal(t, "2024-01-15", first.ExpenseDate.String())
	require.NotNil(t, first.SubmittedAt)
	assert.True(t, submitted.Equal(*first.SubmittedAt))
	assert.Nil(t, first.ReviewedBy)
	assert.Nil(t, first.ReviewerName)
	assert.Equal(t, "Submitted", first.Status())

	second := got[1]
	assert.Equal(t, domain.DefaultCurrency, second.Currency)
	assert.Nil(t, second.Description)
	assert.Nil(t, second.SubmittedAt)
	assert.True(t, decimal.RequireFromString("25.50").Equal(second.Amount()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoredProcGateway_GetExpenseNotFound(t *testing.T) {
	g, mock := newMockGateway(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL sp_GetExpenseById(?)")).
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows(expenseColumns))

	got, err := g.GetExpense(context.Background(), 77)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoredProcGateway_CreateExpenseSendsPence(t *testing.T) {
	g, mock := newMockGateway(t)

	desc := "Train ticket"
	date := domain.NewDate(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

	mock.ExpectQuery(regexp.QuoteMeta("CALL sp_CreateExpense(?, ?, ?, ?, ?)")).
		WithArgs(1, 3, int64(2550), date.Time, desc).
		WillReturnRows(sqlmock.NewRows([]string{"ExpenseId"}).AddRow(42))

	id, err := g.CreateExpense(context.Background(), domain.CreateExpenseRequest{
		UserID:      1,
		CategoryID:  3,
		Amount:      decimal.RequireFromString("25.509"),
		ExpenseDate: date,
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoredProcGateway_CreateExpenseWithoutID(t *testing.T) {
	g, mock := newMockGateway(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL sp_CreateExpense(?, ?, ?, ?, ?)")).
		WillReturnRows(sqlmock.NewRows([]string{"ExpenseId"}))

	_, err := g.CreateExpense(context.Background(), domain.CreateExpenseRequest{
		UserID:      1,
		CategoryID:  3,
		Amount:      decimal.NewFromInt(5),
		ExpenseDate: domain.NewDate(time.Now()),
	})
	assert.ErrorIs(t, err, domain.ErrNoExpenseCreated)
}

func TestStoredProcGateway_Transitions(t *testing.T) {
	g, mock := newMockGateway(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("CALL sp_SubmitExpense(?)")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("CALL sp_SubmitExpense(?)")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CALL sp_ApproveExpense(?, ?)")).
		WithArgs(5, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("CALL sp_RejectExpense(?, ?)")).
		WithArgs(5, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := g.SubmitExpense(ctx, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	// Already submitted, nothing changes
	ok, err = g.SubmitExpense(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = g.ApproveExpense(ctx, 5, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// Already approved, reject is refused
	ok, err = g.RejectExpense(ctx, 5, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoredProcGateway_PropagatesStoreErrors(t *testing.T) {
	g, mock := newMockGateway(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("CALL sp_GetPendingExpenses()")).WillReturnError(boom)
	mock.ExpectExec(regexp.QuoteMeta("CALL sp_ApproveExpense(?, ?)")).WillReturnError(boom)

	_, err := g.ListPendingExpenses(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "sp_GetPendingExpenses")

	_, err = g.ApproveExpense(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)
}

func TestStoredProcGateway_ReferenceData(t *testing.T) {
	g, mock := newMockGateway(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("CALL sp_GetCategories()")).
		WillReturnRows(sqlmock.NewRows([]string{"CategoryId", "CategoryName", "IsActive"}).
			AddRow(1, "Travel", true).
			AddRow(2, "Meals", false))
	mock.ExpectQuery(regexp.QuoteMeta("CALL sp_GetStatuses()")).
		WillReturnRows(sqlmock.NewRows([]string{"StatusId", "StatusName"}).
			AddRow(1, "Draft").
			AddRow(2, "Submitted"))
	mock.ExpectQuery(regexp.QuoteMeta("CALL sp_GetUsers()")).
		WillReturnRows(sqlmock.NewRows([]string{
			"UserId", "UserName", "Email", "RoleId", "RoleName", "ManagerId", "ManagerName", "IsActive", "CreatedAt",
		}).
			AddRow(1, "Alice Example", "alice@example.co.uk", 1, "Employee", 2, "Bob Manager", true, time.Now()).
			AddRow(2, "Bob Manager", "bob.manager@example.co.uk", 2, "Manager", nil, nil, true, nil))

	categories, err := g.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ExpenseCategory{
		{CategoryID: 1, CategoryName: "Travel", IsActive: true},
		{CategoryID: 2, CategoryName: "Meals", IsActive: false},
	}, categories)

	statuses, err := g.ListStatuses(ctx)
	require.NoError(t, err)
	assert.Len(t, statuses, 2)

	users, err := g.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.NotNil(t, users[0].ManagerID)
	assert.Equal(t, 2, *users[0].ManagerID)
	assert.Nil(t, users[1].ManagerID)
	assert.Nil(t, users[1].CreatedAt)
	assert.True(t, users[1].IsManager())

	assert.NoError(t, mock.ExpectationsWereMet())
}
