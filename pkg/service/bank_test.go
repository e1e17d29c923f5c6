package service_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/amirasaad/miniatm/pkg/ledger"
	"github.com/amirasaad/miniatm/pkg/money"
	"github.com/amirasaad/miniatm/pkg/service"
	"github.com/amirasaad/miniatm/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

func newService(t *testing.T) (*service.BankService, *storage.Store) {
	t.Helper()
	store := storage.NewStore(filepath.Join(t.TempDir(), "bank.json"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewBankService(ledger.New(), store, logger), store
}

func TestCreateAccountPersists(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)

	a := svc.CreateAccount("Asha", "4321")
	assert.Equal(t, int64(1001001001), a.Number())

	snap, err := store.Load()
	require.NoError(t, err)
	require.Len(t, snap.Accounts, 1)
	assert.Equal(t, a.Number(), snap.Accounts[0].Number)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	a := svc.CreateAccount("Asha", "4321")

	t.Run("correct PIN", func(t *testing.T) {
		got, err := svc.Login(a.Number(), "4321")
		require.NoError(t, err)
		assert.Same(t, a, got)
	})

	t.Run("wrong PIN", func(t *testing.T) {
		_, err := svc.Login(a.Number(), "0000")
		assert.ErrorIs(t, err, service.ErrInvalidPIN)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.Login(42, "4321")
		assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	})
}

func TestDepositWithdrawTransferPersist(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)
	src := svc.CreateAccount("Asha", "4321")
	dst := svc.CreateAccount("Ravi", "1111")

	require.NoError(t, svc.Deposit(src.Number(), money.Must(500.00)))
	require.NoError(t, svc.Withdraw(src.Number(), money.Must(50.00)))
	require.NoError(t, svc.Transfer(src.Number(), dst.Number(), money.Must(200.00)))

	balance, err := svc.Balance(src.Number())
	require.NoError(t, err)
	assert.Equal(t, money.Must(250.00), balance)

	// Everything above must already be on disk.
	snap, err := store.Load()
	require.NoError(t, err)
	restored, err := ledger.FromSnapshot(snap)
	require.NoError(t, err)

	got, err := restored.Get(dst.Number())
	require.NoError(t, err)
	assert.Equal(t, money.Must(200.00), got.Balance())
}

func TestChangePINPersists(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)
	a := svc.CreateAccount("Asha", "4321")

	require.NoError(t, svc.ChangePIN(a.Number(), "9876"))

	_, err := svc.Login(a.Number(), "4321")
	assert.ErrorIs(t, err, service.ErrInvalidPIN)
	_, err = svc.Login(a.Number(), "9876")
	assert.NoError(t, err)

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "9876", snap.Accounts[0].PIN)
}

func TestTransactions(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	a := svc.CreateAccount("Asha", "4321")
	require.NoError(t, svc.Deposit(a.Number(), money.Must(500.00)))

	tx, err := svc.Transactions(a.Number())
	require.NoError(t, err)
	require.Len(t, tx, 2)
	assert.Equal(t, "Account created.", tx[0].Note)
	assert.Contains(t, tx[1].Note, "Deposited")

	_, err = svc.Transactions(42)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestSaveFailureIsNonFatal(t *testing.T) {
	t.Parallel()
	// A store pointed at a directory that does not exist cannot save.
	store := storage.NewStore(filepath.Join(t.TempDir(), "missing", "bank.json"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewBankService(ledger.New(), store, logger)

	a := svc.CreateAccount("Asha", "4321")
	require.NoError(t, svc.Deposit(a.Number(), money.Must(500.00)))

	// The in-memory state stays authoritative even though every save failed.
	balance, err := svc.Balance(a.Number())
	require.NoError(t, err)
	assert.Equal(t, money.Must(500.00), balance)

	assert.Error(t, svc.Close())
}

func TestValidationFailuresDoNotPersist(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)
	a := svc.CreateAccount("Asha", "4321")
	require.NoError(t, svc.Deposit(a.Number(), money.Must(100.00)))

	before, err := store.Load()
	require.NoError(t, err)

	require.Error(t, svc.Withdraw(a.Number(), money.Must(900.00)))

	after, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, before.Accounts, after.Accounts,
		"a failed withdrawal must not rewrite account state")
}

func TestListAccounts(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	svc.CreateAccount("Asha", "4321")
	svc.CreateAccount("Ravi", "1111")

	all := svc.ListAccounts()
	require.Len(t, all, 2)
	assert.Equal(t, "Asha", all[0].Name())
	assert.Equal(t, "Ravi", all[1].Name())
}
