package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-service/token"
)

func TestLedgerRecordAndContains(t *testing.T) {
	ledger := token.NewInMemoryLedger()

	require.False(t, ledger.Contains("raw-token"))

	require.True(t, ledger.Record("raw-token"))
	require.True(t, ledger.Contains("raw-token"))

	// A second record is a no-op and reports it was not the first.
	require.False(t, ledger.Record("raw-token"))
	require.True(t, ledger.Contains("raw-token"))
}

func TestLedgerCleanup(t *testing.T) {
	ledger := token.NewInMemoryLedger()

	require.True(t, ledger.Record("consumed-a-while-ago"))
	time.Sleep(20 * time.Millisecond)
	require.True(t, ledger.Record("consumed-just-now"))

	ledger.Cleanup(10 * time.Millisecond)

	require.False(t, ledger.Contains("consumed-a-while-ago"))
	require.True(t, ledger.Contains("consumed-just-now"))
}
