package sqlstore

import (
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridsnake/engine/store"
	"github.com/gridsnake/engine/store/storetest"
)

func mustExec(db *sql.DB, sq string) {
	if _, err := db.Exec(sq); err != nil {
		panic(err)
	}
}

func TestSQLStore(t *testing.T) {
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL not set")
	}

	s, err := NewSQLStore(url)
	require.NoError(t, err)
	defer s.Close()

	storetest.Suite(t, func() store.Store {
		mustExec(s.db, "TRUNCATE high_scores")
		mustExec(s.db, "TRUNCATE progress")
		mustExec(s.db, "TRUNCATE settings")
		return s
	})
}
