package store_test

import (
	"testing"

	"github.com/gridsnake/engine/store"
	"github.com/gridsnake/engine/store/storetest"
)

func TestInMemStore(t *testing.T) {
	storetest.Suite(t, func() store.Store { return store.InMemStore() })
}

func TestInstrumentedStore(t *testing.T) {
	storetest.Suite(t, func() store.Store {
		return store.InstrumentStore(store.InMemStore())
	})
}
