package mongostore_test

import (
	"testing"

	"github.com/pageza/recipeshare/backend/internal/store"
	"github.com/pageza/recipeshare/backend/internal/store/storetest"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

func TestMongoStore(t *testing.T) {
	client := testhelpers.SetupMongoClient(t)

	storetest.Run(t, func(t *testing.T) store.Store {
		return testhelpers.NewMongoStore(t, client)
	})
}
