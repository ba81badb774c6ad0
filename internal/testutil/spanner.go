// Package testutil holds helpers for tests that run against the Spanner emulator.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/models/m_coupon"
	"github.com/light-bringer/pricing-service/internal/models/m_entity"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/models/m_price"
	"github.com/light-bringer/pricing-service/internal/models/m_purchase"
)

const defaultTestDB = "projects/test-project/instances/test-instance/databases/pricing-test"

// SetupSpannerTest connects to the emulator, empties all tables and returns a cleanup func.
// The test is skipped when SPANNER_EMULATOR_HOST is not set.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, TestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	CleanDatabase(t, client)

	return client, func() {
		CleanDatabase(t, client)
		client.Close()
	}
}

// TestSpannerDB returns SPANNER_TEST_DATABASE or the emulator default.
func TestSpannerDB() string {
	if db := os.Getenv("SPANNER_TEST_DATABASE"); db != "" {
		return db
	}
	return defaultTestDB
}

// CleanDatabase deletes every row. prices is interleaved in priced_entities and goes with it.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete(m_outbox.TableName, spanner.AllKeys()),
		spanner.Delete(m_purchase.TableName, spanner.AllKeys()),
		spanner.Delete(m_coupon.TableName, spanner.AllKeys()),
		spanner.Delete(m_price.TableName, spanner.AllKeys()),
		spanner.Delete(m_entity.TableName, spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expected int) {
	t.Helper()

	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count))
	require.Equal(t, int64(expected), count, "unexpected row count in table %s", table)
}

// AssertOutboxEvent verifies an outbox event of eventType exists for aggregateID.
func AssertOutboxEvent(t *testing.T, client *spanner.Client, aggregateID, eventType string) {
	t.Helper()

	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT %s FROM %s WHERE %s = @aggregateID AND %s = @eventType LIMIT 1",
			m_outbox.EventID, m_outbox.TableName, m_outbox.AggregateID, m_outbox.EventType),
		Params: map[string]interface{}{"aggregateID": aggregateID, "eventType": eventType},
	}

	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	_, err := iter.Next()
	require.NoError(t, err, "outbox event %s not found for %s", eventType, aggregateID)
}
