package m_outbox

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe mutations for the outbox_events table.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a pending event stamped with the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.EventID,
		data.EventType,
		data.AggregateID,
		data.Payload,
		data.Status,
		spanner.CommitTimestamp,
		data.ProcessedAt,
		data.RetryCount,
		data.ErrorMessage,
	})
}

// DeleteMut creates a mutation deleting an event.
func (m *Model) DeleteMut(eventID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{eventID})
}
