package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatabasePath(t *testing.T) {
	project, inst, db, err := parseDatabasePath("projects/p1/instances/i1/databases/pricing-db")
	require.NoError(t, err)
	assert.Equal(t, "p1", project)
	assert.Equal(t, "i1", inst)
	assert.Equal(t, "pricing-db", db)

	for _, bad := range []string{"", "pricing-db", "projects/p1/instances//databases/d", "projects/p/instance/i/databases/d"} {
		_, _, _, err := parseDatabasePath(bad)
		assert.Error(t, err, bad)
	}
}

func TestSplitDDLStatements(t *testing.T) {
	ddl := `-- schema
CREATE TABLE a (
  id STRING(36) NOT NULL,
) PRIMARY KEY (id);

CREATE INDEX idx_a ON a(id);
`
	assert.Equal(t, []string{
		"CREATE TABLE a (\nid STRING(36) NOT NULL,\n) PRIMARY KEY (id)",
		"CREATE INDEX idx_a ON a(id)",
	}, splitDDLStatements(ddl))
}
