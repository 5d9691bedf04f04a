// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readmate/data"
)

func TestPgx5URL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@db:5432/readmate":   "pgx5://u:p@db:5432/readmate",
		"postgresql://u:p@db:5432/readmate": "pgx5://u:p@db:5432/readmate",
		"pgx5://db/readmate":                "pgx5://db/readmate",
		"host=db dbname=readmate":           "host=db dbname=readmate",
	}
	for in, want := range cases {
		assert.Equal(t, want, pgx5URL(in), in)
	}
}

func TestEmbeddedMigrations_Paired(t *testing.T) {
	ups, err := fs.Glob(data.Migrations, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(data.Migrations, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
