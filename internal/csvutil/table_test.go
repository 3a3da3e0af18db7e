package csvutil

import (
	"testing"

	"github.com/lepinkainen/keepers/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteTable_RoundTripsBytes(t *testing.T) {
	env := testutil.NewTestEnv(t)

	content := "Player,Season,Squad\n\"Keeper, A.\",2024-2025,Arsenal\nB. Keeper,2023-2024,\n"
	env.WriteFileString("in.csv", content)

	table, err := ReadTable(env.Path("in.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Player", "Season", "Squad"}, table.Header)
	assert.Equal(t, "Keeper, A.", table.Rows[0][0])

	require.NoError(t, WriteTable(env.Path("out", "out.csv"), table))
	env.AssertFileEquals("out/out.csv", content)
}

func TestReadTable_FitsRowsToHeader(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("ragged.csv", "a,b,c\n1\n1,2,3,4\n")

	table, err := ReadTable(env.Path("ragged.csv"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "", ""}, {"1", "2", "3"}}, table.Rows)
}

func TestReadTable_Errors(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("empty.csv", "")

	_, err := ReadTable(env.Path("empty.csv"))
	assert.ErrorContains(t, err, "empty")

	_, err = ReadTable(env.Path("missing.csv"))
	assert.Error(t, err)
}

func TestTable_SetColumn(t *testing.T) {
	table := Table{
		Header: []string{"Player", "Season"},
		Rows:   [][]string{{"A", "1"}, {"B", "2"}},
	}

	table.SetColumn("Recent Fee", func(row []string) string { return row[0] + "-fee" })
	assert.Equal(t, []string{"Player", "Season", "Recent Fee"}, table.Header)
	assert.Equal(t, [][]string{{"A", "1", "A-fee"}, {"B", "2", "B-fee"}}, table.Rows)

	// Setting again overwrites instead of adding a second column
	table.SetColumn("Recent Fee", func(row []string) string { return "" })
	assert.Equal(t, []string{"Player", "Season", "Recent Fee"}, table.Header)
	assert.Equal(t, [][]string{{"A", "1", ""}, {"B", "2", ""}}, table.Rows)
}

func TestTable_InsertColumnAfter(t *testing.T) {
	table := Table{
		Header: []string{"Player", "Nation"},
		Rows:   [][]string{{"A", "ch SUI"}},
	}

	table.InsertColumnAfter("Player", "Season", "2024-2025")
	assert.Equal(t, []string{"Player", "Season", "Nation"}, table.Header)
	assert.Equal(t, [][]string{{"A", "2024-2025", "ch SUI"}}, table.Rows)

	table.InsertColumnAfter("Missing", "Tail", "x")
	assert.Equal(t, []string{"Player", "Season", "Nation", "Tail"}, table.Header)
	assert.Equal(t, [][]string{{"A", "2024-2025", "ch SUI", "x"}}, table.Rows)
}

func TestTable_RequireColumns(t *testing.T) {
	table := Table{Header: []string{"Player", "Season", "Fee"}}

	pos, err := table.RequireColumns("Fee", "Player")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, pos)

	_, err = table.RequireColumns("Player", "Squad")
	assert.ErrorContains(t, err, `"Squad"`)
}
