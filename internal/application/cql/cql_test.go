package cql

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInIDs(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t, "fundId==11111111-1111-1111-1111-111111111111", InIDs("fundId", []uuid.UUID{a}))
	assert.Equal(t,
		"fundId==(11111111-1111-1111-1111-111111111111 or 22222222-2222-2222-2222-222222222222)",
		InIDs("fundId", []uuid.UUID{a, b}))
}

func TestEqQuotesValuesWithSpaces(t *testing.T) {
	assert.Equal(t, `transactionType=="Pending payment"`, Eq("transactionType", "Pending payment"))
	assert.Equal(t, `transactionType==Allocation`, Eq("transactionType", "Allocation"))
}

func TestAndOr(t *testing.T) {
	assert.Equal(t, "a==1 AND b==2", And("a==1", "", "b==2"))
	assert.Equal(t, "(a==1 OR b==2) AND c==3", And(Or("a==1", "b==2"), "c==3"))
	assert.Equal(t, "a==1", And("a==1"))
}

func TestChunkIDs(t *testing.T) {
	ids := make([]uuid.UUID, 12)
	for i := range ids {
		ids[i] = uuid.New()
	}

	chunks := ChunkIDs(ids, 5)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 5)
	assert.Len(t, chunks[1], 5)
	assert.Len(t, chunks[2], 2)
	assert.Equal(t, ids[10], chunks[2][0])

	assert.Empty(t, ChunkIDs(nil, 5))
}

func TestDistinctIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, []uuid.UUID{a, b}, DistinctIDs([]uuid.UUID{a, b, a, b, a}))
}

func TestParse_SimpleClause(t *testing.T) {
	q, err := Parse("fiscalYearId==abc")
	require.NoError(t, err)
	assert.Equal(t, Clause{Index: "fiscalYearId", Relation: "==", Values: []string{"abc"}}, q.Where)
	assert.Empty(t, q.Sort)
}

func TestParse_EmptyMatchesAll(t *testing.T) {
	q, err := Parse("  ")
	require.NoError(t, err)
	assert.Equal(t, MatchAll{}, q.Where)

	q, err = Parse(AllRecords)
	require.NoError(t, err)
	assert.Equal(t, MatchAll{}, q.Where)
}

func TestParse_PrecedenceAndLists(t *testing.T) {
	q, err := Parse(`(fromFundId==(a or b) OR toFundId==(a or b)) AND transactionType=="Pending payment"`)
	require.NoError(t, err)

	root, ok := q.Where.(Boolean)
	require.True(t, ok)
	assert.Equal(t, OpAnd, root.Op)

	left, ok := root.Left.(Boolean)
	require.True(t, ok)
	assert.Equal(t, OpOr, left.Op)
	assert.Equal(t, Clause{Index: "fromFundId", Relation: "==", Values: []string{"a", "b"}}, left.Left)

	assert.Equal(t, Clause{Index: "transactionType", Relation: "==", Values: []string{"Pending payment"}}, root.Right)
}

func TestParse_NotAndSort(t *testing.T) {
	q, err := Parse("a==1 NOT b==2 sortBy metadata.createdDate/sort.descending name")
	require.NoError(t, err)

	root, ok := q.Where.(Boolean)
	require.True(t, ok)
	assert.Equal(t, OpNot, root.Op)
	require.Len(t, q.Sort, 2)
	assert.Equal(t, SortKey{Index: "metadata.createdDate", Descending: true}, q.Sort[0])
	assert.Equal(t, SortKey{Index: "name"}, q.Sort[1])
}

func TestParse_UnaryNotAndRelations(t *testing.T) {
	q, err := Parse("NOT amount>=10")
	require.NoError(t, err)
	assert.Equal(t, Boolean{Op: OpNot, Right: Clause{Index: "amount", Relation: ">=", Values: []string{"10"}}}, q.Where)
}

func TestParse_RoundTripsBuilderOutput(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	query := SortBy(And(InIDs("toFundId", ids), Eq("transactionType", "Allocation")), "metadata.createdDate", true)

	q, err := Parse(query)
	require.NoError(t, err)
	require.Len(t, q.Sort, 1)
	assert.False(t, q.Sort[0].Descending)

	root, ok := q.Where.(Boolean)
	require.True(t, ok)
	clause, ok := root.Left.(Clause)
	require.True(t, ok)
	assert.Equal(t, []string{ids[0].String(), ids[1].String()}, clause.Values)
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{
		"a==",
		"(a==1",
		"a==(1 or 2",
		`a=="open`,
		"a b",
		"a==1 AND",
		"a==1 sortBy",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}
