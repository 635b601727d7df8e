package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertIdempotent(t *testing.T) {
	s := New()

	id1, err := s.Insert(Astronomy, "the sun", "The Sun is a G-type main-sequence star.", []string{"star"})
	require.NoError(t, err)

	before := s.Stats().TotalNodes

	id2, err := s.Insert(Astronomy, "the sun", "The Sun is a G-type main-sequence star.", []string{"star"})
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, before, s.Stats().TotalNodes)
}

func TestInsertRejectsOutOfRangeConfidence(t *testing.T) {
	s := New()
	_, err := s.InsertWithConfidence(Physics, "gravity", "content", nil, 1.5)
	assert.ErrorIs(t, err, ErrInvalidConfidence)
}

func TestQueryDefinitionHit(t *testing.T) {
	s := New()
	id, err := s.Insert(Astronomy, "the sun", "The Sun is a G-type main-sequence star at the center of the Solar System.", []string{"sun", "star"})
	require.NoError(t, err)

	results, err := s.Query("what is the sun")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, id, results[0].ID)
	assert.GreaterOrEqual(t, results[0].Score, 90.0)
}

func TestQueryDomainDisambiguation(t *testing.T) {
	s := New()
	loveID, err := s.Insert(Psychology, "love", "Love is a complex emotional and psychological state.", []string{"emotion", "attachment"})
	require.NoError(t, err)
	_, err = s.Insert(Literature, "shakespeare", "Shakespeare's plays often explore themes including love and betrayal.", []string{"plays", "sonnets"})
	require.NoError(t, err)

	results, err := s.Query("what is love")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, loveID, results[0].ID)
}

func TestQueryEmptyIsNotAnError(t *testing.T) {
	s := New()
	results, err := s.Query("")
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestQueryDeterministicRanking(t *testing.T) {
	s := New()
	_, err := s.Insert(Mathematics, "calculus", "Calculus studies continuous change through derivatives and integrals.", []string{"derivative", "integral"})
	require.NoError(t, err)
	_, err = s.Insert(Mathematics, "algebra", "Algebra studies symbols and the rules for manipulating them.", []string{"symbol"})
	require.NoError(t, err)

	first, err := s.Query("what is calculus")
	require.NoError(t, err)
	second, err := s.Query("what is calculus")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIndexStoreAgreement(t *testing.T) {
	s := New()
	_, err := s.Insert(Biology, "cell", "A cell is the basic structural unit of life.", []string{"organism"})
	require.NoError(t, err)
	assert.NoError(t, s.CheckIntegrity())
}

func TestLoadRebuildsIndexesAndPreservesID(t *testing.T) {
	s := New()
	id, err := s.Insert(Chemistry, "atom", "An atom is the smallest unit of ordinary matter.", []string{"element"})
	require.NoError(t, err)

	snap := s.Export()

	reloaded := New()
	require.NoError(t, reloaded.Load(snap))

	n, ok := reloaded.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, n.ID)

	results, err := reloaded.Query("what is an atom")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, id, results[0].ID)
}

func TestQueryAfterUnrelatedInsertLeavesTopResultUnchanged(t *testing.T) {
	s := New()
	sunID, err := s.Insert(Astronomy, "the sun", "The Sun is a G-type main-sequence star.", []string{"star"})
	require.NoError(t, err)

	before, err := s.Query("what is the sun")
	require.NoError(t, err)
	require.Equal(t, sunID, before[0].ID)

	_, err = s.Insert(Law, "contract", "A contract is a legally binding agreement.", []string{"agreement"})
	require.NoError(t, err)

	after, err := s.Query("what is the sun")
	require.NoError(t, err)
	require.NotEmpty(t, after)
	assert.Equal(t, before[0].ID, after[0].ID)
}
