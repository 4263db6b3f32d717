package featurizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeaturizeWithoutLanguageTokenizer(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)

	f := s.Featurize("Who R U ?")
	assert.Equal(t, []string{"who", "r", "u", "?"}, f.Tokens)
	assert.Equal(t, [][2]int{{0, 3}, {4, 5}, {6, 7}, {8, 9}}, f.TokenRanges)
	require.Len(t, f.WordIDs, 4)
	for _, id := range f.WordIDs {
		assert.Less(t, id, uint32(DefaultBuckets))
	}
}

func TestFeaturizeSameTokenSameID(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)

	f := s.Featurize("Where  where\tWHERE")
	assert.Equal(t, []string{"where", "where", "where"}, f.Tokens)
	assert.Equal(t, f.WordIDs[0], f.WordIDs[1])
	assert.Equal(t, f.WordIDs[0], f.WordIDs[2])
}

func TestFeaturizeKeepsCase(t *testing.T) {
	off := false
	s, err := New(Config{Lowercase: &off})
	require.NoError(t, err)
	assert.Equal(t, []string{"Who", "R"}, s.Featurize(" Who R ").Tokens)
}

func TestFeaturizeCustomSplit(t *testing.T) {
	s, err := New(Config{SplitRegex: `[\s,]+`, Buckets: 16})
	require.NoError(t, err)

	f := s.Featurize("a,b, c")
	assert.Equal(t, []string{"a", "b", "c"}, f.Tokens)
	for _, id := range f.WordIDs {
		assert.Less(t, id, uint32(16))
	}
	assert.Equal(t, uint32(16), s.Buckets())
}

func TestFeaturizeEmpty(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)

	f := s.Featurize("   ")
	assert.Empty(t, f.Tokens)
	assert.Empty(t, f.WordIDs)
}

func TestNewBadRegex(t *testing.T) {
	_, err := New(Config{SplitRegex: "("})
	assert.Error(t, err)
}
