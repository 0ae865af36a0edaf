package prefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepbrainspace/guardy/internal/config"
	"github.com/deepbrainspace/guardy/internal/patterns"
)

func TestPrefilter_CandidatesMatchesKeyword(t *testing.T) {
	lib, err := patterns.Build([]patterns.Definition{
		{ID: "stripe", Regex: `sk_live_[0-9a-zA-Z]{10,}`, Keywords: []string{"sk_live_"}},
		{ID: "github", Regex: `ghp_[0-9a-zA-Z]{10,}`, Keywords: []string{"ghp_"}},
	})
	require.NoError(t, err)

	pf := Build(lib.Detectors())

	cands := pf.Candidates([]byte("STRIPE_KEY=sk_live_abcdefghij1234567890"))
	require.Len(t, cands, 1)
	assert.Equal(t, "stripe", cands[0].ID)
}

func TestPrefilter_NoKeywordMatchYieldsNoCandidates(t *testing.T) {
	lib, err := patterns.Build([]patterns.Definition{
		{ID: "stripe", Regex: `sk_live_[0-9a-zA-Z]{10,}`, Keywords: []string{"sk_live_"}},
	})
	require.NoError(t, err)

	pf := Build(lib.Detectors())
	assert.Empty(t, pf.Candidates([]byte("nothing interesting here")))
}

func TestPrefilter_KeywordlessDetectorAlwaysCandidate(t *testing.T) {
	lib, err := patterns.Build([]patterns.Definition{
		{ID: "always_on", Regex: `.+`, Keywords: nil},
	})
	require.NoError(t, err)

	pf := Build(lib.Detectors())
	cands := pf.Candidates([]byte("irrelevant content"))
	require.Len(t, cands, 1)
	assert.Equal(t, "always_on", cands[0].ID)
}

func TestPrefilter_CaseInsensitiveOptInMatchesEitherCase(t *testing.T) {
	lib, err := patterns.Build([]patterns.Definition{
		{ID: "aws", Regex: `AKIA[A-Z0-9]{16}`, Keywords: []string{"AKIA"}, CaseInsensitive: true},
	})
	require.NoError(t, err)

	pf := Build(lib.Detectors())
	cands := pf.Candidates([]byte("akia1234567890123456"))
	require.Len(t, cands, 1)
	assert.Equal(t, "aws", cands[0].ID)
}

func TestPrefilter_CaseSensitiveByDefaultDoesNotMatchOtherCase(t *testing.T) {
	lib, err := patterns.Build([]patterns.Definition{
		{ID: "aws", Regex: `AKIA[A-Z0-9]{16}`, Keywords: []string{"AKIA"}},
	})
	require.NoError(t, err)

	pf := Build(lib.Detectors())
	assert.Empty(t, pf.Candidates([]byte("akia1234567890123456")))

	cands := pf.Candidates([]byte("AKIA1234567890123456"))
	require.Len(t, cands, 1)
	assert.Equal(t, "aws", cands[0].ID)
}

func TestPrefilter_BuiltinLibraryBuildsWithoutError(t *testing.T) {
	lib, err := patterns.Build(config.Default().Detectors)
	require.NoError(t, err)
	pf := Build(lib.Detectors())
	assert.NotNil(t, pf)
}
