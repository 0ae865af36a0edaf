package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testThreshold = 1e-5

func TestAnalyze_RandomLookingSecretClearsThreshold(t *testing.T) {
	r := Analyze("sk_test_4eC39HqLyjWDarjtT1zdp7dc", testThreshold)
	assert.True(t, r.IsLikelySecret)
}

func TestAnalyze_ScreamingSnakeConstantIsRejected(t *testing.T) {
	r := Analyze("API_KEY_CONSTANT", testThreshold)
	assert.False(t, r.IsLikelySecret)
}

func TestAnalyze_SimpleWordsRejected(t *testing.T) {
	r := Analyze("hello_world_test", testThreshold)
	assert.False(t, r.IsLikelySecret)
}

func TestAnalyze_AllDigitsRejected(t *testing.T) {
	r := Analyze("123456789012", testThreshold)
	assert.False(t, r.IsLikelySecret)
}

func TestAnalyze_ShortStringNeverFlagged(t *testing.T) {
	r := Analyze("sk_live", 0)
	assert.False(t, r.IsLikelySecret)
}

func TestAnalyze_GithubTokenClearsThreshold(t *testing.T) {
	r := Analyze("1234567890abcdef1234567890abcdef12", testThreshold)
	assert.True(t, r.IsLikelySecret)
}
