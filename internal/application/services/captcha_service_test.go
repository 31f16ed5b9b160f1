package services

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCaptcha(seed int64) *CaptchaService {
	return NewCaptchaService(rand.New(rand.NewSource(seed)))
}

func TestVerifyAnswerTrimsAndIgnoresCase(t *testing.T) {
	svc := seededCaptcha(1)

	assert.True(t, svc.VerifyAnswer("42", "42"))
	assert.True(t, svc.VerifyAnswer("  42  ", "42"))
	assert.True(t, svc.VerifyAnswer("SEVEN", "seven"))
	assert.False(t, svc.VerifyAnswer("forty-two", "42"))
	assert.False(t, svc.VerifyAnswer("", "42"))
	assert.False(t, svc.VerifyAnswer("4 2", "42"))
}

func TestGenerateProducesWellFormedChallenges(t *testing.T) {
	svc := seededCaptcha(7)

	seen := make(map[ChallengeType]int)
	for i := 0; i < 400; i++ {
		ch := svc.Generate()
		seen[ch.Type]++

		require.NotEmpty(t, ch.Question)
		require.NotEmpty(t, ch.Answer)
		require.NotEmpty(t, ch.Description)

		switch ch.Type {
		case ChallengeMath:
			assertMathChallenge(t, ch)
		case ChallengeSequence:
			_, err := strconv.Atoi(ch.Answer)
			assert.NoError(t, err)
			assert.True(t, strings.HasSuffix(ch.Question, ", ?"))
		case ChallengePattern:
			assert.True(t, strings.HasSuffix(ch.Question, "→ ?"))
		case ChallengeLogic:
			assert.True(t, strings.HasSuffix(ch.Question, "?"))
		default:
			t.Fatalf("unknown challenge type %q", ch.Type)
		}
	}

	// 400 draws hit all four categories
	assert.Len(t, seen, 4)
}

func assertMathChallenge(t *testing.T, ch Challenge) {
	t.Helper()

	var a, b int
	var op string
	_, err := fmt.Sscanf(ch.Question, "%d %s %d = ?", &a, &op, &b)
	require.NoError(t, err, "question %q", ch.Question)

	answer, err := strconv.Atoi(ch.Answer)
	require.NoError(t, err)

	switch op {
	case "+":
		assert.GreaterOrEqual(t, a, 1)
		assert.LessOrEqual(t, a, 50)
		assert.GreaterOrEqual(t, b, 1)
		assert.LessOrEqual(t, b, 50)
		assert.Equal(t, a+b, answer)
	case "-":
		assert.GreaterOrEqual(t, a, 21)
		assert.LessOrEqual(t, a, 70)
		assert.Less(t, b, a)
		assert.GreaterOrEqual(t, b, 1)
		assert.Equal(t, a-b, answer)
		assert.Positive(t, answer)
	case "×":
		assert.GreaterOrEqual(t, a, 1)
		assert.LessOrEqual(t, a, 12)
		assert.GreaterOrEqual(t, b, 1)
		assert.LessOrEqual(t, b, 12)
		assert.Equal(t, a*b, answer)
	default:
		t.Fatalf("unknown operator %q", op)
	}
}

func TestGenerateLogicAnswersComeFromPool(t *testing.T) {
	svc := seededCaptcha(13)

	for i := 0; i < 200; i++ {
		ch := svc.Generate()
		if ch.Type != ChallengeLogic {
			continue
		}
		found := false
		for _, q := range logicPool {
			if q.question == ch.Question && q.answer == ch.Answer {
				found = true
				break
			}
		}
		assert.True(t, found, "challenge %q not in pool", ch.Question)
	}
}
