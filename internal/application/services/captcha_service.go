package services

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// ChallengeType categorizes a captcha challenge.
type ChallengeType string

const (
	ChallengeMath     ChallengeType = "math"
	ChallengePattern  ChallengeType = "pattern"
	ChallengeSequence ChallengeType = "sequence"
	ChallengeLogic    ChallengeType = "logic"
)

// Challenge is one human-verification puzzle with its expected answer.
type Challenge struct {
	Type        ChallengeType `json:"type"`
	Question    string        `json:"question"`
	Answer      string        `json:"answer"`
	Description string        `json:"description,omitempty"`
}

// CaptchaService generates and verifies small human-verification puzzles.
// Randomness is injected so tests can pin the selection.
type CaptchaService struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewCaptchaService creates a captcha service. A nil rng seeds one from the
// current time.
func NewCaptchaService(rng *rand.Rand) *CaptchaService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CaptchaService{rng: rng}
}

// Generate picks uniformly among the four challenge categories and builds a
// fresh challenge from that category's pool.
func (s *CaptchaService) Generate() Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.rng.Intn(4) {
	case 0:
		return s.generateMath()
	case 1:
		return s.generatePattern()
	case 2:
		return s.generateSequence()
	default:
		return s.generateLogic()
	}
}

// VerifyAnswer compares the user's answer against the expected one: trimmed,
// case-insensitive exact match.
func (s *CaptchaService) VerifyAnswer(userAnswer, expectedAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(userAnswer), expectedAnswer)
}

func (s *CaptchaService) generateMath() Challenge {
	var num1, num2, answer int
	var question string

	switch s.rng.Intn(3) {
	case 0: // addition, operands in [1,50]
		num1 = s.rng.Intn(50) + 1
		num2 = s.rng.Intn(50) + 1
		answer = num1 + num2
		question = fmt.Sprintf("%d + %d = ?", num1, num2)
	case 1: // subtraction, minuend in [21,70], subtrahend below it
		num1 = s.rng.Intn(50) + 21
		num2 = s.rng.Intn(num1-1) + 1
		answer = num1 - num2
		question = fmt.Sprintf("%d - %d = ?", num1, num2)
	default: // multiplication, operands in [1,12]
		num1 = s.rng.Intn(12) + 1
		num2 = s.rng.Intn(12) + 1
		answer = num1 * num2
		question = fmt.Sprintf("%d × %d = ?", num1, num2)
	}

	return Challenge{
		Type:        ChallengeMath,
		Question:    question,
		Answer:      fmt.Sprintf("%d", answer),
		Description: "Solve the math problem",
	}
}

var patternPool = []struct {
	sequence []string
	answer   string
}{
	{[]string{"🔴", "🔵", "🔴", "🔵", "🔴"}, "🔵"},
	{[]string{"⭐", "⭐⭐", "⭐⭐⭐", "⭐⭐⭐⭐"}, "⭐⭐⭐⭐⭐"},
	{[]string{"🟥", "🟦", "🟦", "🟥", "🟦", "🟦"}, "🟥"},
	{[]string{"▲", "▼", "▲", "▼", "▲"}, "▼"},
}

func (s *CaptchaService) generatePattern() Challenge {
	p := patternPool[s.rng.Intn(len(patternPool))]
	return Challenge{
		Type:        ChallengePattern,
		Question:    strings.Join(p.sequence, " ") + " → ?",
		Answer:      p.answer,
		Description: "What comes next?",
	}
}

var sequencePool = []struct {
	numbers []int
	answer  int
}{
	{[]int{2, 4, 6, 8}, 10},
	{[]int{1, 3, 5, 7}, 9},
	{[]int{5, 10, 15, 20}, 25},
	{[]int{1, 2, 4, 8}, 16},
	{[]int{10, 9, 8, 7}, 6},
}

func (s *CaptchaService) generateSequence() Challenge {
	seq := sequencePool[s.rng.Intn(len(sequencePool))]

	parts := make([]string, 0, len(seq.numbers))
	for _, n := range seq.numbers {
		parts = append(parts, fmt.Sprintf("%d", n))
	}

	return Challenge{
		Type:        ChallengeSequence,
		Question:    strings.Join(parts, ", ") + ", ?",
		Answer:      fmt.Sprintf("%d", seq.answer),
		Description: "Continue the sequence",
	}
}

var logicPool = []struct {
	question string
	answer   string
}{
	{"How many days in a week?", "7"},
	{"How many months in a year?", "12"},
	{"What is 10 ÷ 2?", "5"},
	{"How many sides does a triangle have?", "3"},
	{"What is 3² (3 squared)?", "9"},
	{"How many hours in a day?", "24"},
	{"How many legs does a spider have?", "8"},
}

func (s *CaptchaService) generateLogic() Challenge {
	q := logicPool[s.rng.Intn(len(logicPool))]
	return Challenge{
		Type:        ChallengeLogic,
		Question:    q.question,
		Answer:      q.answer,
		Description: "Answer the question",
	}
}
