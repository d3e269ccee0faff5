package cmd

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/abhisek/quizpath/internal/catalog"
	"github.com/abhisek/quizpath/internal/session"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 0, true},
		{"4", 3, true},
		{"0", 0, false},
		{"5", 0, false},
		{"b", 0, false},
	}
	for _, tt := range tests {
		got, err := parseChoice(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, errUsage, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestReadChoice(t *testing.T) {
	in := bufio.NewScanner(strings.NewReader("nope\n9\n 3 \nq\n"))
	got, err := readChoice(in)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	_, err = readChoice(in)
	assert.True(t, errors.Is(err, errQuit))

	_, err = readChoice(in)
	assert.ErrorIs(t, err, io.EOF)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Stack", truncate("Stack", 14))
	assert.Equal(t, "Binary Sear...", truncate("Binary Search Tree", 14))

	// Wide runes count two cells and are never split.
	got := truncate("二叉搜索树的中序遍历结果", 14)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "二叉搜索树...", got)
	assert.LessOrEqual(t, ansi.StringWidth(got), 14)
}

func TestPad(t *testing.T) {
	assert.Equal(t, "Heap  ", pad("Heap", 6))
	assert.Equal(t, "二叉树", pad("二叉树", 6))
	assert.Equal(t, "栈    ", pad("栈", 6))
	assert.Equal(t, "toolong", pad("toolong", 3))
}

func practiceSession() *session.Session {
	s := session.New(session.Options{Now: func() time.Time { return time.Unix(1700000000, 0) }})
	s.SetCatalog(catalog.New([]catalog.Question{
		{ID: 1, Text: "LIFO?", Topic: "Stack", CorrectIndex: 2, Difficulty: 3},
		{ID: 2, Text: "FIFO?", Topic: "Queue", CorrectIndex: 0, Difficulty: 2},
		{ID: 3, Text: "Balanced?", Topic: "Tree", CorrectIndex: 0, Difficulty: 5},
	}))
	return s
}

func TestNewPicker_RecommendWalksOneRanking(t *testing.T) {
	ctx := context.Background()
	s := practiceSession()

	p, err := newPicker(s, modeRecommend, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, p.count)

	var ids []int
	for i := 0; i < p.count; i++ {
		q, err := p.next(i)
		require.NoError(t, err)
		ids = append(ids, q.ID)
		// A wrong answer keeps the question on top of a fresh ranking.
		_, err = s.RecordAttempt(ctx, q.ID, 1, time.Second)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestNewPicker_Modes(t *testing.T) {
	s := practiceSession()

	p, err := newPicker(s, modeExam, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, p.count)
	require.NotNil(t, p.exam)

	p, err = newPicker(s, modeRandom, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, p.count)
	assert.Nil(t, p.exam)

	p, err = newPicker(s, modeWrong, 2)
	require.NoError(t, err)
	_, err = p.next(0)
	assert.ErrorIs(t, err, session.ErrNoWrongQuestions)

	_, err = newPicker(s, "marathon", 2)
	assert.ErrorIs(t, err, errUsage)

	_, err = newPicker(session.New(session.Options{}), modeRecommend, 2)
	assert.ErrorIs(t, err, session.ErrNoCatalog)
}
