package trivia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/quizbot/internal/quiz"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client(), time.Second)
}

func TestCategories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, categoriesPath, r.URL.Path)
		_, _ = w.Write([]byte(`{"trivia_categories":[{"id":9,"name":"General Knowledge"},{"id":10,"name":"Entertainment: Books"}]}`))
	})

	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []quiz.Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 10, Name: "Entertainment: Books"},
	}, cats)
}

func TestCategoriesEmptyIsFetchError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"trivia_categories":[]}`))
	})

	_, err := c.Categories(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, quiz.ErrFetchFailed))
}

func TestQuestionsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, questionsPath, r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("amount"))
		assert.Equal(t, "9", q.Get("category"))
		assert.Equal(t, "hard", q.Get("difficulty"))
		assert.Equal(t, "boolean", q.Get("type"))
		_, _ = w.Write([]byte(`{"response_code":0,"results":[
			{"type":"boolean","difficulty":"hard","category":"General Knowledge",
			 "question":"The &quot;Sun&quot; is a star.","correct_answer":"True","incorrect_answers":["False"]}
		]}`))
	})

	sel := quiz.Selections{
		Category:   quiz.Category{ID: 9, Name: "General Knowledge"},
		Difficulty: quiz.DifficultyHard,
		Format:     quiz.FormatBoolean,
	}
	qs, err := c.Questions(context.Background(), sel, quiz.QuestionsPerGame)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	// Entities are decoded at presentation time, not here.
	assert.Equal(t, "The &quot;Sun&quot; is a star.", qs[0].Text)
	assert.Equal(t, "True", qs[0].CorrectAnswer)
	assert.Equal(t, []string{"False"}, qs[0].IncorrectAnswers)
}

func TestQuestionsFailures(t *testing.T) {
	cases := []struct {
		name string
		h    http.HandlerFunc
	}{
		{"status", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"response code", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"response_code":1,"results":[]}`))
		}},
		{"empty", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"response_code":0,"results":[]}`))
		}},
		{"garbage", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.h)
			_, err := c.Questions(context.Background(), quiz.Selections{}, quiz.QuestionsPerGame)
			require.Error(t, err)
			assert.True(t, errors.Is(err, quiz.ErrFetchFailed))

			var ferr *quiz.FetchError
			require.True(t, errors.As(err, &ferr))
			assert.Equal(t, "questions", ferr.Op)
		})
	}
}

func TestQuestionsDropsWrongOptionCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response_code":0,"results":[
			{"type":"multiple","question":"Short?","correct_answer":"A","incorrect_answers":["B","C"]},
			{"type":"multiple","question":"Full?","correct_answer":"A","incorrect_answers":["B","C","D"]},
			{"type":"multiple","question":"Long?","correct_answer":"A","incorrect_answers":["B","C","D","E"]}
		]}`))
	})
	sel := quiz.Selections{Format: quiz.FormatMultiple}

	qs, err := c.Questions(context.Background(), sel, quiz.QuestionsPerGame)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Full?", qs[0].Text)

	// The same batch holds no usable true/false question.
	sel.Format = quiz.FormatBoolean
	_, err = c.Questions(context.Background(), sel, quiz.QuestionsPerGame)
	var ferr *quiz.FetchError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "questions", ferr.Op)
}

func TestQuestionsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := New(srv.URL, nil, 50*time.Millisecond)
	_, err := c.Questions(context.Background(), quiz.Selections{}, quiz.QuestionsPerGame)
	require.Error(t, err)
	assert.True(t, errors.Is(err, quiz.ErrFetchFailed))
}
