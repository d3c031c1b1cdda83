package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRetriesServerErrorWithFullBody(t *testing.T) {
	var attempts atomic.Int32
	var bodies []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies = append(bodies, string(payload))

		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `[[{"label":"LABEL_2","score":0.95}]]`)
	}))
	defer server.Close()

	client := NewHuggingFaceClient(server.URL+"/", "", 5*time.Second)

	scores, err := client.Classify(context.Background(), "some-model", "what a great day")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "LABEL_2", scores[0].Label)

	// The retried request carries the same payload as the first attempt.
	require.Len(t, bodies, 2)
	assert.NotEmpty(t, bodies[0])
	assert.Equal(t, bodies[0], bodies[1])
}

func TestClassifyBackoffStopsOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHuggingFaceClient(server.URL+"/", "", 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Classify(ctx, "some-model", "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The deadline fires during the first backoff wait; the client must
	// return then, not after the full retry schedule.
	assert.Less(t, time.Since(start), INITIAL_BACKOFF)
}
