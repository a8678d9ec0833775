package stats_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhall/backend/features/stats"
	"studyhall/backend/internal/index"
)

func TestHandler_Get(t *testing.T) {
	ix := index.New(filepath.Join(t.TempDir(), "study"))
	require.NoError(t, ix.Add([][]float32{{1, 0}, {0, 1}, {1, 1}}, []index.Meta{
		{DocumentID: "docA", Text: "a"},
		{DocumentID: "docA", ChunkIndex: 1, Text: "b"},
		{DocumentID: "docB", Text: "c"},
	}))

	h := stats.NewHandler(ix)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"documents":2,"chunks":3,"dimension":2}}`, w.Body.String())
}

func TestHandler_Get_EmptyCorpus(t *testing.T) {
	h := stats.NewHandler(index.New(filepath.Join(t.TempDir(), "study")))

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"documents":0,"chunks":0,"dimension":0}}`, w.Body.String())
}
