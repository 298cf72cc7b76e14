package review_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/rhino1998/polyglot/internal/review"
	"github.com/rhino1998/polyglot/pkg/token"
	"github.com/stretchr/testify/require"
)

// TestReview_PopulatesTranslatedFromCorrectedCodeKey checks that a
// spec-conforming {"corrected_code": ..., "issues": [...]} payload
// from the collaborator populates ReviewResult.Translated, rather than
// silently falling back to the original text.
func TestReview_PopulatesTranslatedFromCorrectedCodeKey(t *testing.T) {
	r := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		content := `{"corrected_code": "int x = 1;", "issues": ["off by one"]}`
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := review.New(slogt.New(t), srv.Client(), srv.URL, "test-model", "")
	result, err := c.Review(context.Background(), "int x = 0;", "int x = 0;", token.C, token.CPP)
	r.NoError(err)
	r.Equal("int x = 1;", result.Translated)
	r.Equal([]string{"off by one"}, result.Issues)
}
