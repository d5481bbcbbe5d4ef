package planfix

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindUserByEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/list", r.URL.Path)

		// Assert on the raw body: the email filter must carry an explicit
		// "field": 0, which a round-trip through ListRequest would hide.
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var raw struct {
			Filters []map[string]interface{} `json:"filters"`
		}
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Len(t, raw.Filters, 1)
		assert.Equal(t, float64(FilterUserEmail), raw.Filters[0]["type"])
		assert.Equal(t, "manager@example.com", raw.Filters[0]["value"])
		require.Contains(t, raw.Filters[0], "field")
		assert.Equal(t, float64(0), raw.Filters[0]["field"])

		_, _ = w.Write([]byte(`{"result": "success", "users": [{"id": 77}]}`))
	})

	id, err := client.FindUserByEmail(context.Background(), "manager@example.com")
	require.NoError(t, err)
	assert.Equal(t, 77, id)
}

func TestFindUserByEmailNoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": "success", "users": []}`))
	})

	_, err := client.FindUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, NoUserFoundErr{})
}
