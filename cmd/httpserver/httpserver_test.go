package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/splitpot/splitpot/internal/storage"
	"github.com/splitpot/splitpot/pkg/configpkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	config := configpkg.Config{
		StorageBackend: configpkg.BackendCSV,
		DataDir:        t.TempDir(),
	}

	repos, err := storage.Open(config)
	require.NoError(t, err)

	server, err := New(repos, zerolog.Nop(), config)
	require.NoError(t, err)

	return server
}

func do(t *testing.T, server *Server, method, url string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func decodeData(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var res struct {
		Data map[string]any `json:"data"`
	}

	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	return res.Data
}

func TestLedgerFlow(t *testing.T) {
	server := newTestServer(t)

	for _, u := range []gin.H{
		{"email": "alice@x.com", "name": "alice"},
		{"email": "bob@x.com", "name": "bob"},
		{"email": "carol@x.com", "name": "carol"},
	} {
		recorder := do(t, server, http.MethodPost, "/users", u)
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	recorder := do(t, server, http.MethodPost, "/users", gin.H{"email": "alice@x.com", "name": "alice"})
	require.Equal(t, http.StatusConflict, recorder.Code)

	recorder = do(t, server, http.MethodPost, "/groups", gin.H{
		"name":    "trip",
		"members": []string{"alice@x.com", "bob@x.com", "carol@x.com"},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(t, server, http.MethodPost, "/expenses", gin.H{
		"group_name":   "trip",
		"expense_name": "hotel",
		"amount":       "90",
		"payer":        "alice@x.com",
		"split":        "equal",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	// Payer outside the group is rejected before anything is stored.
	recorder = do(t, server, http.MethodPost, "/expenses", gin.H{
		"group_name":   "trip",
		"expense_name": "taxi",
		"amount":       "30",
		"payer":        "stranger@x.com",
		"split":        "equal",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/groups/trip/balances", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	data := decodeData(t, recorder)
	balances := data["balances"].(map[string]any)
	require.Equal(t, "-60.00", balances["alice@x.com"])
	require.Equal(t, "30.00", balances["bob@x.com"])
	require.Equal(t, "30.00", balances["carol@x.com"])

	detail := data["detail"].(map[string]any)
	require.Equal(t, "30.00", detail["bob@x.com"].(map[string]any)["alice@x.com"])

	recorder = do(t, server, http.MethodPost, "/settlements", gin.H{
		"payer_email": "bob@x.com",
		"payee_email": "alice@x.com",
		"amount":      "10",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, float64(1), decodeData(t, recorder)["adjusted_expenses"])

	recorder = do(t, server, http.MethodGet, "/groups/trip/balances", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	balances = decodeData(t, recorder)["balances"].(map[string]any)
	require.Equal(t, "-50.00", balances["alice@x.com"])
	require.Equal(t, "20.00", balances["bob@x.com"])
	require.Equal(t, "30.00", balances["carol@x.com"])

	recorder = do(t, server, http.MethodGet, "/balances/alice", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	data = decodeData(t, recorder)
	require.Equal(t, "50.00", data["owed_by_others"])
	require.Equal(t, "0.00", data["owes_to_others"])
	require.Equal(t, "50.00", data["net_balance"])
	require.Equal(t, "to receive", data["direction"])

	recorder = do(t, server, http.MethodGet, "/balances/nobody", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/groups/nosuch/balances", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Empty(t, decodeData(t, recorder)["balances"])
}
