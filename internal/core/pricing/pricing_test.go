package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-engine/internal/core/units"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()
	assert.Equal(t, 0.01, tbl.Rate(units.Unit(units.Gram)))
	assert.Equal(t, DefaultRate, tbl.Rate(units.Unit("handful")))
	for _, unitsInCategory := range units.Vocabulary() {
		for _, u := range unitsInCategory {
			_, ok := tbl.Snapshot()[string(u)]
			assert.True(t, ok, "missing default rate for %s", u)
		}
	}
}

func TestNewTableOverrides(t *testing.T) {
	tbl, err := NewTable(map[string]float64{"Grams": 0.02}, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 0.02, tbl.Rate(units.Unit(units.Gram)))
	assert.Equal(t, 10.0, tbl.Rate(units.Unit(units.Kilogram)))
	assert.Equal(t, 2.5, tbl.DefaultRate())

	// 內建表不受影響
	assert.Equal(t, 0.01, Default().Rate(units.Unit(units.Gram)))
}

func TestNewTableRejectsInvalid(t *testing.T) {
	_, err := NewTable(map[string]float64{"handful": 1}, 1)
	assert.ErrorContains(t, err, "unknown unit")

	_, err = NewTable(map[string]float64{"g": -1}, 1)
	assert.Error(t, err)

	_, err = NewTable(nil, -0.5)
	assert.Error(t, err)
}

func TestLoadFromFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"default_rate":3,"rates":{"kg":12,"count":0.75}}`))
	}))
	defer srv.Close()

	tbl, err := Load(context.Background(), map[string]float64{"kg": 11, "l": 4}, 1, NewFeedClient(srv.URL, time.Second))
	require.NoError(t, err)
	assert.Equal(t, 12.0, tbl.Rate(units.Unit(units.Kilogram)))
	assert.Equal(t, 4.0, tbl.Rate(units.Unit(units.Liter)))
	assert.Equal(t, 0.75, tbl.Rate(units.Unit(units.Count)))
	assert.Equal(t, 3.0, tbl.DefaultRate())
}

func TestLoadFeedFailureFallsBackToConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	feed := NewFeedClient(srv.URL, time.Second)
	feed.client.SetRetryCount(0)

	tbl, err := Load(context.Background(), map[string]float64{"kg": 11}, 1.5, feed)
	require.NoError(t, err)
	assert.Equal(t, 11.0, tbl.Rate(units.Unit(units.Kilogram)))
	assert.Equal(t, 1.5, tbl.DefaultRate())
}

func TestLoadWithoutFeed(t *testing.T) {
	tbl, err := Load(context.Background(), nil, DefaultRate, nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Snapshot(), tbl.Snapshot())
}

func TestLoadInvalidFeedFallsBackToConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown unit", `{"rates":{"kg":12,"bunch":0.5}}`},
		{"negative rate", `{"rates":{"kg":-3}}`},
		{"negative default", `{"default_rate":-1,"rates":{"kg":12}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			tbl, err := Load(context.Background(), map[string]float64{"kg": 11}, 1, NewFeedClient(srv.URL, time.Second))
			require.NoError(t, err)
			assert.Equal(t, 11.0, tbl.Rate(units.Unit(units.Kilogram)))
			assert.Equal(t, 1.0, tbl.DefaultRate())
		})
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	_, err := Load(context.Background(), map[string]float64{"bunch": 1}, 1, nil)
	assert.ErrorContains(t, err, "unknown unit")
}
