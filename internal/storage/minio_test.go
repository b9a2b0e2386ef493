package storage

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/donation-inventory/api/internal/donation"
	"github.com/stretchr/testify/require"
)

func TestSnapshotKey(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	k1 := SnapshotKey(at)
	k2 := SnapshotKey(at)
	require.True(t, strings.HasPrefix(k1, "snapshots/donations-20240102T030405Z-"))
	require.True(t, strings.HasSuffix(k1, ".json"))
	require.NotEqual(t, k1, k2)
}

func TestEncodeSnapshot(t *testing.T) {
	at := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	list := []*donation.Donation{{ID: 1, DonorName: "Alice", DonationType: "cash", Amount: 50, Date: at}}
	b, err := EncodeSnapshot(at, list, donation.Summarize(list))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, "2024-01-02T00:00:00Z", got["taken_at"])
	require.Len(t, got["donations"], 1)
	rec := got["donations"].([]interface{})[0].(map[string]interface{})
	require.Equal(t, "2024-01-02", rec["date"])
	require.Equal(t, "Alice", rec["donor_name"])
	require.Equal(t, 50.0, rec["amount"])
	summary := got["summary"].(map[string]interface{})
	require.Equal(t, 1.0, summary["total_donations"])

	empty, err := EncodeSnapshot(at, nil, donation.Summarize(nil))
	require.NoError(t, err)
	require.Contains(t, string(empty), `"donations":[]`)
}

func TestNewMinIOStorage_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), &MinIOConfig{})
	require.Error(t, err)
	_, err = NewMinIOStorage(context.Background(), nil)
	require.Error(t, err)
	require.False(t, MinIOConfig{}.Enabled())
	require.True(t, MinIOConfig{Endpoint: "localhost:9000"}.Enabled())
}
