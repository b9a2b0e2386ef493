package donation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	require.Equal(t, 0, s.TotalDonations)
	require.Equal(t, 0.0, s.TotalAmount)
	require.NotNil(t, s.DonationTypes)
	require.Empty(t, s.DonationTypes)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `{"total_donations":0,"total_amount":0.0,"donation_types":{}}`, string(b))
}

func TestSummarize_GroupsByType(t *testing.T) {
	in := []*Donation{
		{ID: 1, DonorName: "Alice", DonationType: "cash", Amount: 50},
		{ID: 2, DonorName: "Bob", DonationType: "goods", Amount: 30},
		{ID: 3, DonorName: "Carol", DonationType: "cash", Amount: 12.5},
	}
	s := Summarize(in)
	require.Equal(t, 3, s.TotalDonations)
	require.Equal(t, 92.5, s.TotalAmount)
	require.Equal(t, TypeStats{Count: 2, TotalAmount: 62.5}, s.DonationTypes["cash"])
	require.Equal(t, TypeStats{Count: 1, TotalAmount: 30}, s.DonationTypes["goods"])
}

func TestSummarize_FloatAccumulation(t *testing.T) {
	in := []*Donation{
		{DonationType: "cash", Amount: 0.1},
		{DonationType: "cash", Amount: 0.2},
	}
	s := Summarize(in)
	// plain float64 addition, no rounding
	a, b := 0.1, 0.2
	require.Equal(t, a+b, s.TotalAmount)
	require.Equal(t, 0.30000000000000004, s.TotalAmount)
	require.Equal(t, a+b, s.DonationTypes["cash"].TotalAmount)
}

func TestPatchApply_OnlySetFields(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &Donation{ID: 7, DonorName: "Alice", DonationType: "cash", Amount: 50, Date: date}

	amount := 75.0
	p := Patch{Amount: &amount}
	require.False(t, p.Empty())
	p.Apply(d)

	require.Equal(t, int64(7), d.ID)
	require.Equal(t, "Alice", d.DonorName)
	require.Equal(t, "cash", d.DonationType)
	require.Equal(t, 75.0, d.Amount)
	require.Equal(t, date, d.Date)
}

func TestPatchApply_AllFields(t *testing.T) {
	d := &Donation{ID: 1, DonorName: "Alice", DonationType: "cash", Amount: 50}
	name, typ, amount := "Bob", "goods", 10.0
	date := time.Date(2024, 3, 9, 15, 4, 5, 0, time.FixedZone("x", 3600))
	Patch{DonorName: &name, DonationType: &typ, Amount: &amount, Date: &date}.Apply(d)

	require.Equal(t, "Bob", d.DonorName)
	require.Equal(t, "goods", d.DonationType)
	require.Equal(t, 10.0, d.Amount)
	require.Equal(t, "2024-03-09", d.Date.Format(DateLayout))
	require.Equal(t, time.UTC, d.Date.Location())
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("2023-02-29")
	require.Error(t, err)
	_, err = ParseDate("01/02/2024")
	require.Error(t, err)
}

func TestPatchEmpty(t *testing.T) {
	require.True(t, Patch{}.Empty())
}
