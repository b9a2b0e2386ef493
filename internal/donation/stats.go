package donation

// TypeStats is the per-type breakdown of a Summary.
type TypeStats struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// Summary aggregates the whole donation set.
type Summary struct {
	TotalDonations int                  `json:"total_donations"`
	TotalAmount    float64              `json:"total_amount"`
	DonationTypes  map[string]TypeStats `json:"donation_types"`
}

// Summarize groups donations by type and totals counts and amounts.
// Amounts are summed in input order with plain float64 addition.
func Summarize(donations []*Donation) Summary {
	s := Summary{DonationTypes: map[string]TypeStats{}}
	for _, d := range donations {
		s.TotalDonations++
		s.TotalAmount += d.Amount
		ts := s.DonationTypes[d.DonationType]
		ts.Count++
		ts.TotalAmount += d.Amount
		s.DonationTypes[d.DonationType] = ts
	}
	return s
}
