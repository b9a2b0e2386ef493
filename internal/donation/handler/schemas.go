package handler

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/donation-inventory/api/internal/donation"
)

// Amount accepts a JSON number or a string holding one ("50.5").
type Amount float64

// amountParseError reports a string amount that is not a number.
type amountParseError struct {
	input string
}

func (e *amountParseError) Error() string {
	return "unable to parse string as a number: " + strconv.Quote(e.input)
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return &amountParseError{input: s}
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// CreateRequest is the body of POST /donations. Pointer fields let the
// validator tell a missing field apart from a zero value.
type CreateRequest struct {
	DonorName    *string  `json:"donor_name" binding:"required"`
	DonationType *string  `json:"donation_type" binding:"required"`
	Amount       *Amount  `json:"amount" binding:"required,gt=0"`
	Date         *string  `json:"date" binding:"required,datetime=2006-01-02"`
}

// UpdateRequest is the body of PUT /donations/:id. Absent or null fields
// are left untouched.
type UpdateRequest struct {
	DonorName    *string  `json:"donor_name"`
	DonationType *string  `json:"donation_type"`
	Amount       *Amount  `json:"amount" binding:"omitempty,gt=0"`
	Date         *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// Response is the wire shape of a stored donation.
type Response struct {
	ID           int64   `json:"id"`
	DonorName    string  `json:"donor_name"`
	DonationType string  `json:"donation_type"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
}

func (r CreateRequest) toDonation() (*donation.Donation, error) {
	date, err := donation.ParseDate(*r.Date)
	if err != nil {
		return nil, err
	}
	return &donation.Donation{
		DonorName:    *r.DonorName,
		DonationType: *r.DonationType,
		Amount:       float64(*r.Amount),
		Date:         date,
	}, nil
}

func (r UpdateRequest) toPatch() (donation.Patch, error) {
	p := donation.Patch{
		DonorName:    r.DonorName,
		DonationType: r.DonationType,
	}
	if r.Amount != nil {
		amount := float64(*r.Amount)
		p.Amount = &amount
	}
	if r.Date != nil {
		date, err := donation.ParseDate(*r.Date)
		if err != nil {
			return donation.Patch{}, err
		}
		p.Date = &date
	}
	return p, nil
}

func toResponse(d *donation.Donation) Response {
	return Response{
		ID:           d.ID,
		DonorName:    d.DonorName,
		DonationType: d.DonationType,
		Amount:       d.Amount,
		Date:         d.Date.Format(donation.DateLayout),
	}
}

func toResponses(list []*donation.Donation) []Response {
	out := make([]Response, 0, len(list))
	for _, d := range list {
		out = append(out, toResponse(d))
	}
	return out
}
