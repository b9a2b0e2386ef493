package donation

import "time"

// DateLayout is the wire format of a donation date.
const DateLayout = "2006-01-02"

// Donation is the persistent donation record. The same struct is mapped by
// gorm (sql store) and by the mongo driver (document store).
type Donation struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement" bson:"_id"`
	DonorName    string    `json:"donor_name" gorm:"index;not null" bson:"donor_name"`
	DonationType string    `json:"donation_type" gorm:"not null" bson:"donation_type"`
	Amount       float64   `json:"amount" gorm:"not null" bson:"amount"`
	Date         time.Time `json:"date" gorm:"type:date;not null" bson:"date"`
}

// TableName pins the sql table name.
func (Donation) TableName() string {
	return "donations"
}

// Patch carries the fields of a partial update. Nil fields keep the stored value.
type Patch struct {
	DonorName    *string
	DonationType *string
	Amount       *float64
	Date         *time.Time
}

// Apply merges the set fields of p into d.
func (p Patch) Apply(d *Donation) {
	if p.DonorName != nil {
		d.DonorName = *p.DonorName
	}
	if p.DonationType != nil {
		d.DonationType = *p.DonationType
	}
	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.Date != nil {
		d.Date = NormalizeDate(*p.Date)
	}
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.DonorName == nil && p.DonationType == nil && p.Amount == nil && p.Date == nil
}

// NormalizeDate truncates t to midnight UTC of its calendar day.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// Clone returns a copy of d so stores never hand out their internal pointers.
func (d *Donation) Clone() *Donation {
	c := *d
	return &c
}
