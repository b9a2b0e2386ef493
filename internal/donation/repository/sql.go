package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/donation-inventory/api/internal/donation"
	"gorm.io/gorm"
)

// SQLRepo implements the donation store on top of gorm. The caller owns
// the *gorm.DB and picks the dialect (see database.OpenSQL).
type SQLRepo struct {
	db *gorm.DB
}

// NewSQLRepo creates the donations table when it does not exist yet.
func NewSQLRepo(ctx context.Context, db *gorm.DB) (*SQLRepo, error) {
	if err := db.WithContext(ctx).AutoMigrate(&donation.Donation{}); err != nil {
		return nil, fmt.Errorf("migrate donations: %w", err)
	}
	return &SQLRepo{db: db}, nil
}

func (r *SQLRepo) Name() string { return "sql" }

// Session binds a fresh gorm session to ctx. Connections come from the
// driver pool and go back to it after each statement.
func (r *SQLRepo) Session(ctx context.Context) (Session, error) {
	return &sqlSession{db: r.db.Session(&gorm.Session{NewDB: true, Context: ctx})}, nil
}

func (r *SQLRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *SQLRepo) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type sqlSession struct {
	db *gorm.DB
}

func (s *sqlSession) Close() {}

func (s *sqlSession) List(ctx context.Context) ([]*donation.Donation, error) {
	out := []*donation.Donation{}
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	for _, d := range out {
		d.Date = donation.NormalizeDate(d.Date)
	}
	return out, nil
}

func (s *sqlSession) Get(ctx context.Context, id int64) (*donation.Donation, error) {
	var d donation.Donation
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get donation %d: %w", id, err)
	}
	d.Date = donation.NormalizeDate(d.Date)
	return &d, nil
}

func (s *sqlSession) Create(ctx context.Context, d *donation.Donation) error {
	d.ID = 0
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

func (s *sqlSession) Save(ctx context.Context, d *donation.Donation) error {
	res := s.db.WithContext(ctx).Model(&donation.Donation{}).Where("id = ?", d.ID).Updates(map[string]interface{}{
		"donor_name":    d.DonorName,
		"donation_type": d.DonationType,
		"amount":        d.Amount,
		"date":          d.Date,
	})
	if res.Error != nil {
		return fmt.Errorf("save donation %d: %w", d.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqlSession) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&donation.Donation{})
	if res.Error != nil {
		return fmt.Errorf("delete donation %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
