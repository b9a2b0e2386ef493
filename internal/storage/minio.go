package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/donation-inventory/api/internal/donation"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Snapshot is the JSON document written for each export.
type Snapshot struct {
	TakenAt   time.Time        `json:"taken_at"`
	Summary   donation.Summary `json:"summary"`
	Donations []SnapshotRecord `json:"donations"`
}

// SnapshotRecord mirrors the API representation of a donation,
// with the date rendered as YYYY-MM-DD.
type SnapshotRecord struct {
	ID           int64   `json:"id"`
	DonorName    string  `json:"donor_name"`
	DonationType string  `json:"donation_type"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
}

// MinIOStorage writes donation snapshots to an S3-compatible bucket.
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	urlExpiry time.Duration
}

// NewMinIOStorage creates a new MinIO storage client and ensures the bucket exists.
func NewMinIOStorage(ctx context.Context, cfg *MinIOConfig) (*MinIOStorage, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	s := &MinIOStorage{client: mc, bucket: cfg.Bucket, urlExpiry: expiry}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// SnapshotKey names the object for a snapshot taken at t.
func SnapshotKey(t time.Time) string {
	return fmt.Sprintf("snapshots/donations-%s-%s.json", t.UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
}

// EncodeSnapshot renders the snapshot document.
func EncodeSnapshot(t time.Time, list []*donation.Donation, summary donation.Summary) ([]byte, error) {
	records := make([]SnapshotRecord, 0, len(list))
	for _, d := range list {
		records = append(records, SnapshotRecord{
			ID:           d.ID,
			DonorName:    d.DonorName,
			DonationType: d.DonationType,
			Amount:       d.Amount,
			Date:         d.Date.Format(donation.DateLayout),
		})
	}
	return json.Marshal(Snapshot{TakenAt: t.UTC(), Summary: summary, Donations: records})
}

// Save uploads a snapshot and returns its key and a presigned GET URL.
func (s *MinIOStorage) Save(ctx context.Context, list []*donation.Donation, summary donation.Summary) (string, string, error) {
	now := time.Now()
	body, err := EncodeSnapshot(now, list, summary)
	if err != nil {
		return "", "", fmt.Errorf("encode snapshot: %w", err)
	}
	key := SnapshotKey(now)
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", "", fmt.Errorf("upload snapshot: %w", err)
	}
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.urlExpiry, make(url.Values))
	if err != nil {
		return key, "", fmt.Errorf("presign snapshot: %w", err)
	}
	return key, presigned.String(), nil
}
