// Package archive uploads point-in-time leaderboard snapshots to S3
// compatible object storage.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/ubuntu-fest/leaderboard-api/internal/config"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

// Uploader is the part of *s3.Client the archiver needs.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Source interface {
	Leaderboard() []domain.College
	Participations() []domain.Participation
}

type Snapshot struct {
	Fest           string                 `json:"fest"`
	TakenAt        time.Time              `json:"taken_at"`
	Leaderboard    []domain.College       `json:"leaderboard"`
	Participations []domain.Participation `json:"participations"`
}

type Archiver struct {
	uploader Uploader
	source   Source
	bucket   string
	prefix   string
	fest     string
	now      func() time.Time
}

func NewArchiver(uploader Uploader, source Source, conf *config.ArchiveConfig) *Archiver {
	return &Archiver{
		uploader: uploader,
		source:   source,
		bucket:   conf.Bucket,
		prefix:   conf.Prefix,
		fest:     conf.FestName,
		now:      time.Now,
	}
}

// NewS3Client builds a client for conf. A custom endpoint (R2, MinIO) switches
// to path-style addressing.
func NewS3Client(ctx context.Context, conf *config.ArchiveConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.Region),
	}
	if conf.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("awsconfig.LoadDefaultConfig -> %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Key is <prefix>/<fest-slug>/<UTC timestamp>.json.
func (a *Archiver) Key(at time.Time) string {
	return path.Join(a.prefix, slug.Make(a.fest), at.UTC().Format("20060102T150405Z")+".json")
}

// Upload writes the current snapshot and returns its object key.
func (a *Archiver) Upload(ctx context.Context) (string, error) {
	snap := Snapshot{
		Fest:           a.fest,
		TakenAt:        a.now().UTC(),
		Leaderboard:    a.source.Leaderboard(),
		Participations: a.source.Participations(),
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("json.Marshal -> %w", err)
	}

	key := a.Key(snap.TakenAt)
	_, err = a.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("a.uploader.PutObject -> %w", err)
	}

	zap.L().Info("archive: snapshot uploaded",
		zap.String("bucket", a.bucket), zap.String("key", key),
		zap.Int("colleges", len(snap.Leaderboard)))

	return key, nil
}
