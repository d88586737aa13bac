package delivery

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"optiwatt/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

const defaultURLExpiry = time.Hour

type publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type getPresigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AWSConfig selects the bucket and topic used by AWS.
type AWSConfig struct {
	Region    string
	Bucket    string
	TopicARN  string
	URLExpiry time.Duration
}

// AWS emails reports through an SNS topic and exports them to S3.
type AWS struct {
	sns     publisher
	s3      objectPutter
	presign getPresigner

	bucket   string
	topicARN string
	expiry   time.Duration
	now      func() time.Time
}

// NewAWS loads the default credential chain for cfg.Region.
func NewAWS(ctx context.Context, cfg AWSConfig) (*AWS, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	s3c := s3.NewFromConfig(awsCfg)
	return newAWS(sns.NewFromConfig(awsCfg), s3c, s3.NewPresignClient(s3c), cfg), nil
}

func newAWS(p publisher, o objectPutter, g getPresigner, cfg AWSConfig) *AWS {
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = defaultURLExpiry
	}
	return &AWS{
		sns:      p,
		s3:       o,
		presign:  g,
		bucket:   cfg.Bucket,
		topicARN: cfg.TopicARN,
		expiry:   expiry,
		now:      time.Now,
	}
}

func subject(r models.Report) string {
	if r.Kind == models.ReportExpert {
		return "OptiWatt expert audit request"
	}
	return "OptiWatt energy performance report"
}

func (a *AWS) Email(ctx context.Context, r models.Report) (models.Delivery, error) {
	_, err := a.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(a.topicARN),
		Subject:  aws.String(subject(r)),
		Message:  aws.String(r.Content),
	})
	if err != nil {
		return models.Delivery{}, fmt.Errorf("failed to publish report: %w", err)
	}
	return models.Delivery{Channel: models.ChannelEmail, Message: EmailSentText}, nil
}

// Export uploads the report as Markdown and returns a presigned download URL.
func (a *AWS) Export(ctx context.Context, r models.Report) (models.Delivery, error) {
	key := fmt.Sprintf("reports/%s-%s.md", r.Kind, a.now().UTC().Format("20060102T150405Z"))

	_, err := a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader([]byte(r.Content)),
		ContentType: aws.String("text/markdown; charset=utf-8"),
		Metadata: map[string]string{
			"generated-at": r.GeneratedAt.Format(time.RFC3339),
			"kind":         r.Kind,
		},
	})
	if err != nil {
		return models.Delivery{}, fmt.Errorf("failed to upload to S3: %w", err)
	}

	req, err := a.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = a.expiry
	})
	if err != nil {
		return models.Delivery{}, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return models.Delivery{Channel: models.ChannelPDF, Message: PDFReadyText, Location: req.URL}, nil
}
