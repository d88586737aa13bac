// Package delivery sends finished reports by email or exports them for download.
package delivery

import (
	"context"
	"time"

	"optiwatt/internal/models"
)

const (
	EmailSentText = "Report has been securely sent to your registered email address."
	PDFReadyText  = "PDF generation complete. Your download will start shortly."
)

// Simulated stands in for a mail and export backend. It only waits.
type Simulated struct {
	delay time.Duration
}

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{delay: delay}
}

func (s *Simulated) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Simulated) Email(ctx context.Context, r models.Report) (models.Delivery, error) {
	if err := s.wait(ctx); err != nil {
		return models.Delivery{}, err
	}
	return models.Delivery{Channel: models.ChannelEmail, Message: EmailSentText}, nil
}

func (s *Simulated) Export(ctx context.Context, r models.Report) (models.Delivery, error) {
	if err := s.wait(ctx); err != nil {
		return models.Delivery{}, err
	}
	return models.Delivery{Channel: models.ChannelPDF, Message: PDFReadyText}, nil
}
