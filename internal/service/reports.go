package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"optiwatt/internal/genai"
	"optiwatt/internal/logger"
	"optiwatt/internal/models"
)

const (
	ReportFailureText = "Failed to generate AI report. Please check your connection."

	ExpertReportText = "Expert analysis has been requested. Our certified energy engineers will review your block usage and provide a manual audit within 24 hours. You will receive an encrypted link via email."

	DeliveryFailureText = "Report delivery failed. Please try again."

	defaultExpertDelay = 2 * time.Second
)

var (
	ErrNoReport       = errors.New("no report has been generated yet")
	ErrUnknownChannel = errors.New("unknown delivery channel: want email or pdf")
	ErrDeliveryFailed = errors.New(DeliveryFailureText)
)

// ReportGateway asks the text endpoint for a Markdown performance report.
type ReportGateway struct {
	gen TextGenerator
	log *logger.Logger
}

func NewReportGateway(gen TextGenerator, log *logger.Logger) *ReportGateway {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportGateway{gen: gen, log: log}
}

func reportPrompt(appliances []models.Appliance) string {
	units := make([]string, 0, len(appliances))
	for _, a := range appliances {
		units = append(units, fmt.Sprintf("%s usage: %skWh", a.Name, formatKWh(a.UsageKWh)))
	}
	return "Generate a comprehensive energy performance report summary for a building with these units: " +
		strings.Join(units, ", ") +
		". Include an executive summary, a breakdown of top consumers, and a 30-day outlook. Format as Markdown."
}

// Report returns Markdown text, or ReportFailureText when the call fails or
// comes back empty.
func (g *ReportGateway) Report(ctx context.Context, appliances []models.Appliance) string {
	text, err := g.gen.Generate(ctx, reportPrompt(appliances), genai.Options{})
	if err != nil {
		g.log.Errorw("report_request_failed", "err", err)
		return ReportFailureText
	}
	if strings.TrimSpace(text) == "" {
		g.log.Errorw("report_empty")
		return ReportFailureText
	}
	return text
}

// ReportDeliverer sends or exports a finished report.
type ReportDeliverer interface {
	Email(ctx context.Context, r models.Report) (models.Delivery, error)
	Export(ctx context.Context, r models.Report) (models.Delivery, error)
}

// ReportDesk keeps the latest report. Whichever generation finishes last wins.
type ReportDesk struct {
	mu     sync.RWMutex
	latest *models.Report

	gateway     *ReportGateway
	appliances  *ApplianceRegistry
	deliverer   ReportDeliverer
	expertDelay time.Duration
	log         *logger.Logger
	now         func() time.Time
}

func NewReportDesk(gateway *ReportGateway, appliances *ApplianceRegistry, deliverer ReportDeliverer, expertDelay time.Duration, log *logger.Logger) *ReportDesk {
	if expertDelay < 0 {
		expertDelay = defaultExpertDelay
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReportDesk{
		gateway:     gateway,
		appliances:  appliances,
		deliverer:   deliverer,
		expertDelay: expertDelay,
		log:         log,
		now:         time.Now,
	}
}

func (d *ReportDesk) store(kind, content string) models.Report {
	r := models.Report{Kind: kind, Content: content, GeneratedAt: d.now().UTC()}

	d.mu.Lock()
	d.latest = &r
	d.mu.Unlock()
	return r
}

func (d *ReportDesk) GenerateAI(ctx context.Context) models.Report {
	return d.store(models.ReportAI, d.gateway.Report(ctx, d.appliances.List()))
}

// RequestExpert simulates the manual audit hand-off.
func (d *ReportDesk) RequestExpert(ctx context.Context) (models.Report, error) {
	if err := sleepCtx(ctx, d.expertDelay); err != nil {
		return models.Report{}, err
	}
	return d.store(models.ReportExpert, ExpertReportText), nil
}

func (d *ReportDesk) Latest() (models.Report, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.latest == nil {
		return models.Report{}, ErrNoReport
	}
	return *d.latest, nil
}

func (d *ReportDesk) Deliver(ctx context.Context, channel string) (models.Delivery, error) {
	channel = strings.ToLower(strings.TrimSpace(channel))
	if channel != models.ChannelEmail && channel != models.ChannelPDF {
		return models.Delivery{}, ErrUnknownChannel
	}

	r, err := d.Latest()
	if err != nil {
		return models.Delivery{}, err
	}

	var out models.Delivery
	if channel == models.ChannelEmail {
		out, err = d.deliverer.Email(ctx, r)
	} else {
		out, err = d.deliverer.Export(ctx, r)
	}
	if err != nil {
		d.log.Errorw("report_delivery_failed", "channel", channel, "err", err)
		return models.Delivery{}, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return out, nil
}

// sleepCtx waits d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
