package payment

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultFallbackDelay = 2 * time.Second
	FallbackMessage      = "If UPI app didn't open, please use the QR code to complete payment."
)

// Opener hands a deep link to whatever handles the scheme on the host.
type Opener interface {
	Open(ctx context.Context, uri string) error
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(message string)
}

// Dispatcher fires intents at an Opener and schedules a single fallback notice.
// Dispatch returns nothing: the outcome of the payment is never observable.
type Dispatcher struct {
	opener    Opener
	notifier  Notifier
	delay     time.Duration
	afterFunc func(time.Duration, func()) *time.Timer
	logger    *zap.Logger
}

func NewDispatcher(opener Opener, notifier Notifier, delay time.Duration, logger *zap.Logger) *Dispatcher {
	if delay <= 0 {
		delay = DefaultFallbackDelay
	}
	return &Dispatcher{
		opener:    opener,
		notifier:  notifier,
		delay:     delay,
		afterFunc: time.AfterFunc,
		logger:    logger.Named("payment_dispatcher"),
	}
}

// Dispatch opens the intent and arms the fallback notice. Open errors are logged only.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent) {
	if err := d.opener.Open(ctx, intent.URI); err != nil {
		d.logger.Warn("Payment handler did not accept intent",
			zap.Error(err),
			zap.String("note", intent.Note),
		)
	}
	d.afterFunc(d.delay, func() {
		d.notifier.Notify(FallbackMessage)
	})
}

// LogOpener records the hand-off. It serves hosts with no local payment app.
type LogOpener struct {
	Logger *zap.Logger
}

func (o LogOpener) Open(_ context.Context, uri string) error {
	o.Logger.Info("Payment intent handed off", zap.String("uri", uri))
	return nil
}

// LogNotifier writes notices to the log.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(message string) {
	n.Logger.Info(message)
}
