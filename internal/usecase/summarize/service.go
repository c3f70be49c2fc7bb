package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"clip-summarize/internal/apperror"
	"clip-summarize/internal/content"
	"clip-summarize/internal/domain/entity"
	"clip-summarize/internal/i18n"
	"clip-summarize/internal/observability/logging"
	"clip-summarize/internal/observability/tracing"
	"clip-summarize/internal/repository"
	"clip-summarize/internal/utils/text"
)

// Summarizer is an interface for AI-powered text summarization.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// SummarizerFactory builds the summarizer matching the current settings.
type SummarizerFactory func(settings entity.Settings) (Summarizer, error)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Recorder receives run metrics.
type Recorder interface {
	RecordRun(success bool, duration time.Duration)
	RecordError(code apperror.Code)
	RecordWatchEvent(outcome string)
}

// Watch event outcomes passed to Recorder.RecordWatchEvent.
const (
	OutcomeSummarized = "summarized"
	OutcomeSkipped    = "skipped"
	OutcomeFailed     = "failed"
)

// Options holds the tunables of a Service. Zero values select the defaults.
type Options struct {
	// MaxContentRunes rejects longer documents with ContentTooLong. Default: 100000
	MaxContentRunes int
	// SettleDelay is waited before a newly created note is read.
	SettleDelay     time.Duration
	Recorder        Recorder
	Tracer          trace.Tracer
}

// DefaultMaxContentRunes is used when Options.MaxContentRunes is zero.
const DefaultMaxContentRunes = 100000

// Service summarizes notes and writes the summary back into them.
// Requests are handled one at a time by the caller; Service itself keeps no
// state between runs.
type Service struct {
	documents     repository.DocumentRepository
	settings      repository.SettingsRepository
	newSummarizer SummarizerFactory
	notifier      Notifier
	recorder      Recorder
	tracer        trace.Tracer

	maxContentRunes int
	settleDelay     time.Duration
}

// NewService creates a summarize Service.
//
// notifier may be nil, in which case notices are only logged.
//
// Example:
//
//	factory := summarizer.NewFactory(cfg)
//	svc := summarize.NewService(store, settingsStore, func(s entity.Settings) (summarize.Summarizer, error) {
//	    return factory.For(s)
//	}, notifier, summarize.Options{SettleDelay: time.Second, Recorder: metrics.Recorder{}})
func NewService(
	documents repository.DocumentRepository,
	settings repository.SettingsRepository,
	newSummarizer SummarizerFactory,
	notifier Notifier,
	opts Options,
) *Service {
	if opts.MaxContentRunes <= 0 {
		opts.MaxContentRunes = DefaultMaxContentRunes
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Tracer == nil {
		opts.Tracer = tracing.GetTracer()
	}

	return &Service{
		documents:       documents,
		settings:        settings,
		newSummarizer:   newSummarizer,
		notifier:        notifier,
		recorder:        opts.Recorder,
		tracer:          opts.Tracer,
		maxContentRunes: opts.MaxContentRunes,
		settleDelay:     opts.SettleDelay,
	}
}

// SummarizeFile generates a summary for the note at path and inserts it
// according to the configured position. Every failure is reported to the
// notifier and returned as an *apperror.Error.
func (s *Service) SummarizeFile(ctx context.Context, path string) error {
	start := time.Now()
	ctx, _ = logging.WithOperationID(ctx)
	ctx, span := tracing.StartSummarize(ctx, s.tracer, path)
	defer span.End()

	logger := logging.FromContext(ctx).With(slog.String("path", path))
	ctx = logging.WithLogger(ctx, logger)

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return s.fail(ctx, span, start, apperror.New(apperror.UnknownError, settings.Language, err, "load settings"))
	}
	lang := settings.Language
	msgs := i18n.T(lang)

	if strings.TrimSpace(path) == "" {
		return s.fail(ctx, span, start, apperror.New(apperror.NoActiveFile, lang, nil, ""))
	}

	if !settings.HasAPIKey() {
		return s.fail(ctx, span, start, apperror.New(apperror.APIKeyNotSet, lang, nil, string(settings.Provider)))
	}

	sum, err := s.newSummarizer(settings)
	if err != nil || sum == nil {
		if err == nil {
			err = errors.New("summarizer factory returned nil")
		}
		return s.fail(ctx, span, start, apperror.New(apperror.ClientNotInitialized, lang, err, string(settings.Provider)))
	}

	model := settings.Provider.ModelFor(settings.Model)
	span.SetAttributes(
		tracing.AttrProvider.String(string(settings.Provider)),
		tracing.AttrModel.String(model),
	)

	s.notify(ctx, msgs.Notices.GeneratingSummary)

	doc, err := s.documents.Read(ctx, path)
	if err != nil {
		return s.fail(ctx, span, start, apperror.New(apperror.FileReadError, lang, err, path))
	}

	if text.IsBlank(doc.Text) {
		return s.fail(ctx, span, start, apperror.New(apperror.ContentEmpty, lang, nil, ""))
	}
	if n := text.CountRunes(doc.Text); n > s.maxContentRunes {
		details := fmt.Sprintf("%d > %d", n, s.maxContentRunes)
		return s.fail(ctx, span, start, apperror.New(apperror.ContentTooLong, lang, nil, details))
	}

	if content.HasSummary(doc.Text) {
		return s.fail(ctx, span, start, apperror.New(apperror.FileAlreadySummarized, lang, nil, ""))
	}

	logger.InfoContext(ctx, "requesting summary",
		slog.String("provider", string(settings.Provider)),
		slog.String("model", model),
		slog.Int("runes", text.CountRunes(doc.Text)))

	summary, err := sum.Summarize(ctx, doc.Text)
	if err == nil && text.IsBlank(summary) {
		err = entity.ErrEmptySummary
	}
	if err != nil {
		return s.fail(ctx, span, start, classifySummarizeError(err, lang))
	}
	span.SetAttributes(tracing.AttrSummaryRunes.Int(text.CountRunes(summary)))

	updated := &entity.Document{
		Path: doc.Path,
		Text: content.Insert(doc.Text, summary, settings.SummaryPosition),
	}
	if err := s.documents.Write(ctx, updated); err != nil {
		return s.fail(ctx, span, start, apperror.New(apperror.FileWriteError, lang, err, path))
	}

	duration := time.Since(start)
	s.recorder.RecordRun(true, duration)
	logger.InfoContext(ctx, "summary inserted",
		slog.String("position", string(settings.SummaryPosition)),
		slog.Duration("duration", duration))

	s.notify(ctx, msgs.Notices.SummaryGenerated)
	return nil
}

// HandleNewFile is the hook for notes created in the vault. It does nothing
// unless auto-summarize is on and the note lies under the watch folder, then
// waits for the settle delay and runs SummarizeFile.
func (s *Service) HandleNewFile(ctx context.Context, path string) error {
	logger := logging.FromContext(ctx).With(slog.String("path", path))

	settings, err := s.settings.Load(ctx)
	if err != nil {
		s.recorder.RecordWatchEvent(OutcomeFailed)
		return fmt.Errorf("load settings: %w", err)
	}

	if !settings.AutoSummarize {
		logger.DebugContext(ctx, "auto summarize disabled, skipping new note")
		s.recorder.RecordWatchEvent(OutcomeSkipped)
		return nil
	}

	if settings.WatchFolder != "" {
		rel, err := s.documents.Rel(path)
		if err != nil || !strings.HasPrefix(rel, settings.WatchFolder) {
			logger.DebugContext(ctx, "new note outside watch folder, skipping",
				slog.String("watch_folder", settings.WatchFolder))
			s.recorder.RecordWatchEvent(OutcomeSkipped)
			return nil
		}
	}

	if err := s.settle(ctx); err != nil {
		s.recorder.RecordWatchEvent(OutcomeSkipped)
		return err
	}

	if err := s.SummarizeFile(ctx, path); err != nil {
		if apperror.HasCode(err, apperror.FileAlreadySummarized) {
			s.recorder.RecordWatchEvent(OutcomeSkipped)
		} else {
			s.recorder.RecordWatchEvent(OutcomeFailed)
		}
		return err
	}

	s.recorder.RecordWatchEvent(OutcomeSummarized)
	return nil
}

// settle waits for the settle delay or until ctx is done.
func (s *Service) settle(ctx context.Context) error {
	if s.settleDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.settleDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// fail reports appErr through every channel and returns it.
func (s *Service) fail(ctx context.Context, span trace.Span, start time.Time, appErr *apperror.Error) error {
	logging.FromContext(ctx).ErrorContext(ctx, "summarize failed",
		slog.String("code", string(appErr.Code)),
		slog.String("debug", appErr.DebugInfo()))

	s.recorder.RecordError(appErr.Code)
	s.recorder.RecordRun(false, time.Since(start))
	tracing.RecordFailure(span, string(appErr.Code), appErr)

	s.notify(ctx, appErr.DisplayMessage())
	return appErr
}

// notify delivers message; delivery failures are logged and otherwise ignored.
func (s *Service) notify(ctx context.Context, message string) {
	if s.notifier == nil {
		logging.FromContext(ctx).InfoContext(ctx, "notice", slog.String("message", message))
		return
	}
	if err := s.notifier.Notify(ctx, message); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "notification failed",
			slog.String("message", message),
			slog.Any("error", err))
	}
}

// classifySummarizeError maps a completion failure to an application error.
func classifySummarizeError(err error, lang i18n.Language) *apperror.Error {
	switch {
	case errors.Is(err, entity.ErrEmptySummary):
		return apperror.New(apperror.APIResponseEmpty, lang, err, "")
	case errors.Is(err, entity.ErrUnexpectedSummary):
		return apperror.New(apperror.SummaryGenerationFailed, lang, err, "")
	default:
		code, details := apperror.ClassifyError(err, lang)
		return apperror.New(code, lang, err, details)
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordRun(bool, time.Duration) {}
func (nopRecorder) RecordError(apperror.Code) {}
func (nopRecorder) RecordWatchEvent(string) {}
