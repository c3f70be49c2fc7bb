package main

import (
	"log/slog"

	"clip-summarize/internal/domain/entity"
	"clip-summarize/internal/infra/notifier"
	"clip-summarize/internal/infra/summarizer"
	"clip-summarize/internal/infra/vault"
	"clip-summarize/internal/observability/metrics"
	"clip-summarize/internal/usecase/summarize"
)

// components is the wired object graph shared by summarize and watch.
type components struct {
	service *summarize.Service
	store   *vault.Store
	factory *summarizer.Factory
}

func (a *app) wire() (*components, error) {
	store, err := vault.NewStore(a.cfg.VaultDir, a.logger)
	if err != nil {
		return nil, err
	}

	sumCfg := summarizer.DefaultConfig()
	sumCfg.Timeout = a.cfg.Summarizer.RequestTimeout
	factory := summarizer.NewFactory(sumCfg).
		WithBaseURL(entity.ProviderOpenAI, a.cfg.Summarizer.OpenAIBaseURL).
		WithBaseURL(entity.ProviderAnthropic, a.cfg.Summarizer.AnthropicBaseURL)

	service := summarize.NewService(
		store,
		a.settings,
		func(s entity.Settings) (summarize.Summarizer, error) {
			return factory.For(s)
		},
		a.notifier(),
		summarize.Options{
			MaxContentRunes: a.cfg.MaxContentRunes,
			SettleDelay:     a.cfg.SettleDelay,
			Recorder:        metrics.Recorder{},
		},
	)

	return &components{service: service, store: store, factory: factory}, nil
}

// notifier writes notices to the command output, unless --quiet is set, and
// mirrors them to any configured webhook.
func (a *app) notifier() notifier.Notifier {
	var console notifier.Notifier = notifier.NewConsoleNotifier(a.out)
	if a.quiet {
		console = notifier.NewNoOpNotifier()
	}
	sinks := []notifier.Notifier{console}

	if url := a.cfg.Notify.DiscordWebhookURL; url != "" {
		sinks = append(sinks, notifier.NewDiscordNotifier(notifier.DiscordConfig{
			WebhookURL: url,
			Username:   "clip-summarize",
			Timeout:    a.cfg.Notify.Timeout,
		}))
		a.logger.Info("Discord notifications enabled")
	}
	if url := a.cfg.Notify.SlackWebhookURL; url != "" {
		sinks = append(sinks, notifier.NewSlackNotifier(notifier.SlackConfig{
			WebhookURL: url,
			Timeout:    a.cfg.Notify.Timeout,
		}))
		a.logger.Info("Slack notifications enabled")
	}

	multi := notifier.NewMultiNotifier(sinks...)
	a.logger.Debug("notifier initialized", slog.Int("sinks", multi.Len()))
	return multi
}
