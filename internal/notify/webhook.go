package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sosintake/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const UserAgent = "sos-intake/worker"

// Notifier relays accepted requests to an outside channel. Delivery is best
// effort and never reported back to the caller.
type Notifier interface {
	Notify(ctx context.Context, submission *types.Submission)
}

type payload struct {
	Text string `json:"text"`
}

type Webhook struct {
	logger        logrus.FieldLogger
	client        *http.Client
	targets       []string
	publicBaseURL string
}

func NewWebhook(logger logrus.FieldLogger, client *http.Client, targets []string, publicBaseURL string) *Webhook {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Webhook{
		logger:        logger,
		client:        client,
		targets:       targets,
		publicBaseURL: publicBaseURL,
	}
}

// ParseTargets splits a comma separated list of webhook URLs, dropping blanks.
func ParseTargets(raw string) []string {
	targets := make([]string, 0)
	for _, target := range strings.Split(raw, ",") {
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		targets = append(targets, target)
	}
	return targets
}

func (w *Webhook) Targets() []string {
	return w.targets
}

// Notify posts one message to every target concurrently. A failing target is
// logged and does not stop delivery to the others.
func (w *Webhook) Notify(ctx context.Context, submission *types.Submission) {
	if len(w.targets) == 0 {
		return
	}

	body, err := json.Marshal(payload{Text: FormatMessage(submission, w.publicBaseURL)})
	if err != nil {
		w.logger.WithError(err).Error("failed to encode webhook payload")
		return
	}

	var g errgroup.Group
	for _, target := range w.targets {
		g.Go(func() error {
			if err := w.deliver(ctx, target, body); err != nil {
				w.logger.WithError(err).
					WithField("submission_id", submission.ID).
					WithField("target", redactTarget(target)).
					Warn("failed to deliver webhook notification")
			}
			return nil
		})
	}

	_ = g.Wait()
}

func (w *Webhook) deliver(ctx context.Context, target string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook responded with status %d: %s", resp.StatusCode, string(respBody))
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// redactTarget drops the path and query of a webhook URL, which usually carry
// the channel secret.
func redactTarget(target string) string {
	scheme, rest, ok := strings.Cut(target, "://")
	if !ok {
		return "invalid-url"
	}
	host, _, _ := strings.Cut(rest, "/")
	return scheme + "://" + host
}
