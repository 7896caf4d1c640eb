// Package sqsgath sends session events as JSON messages to an SQS queue.
package sqsgath

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// New loads the default AWS configuration and returns a gatherer sending to
// queueUrl. An empty region defers to the environment.
func New(ctx context.Context, sessionUuid string, queueUrl string, region string, logger *slog.Logger) (*sqsGatherer, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &sqsGatherer{
		client:      sqs.NewFromConfig(cfg),
		queueUrl:    queueUrl,
		sessionUuid: sessionUuid,
		logger:      logger,
	}, nil
}
