package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/diillson/aws-idle-audit-go/internal/domain/repository"
	"github.com/diillson/aws-idle-audit-go/internal/shared/logger"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
)

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSRepositoryImpl publica relatórios em um tópico SNS.
type SNSRepositoryImpl struct {
	client   snsAPI
	topicArn string
	log      *logger.Logger
}

// NewSNSRepository cria um notificador SNS para o tópico informado.
func NewSNSRepository(cfg aws.Config, topicArn string, log *logger.Logger) repository.NotificationRepository {
	return newSNSRepository(sns.NewFromConfig(cfg), topicArn, log)
}

func newSNSRepository(client snsAPI, topicArn string, log *logger.Logger) *SNSRepositoryImpl {
	if log == nil {
		log = logger.Nop()
	}
	return &SNSRepositoryImpl{
		client:   client,
		topicArn: topicArn,
		log:      log.With("topic_arn", topicArn),
	}
}

// Publish sends message to the topic and returns the provider message id.
func (r *SNSRepositoryImpl) Publish(ctx context.Context, subject, message string) (string, error) {
	if r.topicArn == "" {
		return "", types.ErrMissingTopic
	}

	output, err := r.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(r.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return "", fmt.Errorf("publishing to %s: %w", r.topicArn, err)
	}
	if output == nil {
		return "", errors.New("empty response from SNS publish")
	}

	messageID := aws.ToString(output.MessageId)
	r.log.WithFields(map[string]interface{}{
		"message_id": messageID,
		"bytes":      len(message),
	}).Info("report published")
	return messageID, nil
}
