package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/samvad-hq/coingecko-harvester/internal/logger"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-456")}, nil
}

func TestSQSPublisherSendsEvent(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "queue", queueURL: "https://sqs.local/queue", client: client, log: logger.NopLogger{}}

	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.local/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["coin_id"]
	if !ok || aws.ToString(attr.StringValue) != "bitcoin" || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("coin_id attribute missing or wrong: %#v", attr)
	}
	if _, ok := client.input.MessageAttributes["watchlist_id"]; !ok {
		t.Fatalf("watchlist_id attribute missing")
	}
	if body := aws.ToString(client.input.MessageBody); !strings.Contains(body, `"watchlist_id":"top"`) {
		t.Fatalf("MessageBody missing watchlist_id: %s", body)
	}
}

func TestSQSPublisherSendError(t *testing.T) {
	client := &fakeSQSClient{err: errors.New("boom")}
	pub := &sqsPublisher{id: "queue", queueURL: "q", client: client, log: logger.NopLogger{}}
	if err := pub.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestSNSPublisherSendsEvent(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{id: "topic", topicARN: "arn:aws:sns:::topic", client: client, log: logger.NopLogger{}}

	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["vs_currency"]
	if !ok || aws.ToString(attr.StringValue) != "usd" {
		t.Fatalf("vs_currency attribute missing or wrong: %#v", attr)
	}
	if msg := aws.ToString(client.input.Message); !strings.Contains(msg, `"id":"bitcoin"`) {
		t.Fatalf("Message missing market: %s", msg)
	}
}

func TestSNSPublisherSendError(t *testing.T) {
	client := &fakeSNSClient{err: errors.New("boom")}
	pub := &snsPublisher{id: "topic", topicARN: "arn", client: client, log: logger.NopLogger{}}
	if err := pub.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestAWSPublishersBuildWithStaticCredentials(t *testing.T) {
	auth := AWSAuth{
		Region:          "us-east-1",
		Endpoint:        "http://localhost:4566",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	}
	ctx := context.Background()

	sqsPub, err := newSQSPublisher(ctx, PublisherConfig{ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "http://localhost:4566/000000000000/q", AWSAuth: auth}}, nil)
	if err != nil {
		t.Fatalf("newSQSPublisher: %v", err)
	}
	if sqsPub.Type() != TypeSQS {
		t.Fatalf("unexpected type %s", sqsPub.Type())
	}

	snsPub, err := newSNSPublisher(ctx, PublisherConfig{ID: "t", Type: TypeSNS, SNS: &SNSPublisherConfig{TopicARN: "arn:aws:sns:us-east-1:000000000000:t", AWSAuth: auth}}, nil)
	if err != nil {
		t.Fatalf("newSNSPublisher: %v", err)
	}
	if snsPub.ID() != "t" {
		t.Fatalf("unexpected id %s", snsPub.ID())
	}

	cfg, err := loadAWSConfig(ctx, auth)
	if err != nil {
		t.Fatalf("loadAWSConfig: %v", err)
	}
	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if creds.AccessKeyID != "test" {
		t.Fatalf("expected static credentials, got %q", creds.AccessKeyID)
	}
}
