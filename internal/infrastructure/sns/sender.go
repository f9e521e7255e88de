package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/infrastructure/awsconfig"
)

// Publisher is the subset of the SNS client used here.
type Publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func NewClient(ctx context.Context, cfg *config.Config) (*sns.Client, error) {
	awsCfg, err := awsconfig.Load(ctx, cfg, cfg.SNSRegion)
	if err != nil {
		return nil, err
	}
	clientOpts := []func(*sns.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}
	return sns.NewFromConfig(awsCfg, clientOpts...), nil
}

// OTPDeliverer publishes registration codes to a topic. A subscriber
// (email or SMS fan-out) is responsible for the last mile.
type OTPDeliverer struct {
	client   Publisher
	topicARN string
}

func NewOTPDeliverer(client Publisher, topicARN string) *OTPDeliverer {
	return &OTPDeliverer{client: client, topicARN: topicARN}
}

func (d *OTPDeliverer) Deliver(ctx context.Context, email, code string) error {
	_, err := d.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(d.topicARN),
		Subject:  aws.String("Verification code"),
		Message:  aws.String(fmt.Sprintf("Your verification code is %s", code)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"email": {DataType: aws.String("String"), StringValue: aws.String(email)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish otp: %w", err)
	}
	return nil
}
