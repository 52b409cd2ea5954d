package notify

import (
	"context"
	"fmt"

	"munchly-eats/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/sirupsen/logrus"
)

// Notifier sends the customer a receipt when their order is delivered.
type Notifier interface {
	SendOrderReceipt(ctx context.Context, order *models.Order) error
}

// SESNotifier sends receipts through Amazon SES.
type SESNotifier struct {
	client *sesv2.Client
	sender string
}

func NewSESNotifier(ctx context.Context, sender string) (*SESNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("notify: load AWS config: %w", err)
	}
	return &SESNotifier{
		client: sesv2.NewFromConfig(cfg),
		sender: sender,
	}, nil
}

func (n *SESNotifier) SendOrderReceipt(ctx context.Context, order *models.Order) error {
	if order.CustomerEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Your order %s has been delivered", order.OrderNumber)
	body := fmt.Sprintf(
		"Thanks for ordering from %s!\n\nOrder %s\nSubtotal: $%.2f\nDelivery: $%.2f\nService fee: $%.2f\nTax: $%.2f\nDiscount: -$%.2f\nTip: $%.2f\nTotal charged: $%.2f\n",
		order.RestaurantName, order.OrderNumber,
		order.Subtotal, order.DeliveryFee, order.ServiceFee,
		order.Tax, order.Discount, order.TipAmount, order.Total+order.TipAmount,
	)

	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.sender),
		Destination: &types.Destination{
			ToAddresses: []string{order.CustomerEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("notify: send receipt for order %s: %w", order.ID, err)
	}
	return nil
}

// NoopNotifier is used when SES is not configured; it only logs.
type NoopNotifier struct {
	Log *logrus.Logger
}

func (n *NoopNotifier) SendOrderReceipt(ctx context.Context, order *models.Order) error {
	if n.Log != nil {
		n.Log.WithFields(logrus.Fields{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
		}).Info("order delivered; receipt email skipped (SES not configured)")
	}
	return nil
}
