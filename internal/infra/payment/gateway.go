package payment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StatusSucceeded is the provider's terminal success status. The intent
// status is the sole authority on whether a payment went through.
const StatusSucceeded = "succeeded"

// PaymentIntent is the slice of the provider's intent record this service
// cares about.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// IntentMetadata travels to the provider for auditing and reconciliation.
// It is never used for trust decisions.
type IntentMetadata struct {
	UserID    string
	UserEmail string
	ItemCount int
}

type Config struct {
	SecretKey      string
	PublishableKey string
}

func ConfigFromEnv() Config {
	return Config{
		SecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		PublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
	}
}

// Gateway wraps the Stripe client. Keys are injected here rather than set as
// process-wide state.
type Gateway struct {
	sc             *client.API
	publishableKey string
}

func NewGateway(cfg Config) *Gateway {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	return &Gateway{sc: sc, publishableKey: cfg.PublishableKey}
}

func (g *Gateway) CreateIntent(ctx context.Context, amountMinor int64, currency string, meta IntentMetadata) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.AddMetadata("user_id", meta.UserID)
	params.AddMetadata("user_email", meta.UserEmail)
	params.AddMetadata("items", strconv.Itoa(meta.ItemCount))

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, translateErr(err)
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (g *Gateway) RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.sc.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, translateErr(err)
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

// PublishableKey is the client-side key; safe to hand out.
func (g *Gateway) PublishableKey() string {
	return g.publishableKey
}

// translateErr strips the SDK error down to its user-presentable message so
// request ids and raw payloads never leak past this package.
func translateErr(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf("stripe: %s", stripeErr.Msg)
	}
	return fmt.Errorf("stripe: %w", err)
}
