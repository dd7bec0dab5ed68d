package payment

import "context"

type GatewayInterface interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, meta IntentMetadata) (*PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

var _ GatewayInterface = (*Gateway)(nil)
