package client

import (
	"context"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
)

// Query runs a raw go-graphql-client typed query directly against the HTTP
// endpoint, bypassing the request chain entirely, the ad hoc escape hatch
// pkg/mythic/client.go's executeQuery offers alongside its generated
// per-endpoint wrappers.
func (c *Client) Query(ctx context.Context, query interface{}, variables map[string]interface{}) error {
	return c.gqlClient.Query(ctx, query, variables)
}

// Mutate is Query's write-operation counterpart, mirroring
// pkg/mythic/client.go's executeMutation.
func (c *Client) Mutate(ctx context.Context, mutation interface{}, variables map[string]interface{}) error {
	return c.gqlClient.Mutate(ctx, mutation, variables)
}

// SubscribeWS opens (or reuses) the lazily-initialized WebSocket
// subscription client and registers query as a live subscription, invoking
// handler once per message. Returns a subscription id usable with
// UnsubscribeWS, mirroring pkg/mythic/subscriptions.go's
// activeSubscriptions bookkeeping.
func (c *Client) SubscribeWS(query interface{}, variables map[string]interface{}, handler func(message []byte, err error) error) (string, error) {
	sc, err := c.getSubscriptionClient()
	if err != nil {
		return "", graphchain.WrapError("Client.SubscribeWS", err, "failed to initialize subscription client")
	}

	id, err := sc.Subscribe(query, variables, func(message []byte, dataErr error) error {
		return handler(message, dataErr)
	})
	if err != nil {
		return "", graphchain.WrapError("Client.SubscribeWS", err, "failed to register subscription")
	}
	return id, nil
}

// UnsubscribeWS cancels a subscription previously registered via
// SubscribeWS.
func (c *Client) UnsubscribeWS(id string) error {
	c.subMu.Lock()
	sc := c.subClient
	c.subMu.Unlock()
	if sc == nil {
		return nil
	}
	return sc.Unsubscribe(id)
}
