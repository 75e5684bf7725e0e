package oauth2client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// UnaryClientInterceptor returns a gRPC unary client interceptor that attaches the
// school session's Bearer token to outgoing request metadata.
//
// The token is obtained through EnsureValidToken using the RPC context, so the
// usual caching and single-flight renewal apply. If no valid token can be
// obtained, the RPC is aborted with the AuthenticationError.
//
// Usage:
//
//	conn, err := grpc.NewClient(
//	    "reporting.learnworlds.internal:9090",
//	    grpc.WithUnaryInterceptor(manager.UnaryClientInterceptor()),
//	)
func (m *Manager) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		token, err := m.EnsureValidToken(ctx)
		if err != nil {
			return fmt.Errorf("oauth2client: failed to get token: %w", err)
		}

		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns a gRPC stream client interceptor that attaches
// the school session's Bearer token to outgoing request metadata. If no valid
// token can be obtained, stream creation is aborted with the AuthenticationError.
func (m *Manager) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		token, err := m.EnsureValidToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("oauth2client: failed to get token: %w", err)
		}

		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

		return streamer(ctx, desc, cc, method, opts...)
	}
}
