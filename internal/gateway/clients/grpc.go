package clients

import (
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	"restaurant-pos/proto/posv1"
)

type GRPCClients struct {
	POS     *posv1.POSServiceClient
	posConn *grpc.ClientConn
}

func NewGRPCClients(posAddr string, logger *zap.Logger) (*GRPCClients, error) {
	posConn, err := grpc.NewClient(posAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("pos service connection failed: %w", err)
	}

	clients := &GRPCClients{
		POS:     posv1.NewPOSServiceClient(posConn),
		posConn: posConn,
	}

	logger.Info("connected to POS service", zap.String("addr", posAddr))
	return clients, nil
}

// IsPOSServiceHealthy reports whether the connection is usable. A connection
// that has not dialed yet counts as healthy since grpc connects lazily.
func (c *GRPCClients) IsPOSServiceHealthy() bool {
	if c == nil || c.posConn == nil {
		return false
	}
	switch c.posConn.GetState() {
	case connectivity.TransientFailure, connectivity.Shutdown:
		return false
	default:
		return true
	}
}

func (c *GRPCClients) Close() {
	if c != nil && c.posConn != nil {
		c.posConn.Close()
	}
}
