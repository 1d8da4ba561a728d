package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// PingHealthChecker reports healthy while the underlying store answers
// pings, typically a database pool.
type PingHealthChecker struct {
	ping func(ctx context.Context) error
}

func NewPingHealthChecker(ping func(ctx context.Context) error) *PingHealthChecker {
	return &PingHealthChecker{ping: ping}
}

func (hc *PingHealthChecker) Healthy(ctx context.Context) bool {
	return hc.ping(ctx) == nil
}
