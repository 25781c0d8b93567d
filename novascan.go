// Package novascan is the top-level facade for the NovaScan client.
package novascan

import (
	"context"
	"time"

	"github.com/tuannm99/novascan/scanclient"
)

type (
	Client  = scanclient.Client
	Scanner = scanclient.Scanner
)

func Dial(addr string, timeout time.Duration) (*Client, error) {
	return scanclient.Dial(addr, timeout)
}

func DialContext(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	return scanclient.DialContext(ctx, addr, timeout)
}
