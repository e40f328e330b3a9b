package queue

import (
	"context"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	heartbeat        = 10 * time.Second
	handshakeTimeout = 30 * time.Second
)

// dial opens a broker connection whose TCP connect and AMQP handshake end
// by ctx's deadline (or handshakeTimeout, whichever is sooner) and abort
// when ctx is cancelled.  The client clears the deadline once the
// handshake completes.
func dial(ctx context.Context, url string) (*amqp.Connection, error) {
	stop := func() bool { return false }
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: heartbeat,
		Locale:    "en_US",
		Dial: func(network, addr string) (net.Conn, error) {
			var d net.Dialer
			nc, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			deadline := time.Now().Add(handshakeTimeout)
			if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
				deadline = dl
			}
			if err := nc.SetDeadline(deadline); err != nil {
				_ = nc.Close()
				return nil, err
			}
			stop = context.AfterFunc(ctx, func() { _ = nc.SetDeadline(time.Now()) })
			return nc, nil
		},
	})
	stop()
	return conn, err
}
