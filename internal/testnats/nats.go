//go:build integration

// Package testnats starts a NATS server in a container for integration tests.
package testnats

import (
	"context"
	"sync"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	sharedContainer *Container
	sharedOnce      sync.Once
)

type Container struct {
	Container testcontainers.Container
	URL       string
}

// Shared returns a NATS container started once per test binary. Tests that
// use it must not run in parallel on the same subject.
func Shared(t *testing.T) *Container {
	t.Helper()

	sharedOnce.Do(func() {
		ctx := context.Background()

		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "nats:2.10-alpine",
				ExposedPorts: []string{"4222/tcp"},
				WaitingFor:   wait.ForListeningPort("4222/tcp"),
			},
			Started: true,
		})
		require.NoError(t, err)

		host, err := c.Host(ctx)
		require.NoError(t, err)

		port, err := c.MappedPort(ctx, "4222")
		require.NoError(t, err)

		sharedContainer = &Container{
			Container: c,
			URL:       "nats://" + host + ":" + port.Port(),
		}
	})

	require.NotNil(t, sharedContainer, "NATS container failed to start")
	return sharedContainer
}

func (c *Container) Cleanup(t *testing.T) {
	t.Helper()

	if err := c.Container.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate NATS container: %s", err)
	}
}

// Subscribe opens a separate connection and returns a channel fed with every
// message on subject.
func (c *Container) Subscribe(t *testing.T, subject string) <-chan *nats.Msg {
	t.Helper()

	conn, err := nats.Connect(c.URL)
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	received := make(chan *nats.Msg, 16)
	_, err = conn.Subscribe(subject, func(msg *nats.Msg) {
		received <- msg
	})
	require.NoError(t, err)
	require.NoError(t, conn.Flush())

	return received
}
