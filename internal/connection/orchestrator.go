// Package connection owns the tunnel lifecycle of one process.
//
// An Orchestrator holds the single interface slot and moves it through
// Disconnected, Connecting, Connected(handle) and Disconnecting. The
// in-flight states are the mutual-exclusion token: a second mutation while
// one is running fails with wireguard.ErrConflictingOperation instead of
// racing two subprocesses. The OS stays the source of truth; Status never
// transitions and Reconcile adopts what the OS reports.
package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plexsphere/tunnelctl/internal/platform"
	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// Orchestrator drives a platform.Platform through the tunnel lifecycle.
// Create one per process with New and call Close before exiting.
type Orchestrator struct {
	platform platform.Platform
	cfg      Config
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	handle     string
	configName string

	inflight sync.WaitGroup
}

// New returns an Orchestrator in the Disconnected state.
func New(p platform.Platform, cfg Config, logger *slog.Logger) *Orchestrator {
	cfg.ApplyDefaults()
	return &Orchestrator{
		platform: p,
		cfg:      cfg,
		logger:   logger.With("component", "connection"),
		state:    StateDisconnected,
	}
}

// State returns the current state and, when connected or disconnecting,
// the interface handle.
func (o *Orchestrator) State() (State, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.handle
}

// Apply brings up a tunnel for cfg and returns its interface handle.
// It fails with wireguard.ErrConflictingOperation unless the orchestrator
// is Disconnected. Platform errors are returned unchanged and leave the
// orchestrator Disconnected.
func (o *Orchestrator) Apply(ctx context.Context, cfg wireguard.TunnelConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("connection: apply: %w", err)
	}

	o.mu.Lock()
	if o.state != StateDisconnected {
		err := o.conflict("apply")
		o.mu.Unlock()
		return "", err
	}
	o.state = StateConnecting
	o.mu.Unlock()

	log := o.logger.With("op_id", uuid.NewString())
	log.Info("connecting", "config_name", cfg.Name)

	return await(ctx, o, o.cfg.ApplyTimeout, func(opCtx context.Context) (string, error) {
		iface, err := o.platform.ApplyConfig(opCtx, cfg)

		o.mu.Lock()
		defer o.mu.Unlock()
		if err != nil {
			o.state = StateDisconnected
			o.handle, o.configName = "", ""
			log.Warn("connect failed", "config_name", cfg.Name, "error", err)
			return "", err
		}
		o.state = StateConnected
		o.handle, o.configName = iface, cfg.Name
		log.Info("connected", "interface", iface, "config_name", cfg.Name)
		return iface, nil
	})
}

// Disconnect brings the current tunnel down. It is a no-op when already
// Disconnected and fails with wireguard.ErrConflictingOperation while
// another operation is in flight. On a platform error the orchestrator
// stays Connected, except for wireguard.ErrInterfaceNotFound: the tunnel is
// already gone, so the state becomes Disconnected and the error is returned.
func (o *Orchestrator) Disconnect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("connection: disconnect: %w", err)
	}

	o.mu.Lock()
	switch {
	case o.state == StateDisconnected:
		o.mu.Unlock()
		return nil
	case o.state.busy():
		err := o.conflict("disconnect")
		o.mu.Unlock()
		return err
	}
	o.state = StateDisconnecting
	handle := o.handle
	o.mu.Unlock()

	log := o.logger.With("op_id", uuid.NewString())
	log.Info("disconnecting", "interface", handle)

	_, err := await(ctx, o, o.cfg.DisconnectTimeout, func(opCtx context.Context) (struct{}, error) {
		err := o.platform.Disconnect(opCtx, handle)

		o.mu.Lock()
		defer o.mu.Unlock()
		switch {
		case err == nil:
			o.state = StateDisconnected
			o.handle, o.configName = "", ""
			log.Info("disconnected", "interface", handle)
		case errors.Is(err, wireguard.ErrInterfaceNotFound):
			o.state = StateDisconnected
			o.handle, o.configName = "", ""
			log.Info("interface already gone", "interface", handle)
		default:
			o.state = StateConnected
			log.Warn("disconnect failed", "interface", handle, "error", err)
		}
		return struct{}{}, err
	})
	return err
}

// Status queries the OS. It never transitions state. While a tunnel is
// believed up its handle is queried, and the known config name is reported.
func (o *Orchestrator) Status(ctx context.Context) (wireguard.ConnectionStatus, error) {
	if err := ctx.Err(); err != nil {
		return wireguard.Disconnected(), fmt.Errorf("connection: status: %w", err)
	}

	o.mu.Lock()
	handle, configName := o.handle, o.configName
	o.mu.Unlock()

	st, err := await(ctx, o, o.cfg.StatusTimeout, func(opCtx context.Context) (wireguard.ConnectionStatus, error) {
		return o.platform.Status(opCtx, handle)
	})
	if err != nil {
		return wireguard.Disconnected(), err
	}
	if st.Connected && st.ActiveInterface == handle && configName != "" {
		st.ActiveConfigName = configName
	}
	return st, nil
}

// Reconcile replaces the believed state with the one the OS reports and
// returns that status. It fails with wireguard.ErrConflictingOperation while
// an operation is in flight.
func (o *Orchestrator) Reconcile(ctx context.Context) (wireguard.ConnectionStatus, error) {
	if err := ctx.Err(); err != nil {
		return wireguard.Disconnected(), fmt.Errorf("connection: reconcile: %w", err)
	}

	o.mu.Lock()
	if o.state.busy() {
		err := o.conflict("reconcile")
		o.mu.Unlock()
		return wireguard.Disconnected(), err
	}
	o.mu.Unlock()

	st, err := await(ctx, o, o.cfg.StatusTimeout, func(opCtx context.Context) (wireguard.ConnectionStatus, error) {
		return o.platform.Status(opCtx, "")
	})
	if err != nil {
		return wireguard.Disconnected(), err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.busy() {
		return st, o.conflict("reconcile")
	}
	prev, prevHandle := o.state, o.handle
	if st.Connected {
		if o.handle != st.ActiveInterface {
			o.configName = st.ActiveConfigName
		}
		o.state, o.handle = StateConnected, st.ActiveInterface
		if o.configName != "" {
			st.ActiveConfigName = o.configName
		}
	} else {
		o.state, o.handle, o.configName = StateDisconnected, "", ""
	}
	if prev != o.state || prevHandle != o.handle {
		o.logger.Info("state reconciled",
			"from", prev.String(),
			"to", o.state.String(),
			"interface", o.handle,
		)
	}
	return st, nil
}

// Close waits for in-flight operations to settle or for ctx to end.
func (o *Orchestrator) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("connection: close: %w", ctx.Err())
	}
}

// conflict must be called with o.mu held.
func (o *Orchestrator) conflict(op string) error {
	detail := op + " while " + o.state.String()
	if o.handle != "" {
		detail += " (" + o.handle + ")"
	}
	return wireguard.ConflictingOperation(detail)
}

type outcome[T any] struct {
	val T
	err error
}

// await runs fn on its own goroutine and waits up to timeout for it. fn gets
// a context detached from ctx, so an abandoned operation still completes and
// settles the state; Close waits for it.
func await[T any](ctx context.Context, o *Orchestrator, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	results := make(chan outcome[T], 1)
	opCtx := context.WithoutCancel(ctx)

	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		v, err := fn(opCtx)
		results <- outcome[T]{val: v, err: err}
	}()

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case r := <-results:
		return r.val, r.err
	case <-waitCtx.Done():
		var zero T
		return zero, fmt.Errorf("connection: %w", waitCtx.Err())
	}
}
