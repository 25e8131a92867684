package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrCircuitOpen é retornado quando o circuit breaker está aberto
var ErrCircuitOpen = errors.New("circuit breaker aberto")

// CircuitState representa os estados possíveis do circuit breaker
type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// StateRecorder é notificado a cada mudança de estado
type StateRecorder interface {
	CircuitBreakerStateChanged(name string, open bool)
}

// Config contém a configuração do circuit breaker
type Config struct {
	Name        string
	MaxFailures int           // falhas consecutivas até abrir o circuito
	Interval    time.Duration // janela após a qual falhas antigas são esquecidas
	Timeout     time.Duration // tempo aberto antes de tentar half-open
	MaxRequests int           // requisições de teste permitidas em half-open
}

// CircuitBreaker corta chamadas a uma dependência que está falhando
type CircuitBreaker struct {
	name        string
	maxFailures int
	interval    time.Duration
	timeout     time.Duration
	maxRequests int

	mu               sync.Mutex
	state            CircuitState
	failures         int
	lastFailure      time.Time
	nextAttempt      time.Time
	halfOpenRequests int

	recorder StateRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// New cria um circuit breaker; recorder pode ser nil
func New(cfg Config, recorder StateRecorder, logger *zap.Logger) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 1
	}

	return &CircuitBreaker{
		name:        cfg.Name,
		maxFailures: cfg.MaxFailures,
		interval:    cfg.Interval,
		timeout:     cfg.Timeout,
		maxRequests: cfg.MaxRequests,
		state:       StateClosed,
		recorder:    recorder,
		logger:      logger,
		now:         time.Now,
	}
}

// Execute executa fn se o circuito permitir e registra o resultado
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if !cb.allow() {
		return ErrCircuitOpen
	}

	err := fn(ctx)
	// cancelamento do chamador não conta como falha da dependência
	cb.record(err == nil || errors.Is(err, context.Canceled))
	return err
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if cb.now().Before(cb.nextAttempt) {
			return false
		}
		cb.setState(StateHalfOpen)
		cb.halfOpenRequests = 1
		return true
	case StateHalfOpen:
		if cb.halfOpenRequests >= cb.maxRequests {
			return false
		}
		cb.halfOpenRequests++
		return true
	}
	return false
}

func (cb *CircuitBreaker) record(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()

	switch cb.state {
	case StateClosed:
		if success {
			cb.failures = 0
			return
		}
		if !cb.lastFailure.IsZero() && now.Sub(cb.lastFailure) > cb.interval {
			cb.failures = 0
		}
		cb.failures++
		cb.lastFailure = now
		cb.logger.Debug("circuit breaker registrou falha",
			zap.String("name", cb.name),
			zap.Int("failures", cb.failures),
			zap.Int("max_failures", cb.maxFailures))

		if cb.failures >= cb.maxFailures {
			cb.open(now)
		}
	case StateHalfOpen:
		if success {
			cb.failures = 0
			cb.setState(StateClosed)
		} else {
			cb.open(now)
		}
	}
}

func (cb *CircuitBreaker) open(now time.Time) {
	cb.nextAttempt = now.Add(cb.timeout)
	cb.setState(StateOpen)
}

// setState exige cb.mu travado
func (cb *CircuitBreaker) setState(state CircuitState) {
	if cb.state == state {
		return
	}
	previous := cb.state
	cb.state = state

	if cb.recorder != nil && (state == StateOpen || previous == StateOpen) {
		cb.recorder.CircuitBreakerStateChanged(cb.name, state == StateOpen)
	}

	cb.logger.Info("circuit breaker mudou de estado",
		zap.String("name", cb.name),
		zap.Stringer("from", previous),
		zap.Stringer("to", state))
}

// State retorna o estado atual
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset fecha o circuito e zera as falhas
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.setState(StateClosed)
}
