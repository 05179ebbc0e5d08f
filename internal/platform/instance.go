package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"

	"portfolio/internal/logging"

	"go.uber.org/zap"
)

// ErrAlreadyRunning indicates another showcase window already holds the port.
// The running one has been asked to come to the front.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	requestShow = "show"
	replyOK     = "ok"

	dialTimeout    = 500 * time.Millisecond
	requestTimeout = time.Second
)

// Instance is the running showcase's claim on its localhost port. Later
// launches connect to it and ask it to show its window instead of opening one.
type Instance struct {
	listener net.Listener
	logger   *zap.Logger

	mu      sync.Mutex
	onShow  func()
	serving bool
	wg      sync.WaitGroup
}

// AcquireInstance claims the port derived from appName. If another instance
// holds it, that instance is asked to show its window and ErrAlreadyRunning
// is returned.
func AcquireInstance(appName string, logger *zap.Logger) (*Instance, error) {
	logger = logging.OrNop(logger)
	address := InstanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if notifyErr := requestShowWindow(address); notifyErr != nil {
			logger.Warn("running instance did not answer", zap.String("address", address), zap.Error(notifyErr))
		}
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, address)
	}
	return &Instance{listener: listener, logger: logger}, nil
}

// InstanceAddress is the localhost address appName listens on.
func InstanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", instancePort(appName))
}

// Address returns the bound address.
func (instance *Instance) Address() string {
	if instance == nil {
		return ""
	}
	return instance.listener.Addr().String()
}

// Serve answers show requests from later launches by calling onShow.
// It returns at once; Release stops it.
func (instance *Instance) Serve(onShow func()) {
	instance.mu.Lock()
	defer instance.mu.Unlock()
	instance.onShow = onShow
	if instance.serving {
		return
	}
	instance.serving = true
	instance.wg.Add(1)
	logging.Go(instance.logger, "instance listener", instance.accept)
}

// Release closes the port and waits for the listener to stop. It is safe on
// a nil instance.
func (instance *Instance) Release() error {
	if instance == nil {
		return nil
	}
	err := instance.listener.Close()
	instance.wg.Wait()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (instance *Instance) accept() {
	defer instance.wg.Done()
	for {
		conn, err := instance.listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				instance.logger.Warn("instance listener stopped", zap.Error(err))
			}
			return
		}
		instance.handle(conn)
	}
}

func (instance *Instance) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(requestTimeout))

	request, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		instance.logger.Debug("instance request unreadable", zap.Error(err))
		return
	}
	if strings.TrimSpace(request) != requestShow {
		instance.logger.Debug("instance request ignored", zap.String("request", strings.TrimSpace(request)))
		return
	}

	instance.mu.Lock()
	onShow := instance.onShow
	instance.mu.Unlock()
	if onShow != nil {
		onShow()
	}
	instance.logger.Info("second launch forwarded to this window")
	_, _ = fmt.Fprintln(conn, replyOK)
}

func requestShowWindow(address string) error {
	conn, err := net.DialTimeout("tcp", address, dialTimeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", address, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(requestTimeout))

	if _, err := fmt.Fprintln(conn, requestShow); err != nil {
		return fmt.Errorf("send show request: %w", err)
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("read show reply: %w", err)
	}
	if strings.TrimSpace(reply) != replyOK {
		return fmt.Errorf("unexpected show reply %q", strings.TrimSpace(reply))
	}
	return nil
}

// instancePort maps appName onto a stable port in [20000, 40000).
func instancePort(appName string) int {
	const (
		base = 20000
		span = 20000
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return base + int(hash.Sum32()%span)
}
