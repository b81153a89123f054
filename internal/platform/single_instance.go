// Package platform holds the OS-facing helpers: the per-user config
// directory and the single-instance guard for the desktop app.
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
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateMessage = "activate"

// Instance holds the single-instance lock: a listener on a localhost port
// derived from the app name. A second launch connects to it and asks the
// running instance to come forward instead of starting its own window.
type Instance struct {
	listener net.Listener
	address  string
	once     sync.Once
	done     chan struct{}
}

// AcquireInstance takes the lock for appName or returns ErrAlreadyRunning.
func AcquireInstance(appName string) (*Instance, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &Instance{listener: listener, address: address, done: make(chan struct{})}, nil
}

// Serve calls onActivate for every activation request until Release.
func (instance *Instance) Serve(onActivate func()) {
	for {
		conn, err := instance.listener.Accept()
		if err != nil {
			select {
			case <-instance.done:
				return
			default:
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return
		}
		go handleActivation(conn, onActivate)
	}
}

func handleActivation(conn net.Conn, onActivate func()) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}
	if strings.TrimSpace(line) == activateMessage && onActivate != nil {
		onActivate()
	}
}

// Release frees the lock.
func (instance *Instance) Release() error {
	if instance == nil || instance.listener == nil {
		return nil
	}
	var err error
	instance.once.Do(func() {
		close(instance.done)
		err = instance.listener.Close()
	})
	return err
}

// Address returns the bound address.
func (instance *Instance) Address() string {
	if instance == nil {
		return ""
	}
	return instance.address
}

// Activate asks the running instance of appName to show itself.
func Activate(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), time.Second)
	if err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	defer conn.Close()
	if _, err := fmt.Fprintln(conn, activateMessage); err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	return nil
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
