// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/Clastech/gripstat/pkg/talon"
	"github.com/gorilla/websocket"
	"golang.org/x/term"
)

// ErrConnectionClosed is returned when reading from a closed WebSocket connection
var ErrConnectionClosed = fmt.Errorf("websocket connection closed")

// WebSocketTransport adapts a WebSocket connection to the talon.Transport
// interface. A serial bridge on the far end forwards binary messages to and
// from the gripper's line.
//
// The half-duplex command cycle needs drain semantics, not a blocking byte
// stream, so a pump goroutine moves incoming messages into a channel that
// ReadAvailable and Flush consume without blocking.
type WebSocketTransport struct {
	conn *websocket.Conn
	recv chan []byte
}

func newWebSocketTransport(conn *websocket.Conn) *WebSocketTransport {
	w := &WebSocketTransport{
		conn: conn,
		recv: make(chan []byte, 32),
	}
	go w.pump()
	return w
}

// pump reads messages until the connection dies, then closes the channel so
// readers observe the disconnect.
func (w *WebSocketTransport) pump() {
	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Read error: %v", err)
			}
			close(w.recv)
			return
		}

		// The bridge only ever forwards binary frames
		if messageType != websocket.BinaryMessage {
			continue
		}

		w.recv <- data
	}
}

func (w *WebSocketTransport) Write(p []byte) (int, error) {
	err := w.conn.WriteMessage(websocket.BinaryMessage, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadAvailable concatenates every message received so far without waiting
// for more.
func (w *WebSocketTransport) ReadAvailable() ([]byte, error) {
	var out []byte
	for {
		select {
		case data, ok := <-w.recv:
			if !ok {
				if len(out) > 0 {
					return out, nil
				}
				return nil, ErrConnectionClosed
			}
			out = append(out, data...)
		default:
			return out, nil
		}
	}
}

// Flush discards any messages still queued.
func (w *WebSocketTransport) Flush() error {
	for {
		select {
		case _, ok := <-w.recv:
			if !ok {
				return nil
			}
		default:
			return nil
		}
	}
}

func (w *WebSocketTransport) Close() error {
	return w.conn.Close()
}

// OpenWebSocketTransport opens a WebSocket connection with HTTP Basic auth
func OpenWebSocketTransport(wsURL, username, password string, skipSSLVerify bool) (talon.Transport, error) {
	// Parse and validate URL
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	// Validate scheme
	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	// Create dialer with timeout
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	// Configure TLS for wss://
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: skipSSLVerify,
		}
	}

	// Build HTTP headers with Basic auth
	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	// Connect
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %v", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %v", err)
	}

	return newWebSocketTransport(conn), nil
}

// GetPassword retrieves password from environment or prompts user
func GetPassword() (string, error) {
	// First check environment variable
	if pw := os.Getenv("GRIPSTAT_PASSWORD"); pw != "" {
		return pw, nil
	}

	// Prompt user for password (hide input)
	fmt.Fprint(os.Stderr, "Password: ")

	// Read password without echo
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr) // newline after password
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr) // newline after password
	return string(passwordBytes), nil
}

// OpenTransport opens either a serial or WebSocket transport based on flags
func OpenTransport() (talon.Transport, string, error) {
	if wsURL != "" {
		// WebSocket mode
		password := ""
		if wsUsername != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		tr, err := OpenWebSocketTransport(wsURL, wsUsername, password, wsNoSSLVerify)
		if err != nil {
			return nil, "", err
		}

		return tr, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if portName != "" {
		// Serial mode
		tr, err := talon.OpenSerial(portName)
		if err != nil {
			return nil, "", err
		}

		return tr, fmt.Sprintf("Serial: %s @ %d baud", tr.Name(), talon.BaudRate), nil
	}

	return nil, "", fmt.Errorf("either --port or --url must be specified")
}

// gripper is the surface the commands share across both driver types.
type gripper interface {
	Dispatcher() *talon.Dispatcher
	Close() error
}

// selectedModel resolves the --model flag.
func selectedModel() (talon.Model, error) {
	if modelName == "" {
		return 0, fmt.Errorf("the --model flag is required (dh3 or rgd)")
	}
	return talon.ParseModel(modelName)
}

// openGripper opens the configured transport and constructs the driver for
// the selected model, which sends the device its initialization command.
func openGripper() (gripper, string, error) {
	model, err := selectedModel()
	if err != nil {
		return nil, "", err
	}

	tr, info, err := OpenTransport()
	if err != nil {
		return nil, "", err
	}

	var g gripper
	switch model {
	case talon.ModelDH3:
		g, err = talon.NewDH3(tr)
	case talon.ModelRGD:
		g, err = talon.NewRGD(tr)
	}
	if err != nil {
		tr.Close()
		return nil, "", err
	}

	return g, info, nil
}
