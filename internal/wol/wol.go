// Package wol builds and dispatches Wake-on-LAN magic packets.
//
// A magic packet is 6 bytes of 0xFF followed by the target MAC repeated
// 16 times, sent as a single UDP datagram to the broadcast address. The
// protocol has no acknowledgment: success means the datagram left this
// host, not that the device woke up.
package wol

import (
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/satsinush/homelab-sub002/internal/domain"
)

const (
	macHexLen  = 12
	packetSize = 6 + 16*6
)

// NormalizeMAC strips ':' and '-' separators and lowercases the input.
// The result is valid iff it is exactly 12 hex characters; anything
// else fails with domain.ErrInvalidMAC.
func NormalizeMAC(input string) (string, error) {
	mac := strings.ToLower(strings.TrimSpace(input))
	mac = strings.ReplaceAll(mac, ":", "")
	mac = strings.ReplaceAll(mac, "-", "")

	if len(mac) != macHexLen {
		return "", domain.ErrInvalidMAC
	}
	for _, c := range mac {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", domain.ErrInvalidMAC
		}
	}

	return mac, nil
}

// BuildMagicPacket assembles the payload for a normalized MAC.
func BuildMagicPacket(macNormalized string) ([]byte, error) {
	hw, err := hex.DecodeString(macNormalized)
	if err != nil || len(hw) != 6 {
		return nil, domain.ErrInvalidMAC
	}

	packet := make([]byte, 0, packetSize)
	for i := 0; i < 6; i++ {
		packet = append(packet, 0xff)
	}
	for i := 0; i < 16; i++ {
		packet = append(packet, hw...)
	}

	return packet, nil
}

type Dispatcher struct {
	broadcastAddr string
	port          int
	timeout       time.Duration

	// dial is a seam for tests; production uses net.Dial.
	dial func(network, address string) (net.Conn, error)
}

func NewDispatcher(broadcastAddr string, port int, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		broadcastAddr: broadcastAddr,
		port:          port,
		timeout:       timeout,
		dial:          net.Dial,
	}
}

// Wake normalizes mac and sends one magic packet. A single attempt, no
// retries: a persistent transport failure should surface, not be masked.
func (d *Dispatcher) Wake(mac string) error {
	normalized, err := NormalizeMAC(mac)
	if err != nil {
		return err
	}

	packet, err := BuildMagicPacket(normalized)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(d.broadcastAddr, strconv.Itoa(d.port))
	conn, err := d.dial("udp", addr)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
	}
	defer conn.Close()

	if d.timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(d.timeout)); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
		}
	}

	if _, err := conn.Write(packet); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
	}

	return nil
}
