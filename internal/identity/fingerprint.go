// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package identity

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"os/exec"
	"os/user"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var ErrNoMachineID = errors.New("no machine-unique identifier available")

// HostFingerprinter derives a visitor id from stable host characteristics.
// Zero value fields fall back to the real host.
type HostFingerprinter struct {
	ReadFile func(name string) ([]byte, error)
	Command  func(ctx context.Context, name string, args ...string) ([]byte, error)
	Hostname func() (string, error)
	Username func() string
	GOOS     string
	GOARCH   string
}

func (h HostFingerprinter) Fingerprint(ctx context.Context) (string, error) {
	h = h.withDefaults()

	machine := h.machineID(ctx)
	if machine == "" {
		return "", ErrNoMachineID
	}
	host, _ := h.Hostname()

	parts := []string{machine, strings.ToLower(host), h.GOOS, h.GOARCH, h.Username()}
	hash, err := blake2b.New(16, nil)
	if err != nil {
		return "", err
	}
	hash.Write([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func (h HostFingerprinter) withDefaults() HostFingerprinter {
	if h.ReadFile == nil {
		h.ReadFile = os.ReadFile
	}
	if h.Command == nil {
		h.Command = func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		}
	}
	if h.Hostname == nil {
		h.Hostname = os.Hostname
	}
	if h.Username == nil {
		h.Username = func() string {
			if u, err := user.Current(); err == nil {
				return u.Username
			}
			return ""
		}
	}
	if h.GOOS == "" {
		h.GOOS = runtime.GOOS
	}
	if h.GOARCH == "" {
		h.GOARCH = runtime.GOARCH
	}
	return h
}

var (
	ioregUUID = regexp.MustCompile(`"IOPlatformUUID"\s*=\s*"([^"]+)"`)
	hexish    = regexp.MustCompile(`^[0-9A-Fa-f-]{8,}$`)
)

func (h HostFingerprinter) machineID(ctx context.Context) string {
	switch h.GOOS {
	case "darwin":
		out, err := h.Command(ctx, "ioreg", "-rd1", "-c", "IOPlatformExpertDevice")
		if err == nil {
			if m := ioregUUID.FindSubmatch(out); m != nil {
				return string(m[1])
			}
		}
	case "windows":
		out, err := h.Command(ctx, "wmic", "csproduct", "get", "UUID")
		if err == nil {
			for _, line := range strings.Split(string(out), "\n") {
				line = strings.TrimSpace(line)
				if hexish.MatchString(line) {
					return line
				}
			}
		}
	default:
		for _, f := range []string{"/sys/class/dmi/id/product_uuid", "/etc/machine-id", "/var/lib/dbus/machine-id"} {
			if b, err := h.ReadFile(f); err == nil {
				if v := strings.TrimSpace(string(b)); v != "" {
					return v
				}
			}
		}
	}
	return ""
}
