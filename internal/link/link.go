// Package link builds validated URLs for relay, camera, and callback endpoints.
package link

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

// AllowedProtocols is the fixed allow-set for every protocol argument accepted
// on the command line. Anything else is rejected before side effects occur.
var AllowedProtocols = []string{"http", "https", "rtsp", "rtmp", "srt", "udp", "tcp"}

var (
	hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	pathPattern     = regexp.MustCompile(`^[A-Za-z0-9/_-]*$`)
)

// ValidProtocol reports whether p is a member of AllowedProtocols.
func ValidProtocol(p string) bool {
	for _, allowed := range AllowedProtocols {
		if p == allowed {
			return true
		}
	}
	return false
}

// ValidPath reports whether p contains only characters safe to embed in a
// relay URL. The empty path is valid.
func ValidPath(p string) bool {
	return pathPattern.MatchString(p)
}

// ValidHost reports whether h is an IP literal or a plain hostname.
func ValidHost(h string) bool {
	if net.ParseIP(h) != nil {
		return true
	}
	return hostnamePattern.MatchString(h)
}

// Link is a validated protocol/host/port/path tuple. Port 0 means no port
// segment is emitted.
type Link struct {
	Protocol string
	Host     string
	Port     int
	Path     string
}

// New validates each component and returns the assembled Link.
func New(protocol, host string, port int, path string) (*Link, error) {
	if !ValidProtocol(protocol) {
		return nil, fmt.Errorf("protocol %q not in allowed set %v", protocol, AllowedProtocols)
	}
	if !ValidHost(host) {
		return nil, fmt.Errorf("invalid host %q", host)
	}
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("port %d out of range", port)
	}
	if !ValidPath(path) {
		return nil, fmt.Errorf("path %q contains disallowed characters", path)
	}
	return &Link{Protocol: protocol, Host: host, Port: port, Path: path}, nil
}

// String returns protocol://host[:port][/path]. IPv6 hosts are bracketed.
func (l *Link) String() string {
	var b strings.Builder
	b.WriteString(l.Protocol)
	b.WriteString("://")
	b.WriteString(l.hostPart())
	if l.Port > 0 {
		fmt.Fprintf(&b, ":%d", l.Port)
	}
	if l.Path != "" {
		b.WriteString("/")
		b.WriteString(strings.TrimPrefix(l.Path, "/"))
	}
	return b.String()
}

// Root returns protocol://host[:port]/ regardless of path.
func (l *Link) Root() string {
	if l.Port > 0 {
		return fmt.Sprintf("%s://%s:%d/", l.Protocol, l.hostPart(), l.Port)
	}
	return fmt.Sprintf("%s://%s/", l.Protocol, l.hostPart())
}

func (l *Link) hostPart() string {
	if strings.Contains(l.Host, ":") && !strings.HasPrefix(l.Host, "[") {
		return "[" + l.Host + "]"
	}
	return l.Host
}
