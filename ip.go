package rowbinary

import (
	"fmt"
	"net"
)

// IPv4 holds an address in dotted-quad byte order, e.g. {116,106,34,242}
// for "116.106.34.242". The wire layout is the reverse of this.
type IPv4 [4]byte

func (ip IPv4) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", ip[0], ip[1], ip[2], ip[3])
}

// IPv4FromNetIP converts a net.IP, failing with InvalidArgumentError on
// an address-family mismatch.
func IPv4FromNetIP(ip net.IP) (IPv4, error) {
	v4 := ip.To4()
	if v4 == nil {
		return IPv4{}, &InvalidArgumentError{Msg: fmt.Sprintf("%s is not an IPv4 address", ip)}
	}
	return IPv4{v4[0], v4[1], v4[2], v4[3]}, nil
}

// IPv6 holds an address in network byte order.
type IPv6 [16]byte

func (ip IPv6) String() string {
	return net.IP(ip[:]).String()
}

// IPv6FromNetIP converts a net.IP, failing with InvalidArgumentError on
// an address-family mismatch: a 4-byte or IPv4-mapped address is
// rejected rather than silently widened.
func IPv6FromNetIP(ip net.IP) (IPv6, error) {
	if ip.To4() != nil {
		return IPv6{}, &InvalidArgumentError{Msg: fmt.Sprintf("%s is an IPv4 address, not IPv6", ip)}
	}
	v6 := ip.To16()
	if v6 == nil {
		return IPv6{}, &InvalidArgumentError{Msg: fmt.Sprintf("%s is not a valid IP address", ip)}
	}
	var out IPv6
	copy(out[:], v6)
	return out, nil
}
