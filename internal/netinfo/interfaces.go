// Package netinfo inspects network interfaces through netlink. The resolver
// stub listener answers on a loopback address, so the verifier and the
// self-check confirm loopback state before trusting DNS results.
package netinfo

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

type Interface struct {
	netlink.Link
}

func GetInterface(interfaceName string) (*Interface, error) {
	link, err := netlink.LinkByName(interfaceName)
	if err != nil {
		return nil, err
	}
	return &Interface{link}, nil
}

func GetInterfaceList() ([]Interface, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}
	var interfaces []Interface
	for _, link := range links {
		interfaces = append(interfaces, Interface{link})
	}
	return interfaces, nil
}

func (iface *Interface) IsUp() bool {
	return iface.Attrs().Flags&net.FlagUp != 0
}

func (iface *Interface) IsLoopback() bool {
	return iface.Attrs().Flags&net.FlagLoopback != 0
}

// LoopbackUp reports whether the loopback interface is up. The stub listener
// lives on 127.0.0.53, so a downed loopback makes every local query fail.
func LoopbackUp() (bool, error) {
	iface, err := GetInterface("lo")
	if err != nil {
		return false, fmt.Errorf("loopback lookup: %w", err)
	}
	return iface.IsUp(), nil
}
