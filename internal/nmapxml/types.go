package nmapxml

import (
	"encoding/xml"
)

// Sentinel values substituted for absent optional data.
const (
	// SentinelUnknown replaces most absent values.
	SentinelUnknown = "Unknown"
	// SentinelNotAvailable replaces absent hostnames.
	SentinelNotAvailable = "N/A"
)

// Document is the root element of a scan document. The root element name is
// deliberately not pinned so documents from different scanner builds decode;
// only the shape of the host children matters.
type Document struct {
	XMLName xml.Name
	Scanner string `xml:"scanner,attr"`
	Args    string `xml:"args,attr"`
	Version string `xml:"version,attr"`
	Hosts   []Host `xml:"host"`
}

// Host describes one scanned host as it appears in the document.
type Host struct {
	Status    HostStatus `xml:"status"`
	Addresses []Address  `xml:"address"`
	Hostnames []Hostname `xml:"hostnames>hostname"`
	Ports     *Ports     `xml:"ports"`
}

// HostStatus is the up/down verdict the scanner recorded for a host.
type HostStatus struct {
	State  string `xml:"state,attr"`
	Reason string `xml:"reason,attr"`
}

// Address is a network address attached to a host. Hosts commonly carry
// several (an IPv4 address plus a MAC address); the first one in document
// order is used for records.
type Address struct {
	Addr     string `xml:"addr,attr"`
	AddrType string `xml:"addrtype,attr"`
}

// Hostname is one resolved name for a host.
type Hostname struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

// Ports is the container element for a host's port list. It is modeled as a
// pointer on Host so a missing container can be told apart from an empty one.
type Ports struct {
	Ports []Port `xml:"port"`
}

// Port describes one scanned port.
type Port struct {
	Protocol string      `xml:"protocol,attr"`
	PortID   string      `xml:"portid,attr"`
	State    PortState   `xml:"state"`
	Service  PortService `xml:"service"`
}

// PortState is the observed state of a port.
type PortState struct {
	State  string `xml:"state,attr"`
	Reason string `xml:"reason,attr"`
}

// PortService captures what the scanner detected behind a port.
type PortService struct {
	Name      string `xml:"name,attr"`
	Product   string `xml:"product,attr"`
	Version   string `xml:"version,attr"`
	ExtraInfo string `xml:"extrainfo,attr"`
}

// Record is one normalized (host, port) row extracted from a scan document.
// Every field is always populated: absent source data is replaced by a
// sentinel, never left empty.
type Record struct {
	IP         string `json:"ip"`
	Hostname   string `json:"hostname"`
	PortNumber string `json:"port_number"`
	Protocol   string `json:"protocol"`
	State      string `json:"state"`
	Service    string `json:"service"`
	Details    string `json:"details"`
	SourceFile string `json:"source_file"`
}

// IsOpen reports whether the record's state is exactly "open".
func (r Record) IsOpen() bool {
	return r.State == "open"
}
