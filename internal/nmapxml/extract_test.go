package nmapxml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anstrom/nmapreport/internal/errors"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<nmaprun scanner="nmap" args="nmap -sV -oX subnet1.xml 192.168.1.0/24" version="7.94">
  <host>
    <status state="up" reason="arp-response"/>
    <address addr="192.168.1.10" addrtype="ipv4"/>
    <address addr="AA:BB:CC:DD:EE:FF" addrtype="mac"/>
    <hostnames>
      <hostname name="web01.lan" type="PTR"/>
      <hostname name="web01" type="user"/>
    </hostnames>
    <ports>
      <port protocol="tcp" portid="22">
        <state state="open" reason="syn-ack"/>
        <service name="ssh" product="OpenSSH" version="9.2p1" extrainfo="protocol 2.0"/>
      </port>
      <port protocol="tcp" portid="80">
        <state state="open" reason="syn-ack"/>
        <service name="http" product="Apache" version="2.4" extrainfo="(Debian)"/>
      </port>
      <port protocol="udp" portid="53">
        <state state="filtered"/>
        <service name="domain"/>
      </port>
    </ports>
  </host>
  <host>
    <status state="up" reason="echo-reply"/>
    <address addr="192.168.1.20" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="3306">
        <state state="closed" reason="reset"/>
        <service name="mysql"/>
      </port>
    </ports>
  </host>
</nmaprun>`

func TestExtract(t *testing.T) {
	records, err := Extract(strings.NewReader(sampleDocument), "subnet1.xml")
	require.NoError(t, err)
	require.Len(t, records, 4, "one record per port element")

	t.Run("fully populated record", func(t *testing.T) {
		rec := records[0]
		assert.Equal(t, "192.168.1.10", rec.IP)
		assert.Equal(t, "web01.lan", rec.Hostname)
		assert.Equal(t, "22", rec.PortNumber)
		assert.Equal(t, "tcp", rec.Protocol)
		assert.Equal(t, "open", rec.State)
		assert.Equal(t, "ssh", rec.Service)
		assert.Equal(t, "OpenSSH (9.2p1) protocol 2.0", rec.Details)
		assert.Equal(t, "subnet1.xml", rec.SourceFile)
	})

	t.Run("details composition", func(t *testing.T) {
		assert.Equal(t, "Apache (2.4) (Debian)", records[1].Details)
	})

	t.Run("first address and hostname win", func(t *testing.T) {
		for _, rec := range records[:3] {
			assert.Equal(t, "192.168.1.10", rec.IP, "MAC address must not be selected")
			assert.Equal(t, "web01.lan", rec.Hostname)
		}
	})

	t.Run("port without service details", func(t *testing.T) {
		rec := records[3]
		assert.Equal(t, "192.168.1.20", rec.IP)
		assert.Equal(t, SentinelNotAvailable, rec.Hostname, "host without hostnames gets the sentinel")
		assert.Equal(t, "mysql", rec.Service)
		assert.Equal(t, SentinelUnknown, rec.Details)
	})

	t.Run("source stamped on every record", func(t *testing.T) {
		for _, rec := range records {
			assert.Equal(t, "subnet1.xml", rec.SourceFile)
		}
	})
}

func TestExtractSkipsIncompleteHosts(t *testing.T) {
	doc := `<nmaprun>
  <host><status state="down" reason="no-response"/></host>
  <host><address addr="10.0.0.5" addrtype="ipv4"/></host>
  <host><address addr="10.0.0.6" addrtype="ipv4"/><ports/></host>
  <host>
    <address addr="10.0.0.7" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="8080">
        <state state="open"/>
      </port>
    </ports>
  </host>
</nmaprun>`

	records, err := Extract(strings.NewReader(doc), "partial.xml")
	require.NoError(t, err)
	require.Len(t, records, 1, "hosts without address or ports contribute nothing")

	rec := records[0]
	assert.Equal(t, "10.0.0.7", rec.IP)
	assert.Equal(t, "8080", rec.PortNumber)
	assert.Equal(t, SentinelUnknown, rec.Service, "missing service element yields the sentinel")
	assert.Equal(t, SentinelUnknown, rec.Details)
}

func TestExtractSentinels(t *testing.T) {
	doc := `<nmaprun>
  <host>
    <address addr="10.1.1.1" addrtype="ipv4"/>
    <hostnames><hostname type="PTR"/></hostnames>
    <ports>
      <port>
        <state/>
      </port>
    </ports>
  </host>
</nmaprun>`

	records, err := Extract(strings.NewReader(doc), "sparse.xml")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "10.1.1.1", rec.IP)
	assert.Equal(t, SentinelNotAvailable, rec.Hostname, "hostname element without name attribute")
	assert.Equal(t, SentinelUnknown, rec.PortNumber)
	assert.Equal(t, SentinelUnknown, rec.Protocol)
	assert.Equal(t, SentinelUnknown, rec.State, "state element without state attribute")
	assert.Equal(t, SentinelUnknown, rec.Service)
	assert.Equal(t, SentinelUnknown, rec.Details)
}

func TestExtractPreservesPortText(t *testing.T) {
	doc := `<nmaprun>
  <host>
    <address addr="10.2.2.2" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="dynamic-5060">
        <state state="open"/>
      </port>
    </ports>
  </host>
</nmaprun>`

	records, err := Extract(strings.NewReader(doc), "ids.xml")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "dynamic-5060", records[0].PortNumber,
		"non-numeric port identifiers must survive verbatim")
}

func TestExtractAcceptsAnyRootElement(t *testing.T) {
	doc := `<scanreport>
  <host>
    <address addr="172.16.0.9" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="443">
        <state state="open"/>
        <service name="https"/>
      </port>
    </ports>
  </host>
</scanreport>`

	records, err := Extract(strings.NewReader(doc), "other.xml")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https", records[0].Service)
}

func TestExtractEmptySource(t *testing.T) {
	doc := `<nmaprun>
  <host>
    <address addr="10.3.3.3" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="25"><state state="open"/></port>
    </ports>
  </host>
</nmaprun>`

	records, err := Extract(strings.NewReader(doc), "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, SentinelUnknown, records[0].SourceFile,
		"an unnamed source still leaves no field empty")
}

func TestExtractMalformedDocuments(t *testing.T) {
	malformed := []struct {
		name    string
		content string
	}{
		{"empty document", ""},
		{"not xml at all", "plain text content"},
		{"truncated element", "<nmaprun><host>"},
		{"mismatched closing tag", "<nmaprun><host></ports></nmaprun>"},
	}

	for _, tc := range malformed {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Extract(strings.NewReader(tc.content), "broken.xml")
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeParseFailed),
				"malformed XML should map to a parse failure")

			parseErr, ok := err.(*errors.ParseError)
			require.True(t, ok, "error should be a ParseError")
			assert.Equal(t, "broken.xml", parseErr.File)
		})
	}
}

func TestExtractSyntaxErrorLine(t *testing.T) {
	doc := "<nmaprun>\n<host>\n</wrong>\n</nmaprun>"

	_, err := Extract(strings.NewReader(doc), "broken.xml")
	require.Error(t, err)

	parseErr, ok := err.(*errors.ParseError)
	require.True(t, ok)
	assert.Equal(t, 3, parseErr.Line, "syntax errors should carry the document line")
}

func TestExtractFile(t *testing.T) {
	t.Run("reads a document from disk", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "subnet1.xml")
		require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0600))

		records, err := ExtractFile(path)
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, "subnet1.xml", records[0].SourceFile,
			"records carry the base name, not the full path")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.xml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeFileNotFound))
	})

	t.Run("malformed file", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "broken.xml")
		require.NoError(t, os.WriteFile(path, []byte("<nmaprun><host>"), 0600))

		_, err := ExtractFile(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeParseFailed))
	})
}

func TestIsXMLFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"scan.xml", true},
		{"SCAN.XML", true},
		{"path/to/scan.Xml", true},
		{"scan.txt", false},
		{"scan.xml.bak", false},
		{"scan", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsXMLFile(tt.path))
		})
	}
}

func TestComposeDetails(t *testing.T) {
	tests := []struct {
		name     string
		service  PortService
		expected string
	}{
		{
			name:     "all attributes present",
			service:  PortService{Product: "Apache", Version: "2.4", ExtraInfo: "(Debian)"},
			expected: "Apache (2.4) (Debian)",
		},
		{
			name:     "product only",
			service:  PortService{Product: "nginx"},
			expected: "nginx",
		},
		{
			name:     "version without product",
			service:  PortService{Version: "2.4"},
			expected: "(2.4)",
		},
		{
			name:     "extra info only",
			service:  PortService{ExtraInfo: "protocol 2.0"},
			expected: "protocol 2.0",
		},
		{
			name:     "product and extra info",
			service:  PortService{Product: "OpenSSH", ExtraInfo: "Ubuntu Linux"},
			expected: "OpenSSH Ubuntu Linux",
		},
		{
			name:     "nothing present",
			service:  PortService{Name: "ssh"},
			expected: SentinelUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, composeDetails(tt.service))
		})
	}
}

func TestRecordIsOpen(t *testing.T) {
	assert.True(t, Record{State: "open"}.IsOpen())
	assert.False(t, Record{State: "closed"}.IsOpen())
	assert.False(t, Record{State: "OPEN"}.IsOpen(), "state matching is exact, no case folding")
	assert.False(t, Record{State: SentinelUnknown}.IsOpen())
}
