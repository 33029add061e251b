// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package ports is a static, read-only lookup from a TCP/UDP port number
// to a human description. It backs the port-description fields on every
// normalized packet (see internal/packet).
package ports

// Descriptor is an immutable record describing a single well-known port.
type Descriptor struct {
	Port        uint16
	Description string
	Protocol    string // "TCP", "UDP", "TCP/UDP", ...
	Status      string // "Official", "Unofficial", ...
}

// Unknown is returned by Find when no entry matches the requested port.
var Unknown = Descriptor{
	Port:        0,
	Description: "Unknown",
	Protocol:    "Unknown",
	Status:      "Unofficial",
}

// registry is a process-global, read-only table of well-known ports.
// Port 0 is legitimately present here ("Reserved") and must win over
// Unknown for a lookup of port 0 — the scan below is ordered so it does.
var registry = [...]Descriptor{
	{Port: 0, Description: "Reserved", Protocol: "UDP", Status: "Official"},
	{Port: 7, Description: "Echo Protocol", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 20, Description: "FTP data transfer", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 21, Description: "FTP control (command)", Protocol: "TCP", Status: "Official"},
	{Port: 22, Description: "Secure Shell (SSH) — used for secure logins, file transfers (scp, sftp) and port forwarding", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 23, Description: "Telnet protocol—unencrypted text communications", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 25, Description: "Simple Mail Transfer Protocol (SMTP)—used for e-mail routing between mail servers", Protocol: "TCP", Status: "Official"},
	{Port: 42, Description: "Windows Internet Name Service/ARPA Host Name Server Protocol", Protocol: "TCP/UDP", Status: "Unofficial/Official"},
	{Port: 43, Description: "WHOIS protocol", Protocol: "TCP", Status: "Official"},
	{Port: 53, Description: "Domain Name System (DNS)", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 80, Description: "Hypertext Transfer Protocol (HTTP)", Protocol: "TCP", Status: "Official"},
	{Port: 109, Description: "Post Office Protocol v2 (POP2)", Protocol: "TCP", Status: "Official"},
	{Port: 110, Description: "Post Office Protocol v3 (POP3)", Protocol: "TCP", Status: "Official"},
	{Port: 115, Description: "Simple File Transfer Protocol (SFTP)", Protocol: "TCP", Status: "Official"},
	{Port: 118, Description: "SQL (Structured Query Language) Services", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 137, Description: "NetBIOS Name Service", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 139, Description: "NetBIOS Session Service", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 143, Description: "Internet Message Access Protocol (IMAP)—management of email messages", Protocol: "TCP", Status: "Official"},
	{Port: 194, Description: "Internet Relay Chat (IRC)", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 220, Description: "Internet Message Access Protocol (IMAP), version 3", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 443, Description: "Hypertext Transfer Protocol over TLS/SSL (HTTPS)", Protocol: "TCP", Status: "Official"},
	{Port: 445, Description: "Microsoft-DS SMB file sharing", Protocol: "TCP", Status: "Official"},
	{Port: 520, Description: "Routing Information Protocol (RIP)", Protocol: "UDP", Status: "Official"},
	{Port: 546, Description: "DHCPv6 client", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 547, Description: "DHCPv6 server", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 548, Description: "Apple Filing Protocol (AFP) over TCP", Protocol: "TCP", Status: "Official"},
	{Port: 989, Description: "FTPS Protocol (data): FTP over TLS/SSL", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 990, Description: "FTPS Protocol (control): FTP over TLS/SSL", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 992, Description: "TELNET protocol over TLS/SSL", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 993, Description: "Internet Message Access Protocol over TLS/SSL (IMAPS)", Protocol: "TCP", Status: "Official"},
	{Port: 995, Description: "Post Office Protocol 3 over TLS/SSL (POP3S)", Protocol: "TCP", Status: "Official"},
	{Port: 1194, Description: "OpenVPN", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 1433, Description: "MSSQL (Microsoft SQL Server database management system) Server", Protocol: "TCP", Status: "Official"},
	{Port: 1434, Description: "MSSQL (Microsoft SQL Server database management system) Monitor", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 1512, Description: "Microsoft Windows Internet Name Service (WINS)", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 1725, Description: "Valve Steam Client", Protocol: "UDP", Status: "Unofficial"},
	{Port: 2083, Description: "CPanel default SSL", Protocol: "TCP", Status: "Unofficial"},
	{Port: 3306, Description: "MySQL database system", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 5228, Description: "Google Play, Android Cloud to Device Messaging Service, Google Cloud Messaging", Protocol: "TCP", Status: "Unofficial"},
	{Port: 5353, Description: "Multicast DNS (mDNS)", Protocol: "UDP", Status: "Official"},
	{Port: 5900, Description: "Virtual Network Computing (VNC) remote desktop protocol", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 5984, Description: "CouchDB database server", Protocol: "TCP/UDP", Status: "Official"},
	{Port: 6660, Description: "Internet Relay Chat (IRC)", Protocol: "TCP", Status: "Unofficial"},
	{Port: 6661, Description: "Internet Relay Chat (IRC)", Protocol: "TCP", Status: "Unofficial"},
	{Port: 6662, Description: "Internet Relay Chat (IRC)", Protocol: "TCP", Status: "Unofficial"},
	{Port: 6663, Description: "Internet Relay Chat (IRC)", Protocol: "TCP", Status: "Unofficial"},
	{Port: 6664, Description: "Internet Relay Chat (IRC)", Protocol: "TCP", Status: "Unofficial"},
	{Port: 6665, Description: "Internet Relay Chat (IRC)", Protocol: "TCP", Status: "Unofficial"},
	{Port: 6666, Description: "Internet Relay Chat (IRC)", Protocol: "TCP", Status: "Unofficial"},
	{Port: 6667, Description: "Internet Relay Chat (IRC)", Protocol: "TCP", Status: "Official"},
	{Port: 6668, Description: "Internet Relay Chat (IRC)", Protocol: "TCP", Status: "Unofficial"},
	{Port: 6669, Description: "Internet Relay Chat (IRC)", Protocol: "TCP", Status: "Unofficial"},
	{Port: 6679, Description: "IRC SSL (Secure Internet Relay Chat)—often used", Protocol: "TCP", Status: "Unofficial"},
	{Port: 6697, Description: "IRC SSL (Secure Internet Relay Chat)—often used", Protocol: "TCP", Status: "Unofficial"},
	{Port: 25565, Description: "MySQL Standard MySQL port", Protocol: "TCP/UDP", Status: "Unofficial"},
	{Port: 27017, Description: "mongoDB server port", Protocol: "TCP/UDP", Status: "Unofficial"},
	{Port: 33434, Description: "traceroute", Protocol: "TCP/UDP", Status: "Official"},
}

// Find returns the descriptor whose Port equals port, or Unknown if none
// matches. On a port number appearing more than once in the table, the
// first match wins.
func Find(port uint16) Descriptor {
	for _, d := range registry {
		if d.Port == port {
			return d
		}
	}
	return Unknown
}
