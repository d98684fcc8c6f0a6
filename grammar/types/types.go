// Package types implements the built-in data-type validators: the
// recognizer callbacks wired to the registered-data-type Words (BOOLEAN,
// INTEGER, IPADDR, ...) the Grammar Parser exposes to the DSL by their
// uppercase names.
//
// Grounded on the teacher's lexical scanning style (grammar/lexical and
// ucd/parser.go both hand-scan byte ranges rather than using regexp), and
// on the original recli source's own admission that its IPV6ADDR check is
// "broken" — this module keeps that same loose hex-and-colon check rather
// than inventing stricter behavior the upstream maintainers never asked
// for.
package types

import (
	"strconv"
	"strings"

	"github.com/go-recli/recli/grammar/node"
)

// All is every built-in data type, in registration order.
var All = []*node.Validator{
	Boolean,
	Hostname,
	Integer,
	IPAddr,
	IPv4Addr,
	IPv6Addr,
	IPPrefix,
	MACAddr,
	String,
	DQString,
	SQString,
	BQString,
}

var Boolean = &node.Validator{Name: "BOOLEAN", Check: checkBoolean}
var Integer = &node.Validator{Name: "INTEGER", Check: checkInteger}
var IPv4Addr = &node.Validator{Name: "IPV4ADDR", Check: checkIPv4Addr}
var IPv6Addr = &node.Validator{Name: "IPV6ADDR", Check: checkIPv6Addr}
var IPAddr = &node.Validator{Name: "IPADDR", Check: checkIPAddr}
var IPPrefix = &node.Validator{Name: "IPPREFIX", Check: checkIPPrefix}
var MACAddr = &node.Validator{Name: "MACADDR", Check: checkMACAddr}
var Hostname = &node.Validator{Name: "HOSTNAME", Check: checkHostname}
var String = &node.Validator{Name: "STRING", Check: checkString}
var DQString = &node.Validator{Name: "DQSTRING", Check: checkDQString}
var SQString = &node.Validator{Name: "SQSTRING", Check: checkSQString}
var BQString = &node.Validator{Name: "BQSTRING", Check: checkBQString}

func checkBoolean(s string) (bool, string) {
	switch s {
	case "on", "off", "0", "1":
		return true, ""
	}
	return false, "Invalid syntax for boolean value"
}

func checkInteger(s string) (bool, string) {
	if s == "" {
		return false, "Invalid syntax for integer"
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i = 1
	}
	if i == len(s) {
		return false, "Invalid syntax for integer"
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false, "Invalid syntax for integer"
		}
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return false, "Invalid syntax for integer"
	}
	return true, ""
}

func checkIPv4Addr(s string) (bool, string) {
	if !isIPv4(s) {
		return false, "Invalid syntax for IP address"
	}
	return true, ""
}

func isIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if !isOctet(p) {
			return false
		}
	}
	return true
}

func isOctet(s string) bool {
	if s == "" || len(s) > 3 {
		return false
	}
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n <= 255
}

// checkIPv6Addr is a deliberately loose check: hex digits and colons only,
// no structural validation of group count or "::" compression. The
// original source's own comment calls this "broken"; this module
// reproduces that behavior rather than silently fixing it.
func checkIPv6Addr(s string) (bool, string) {
	if s == "" {
		return false, "Invalid syntax for IPv6 address"
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		case c == ':':
		default:
			return false, "Invalid syntax for IPv6 address"
		}
	}
	return true, ""
}

func checkIPAddr(s string) (bool, string) {
	if ok, _ := checkIPv4Addr(s); ok {
		return true, ""
	}
	if ok, _ := checkIPv6Addr(s); ok {
		return true, ""
	}
	return false, "Invalid syntax for IP address"
}

func checkIPPrefix(s string) (bool, string) {
	slash := strings.IndexByte(s, '/')
	if slash < 0 {
		return false, "Invalid syntax for IP prefix"
	}
	addr, lenStr := s[:slash], s[slash+1:]
	if ok, _ := checkIPv4Addr(addr); !ok {
		return false, "Invalid syntax for IP prefix"
	}
	n, err := strconv.Atoi(lenStr)
	if err != nil || n < 0 || n > 32 {
		return false, "Invalid syntax for IP prefix"
	}
	return true, ""
}

func checkMACAddr(s string) (bool, string) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return false, "Invalid syntax for MAC address"
	}
	for _, p := range parts {
		if len(p) == 0 || len(p) > 2 {
			return false, "Invalid syntax for MAC address"
		}
		n, err := strconv.ParseInt(p, 16, 16)
		if err != nil || n < 0 || n > 255 {
			return false, "Invalid syntax for MAC address"
		}
	}
	return true, ""
}

func checkHostname(s string) (bool, string) {
	if s == "." {
		return true, ""
	}
	if s == "" || len(s) > 253 {
		return false, "Invalid syntax for hostname"
	}
	for _, label := range strings.Split(s, ".") {
		if !isHostnameLabel(label) {
			return false, "Invalid syntax for hostname"
		}
	}
	return true, ""
}

func isHostnameLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}

func checkString(s string) (bool, string) {
	if s == "" {
		return true, ""
	}
	switch s[0] {
	case '"', '\'', '`':
		return checkQuoted(s, s[0])
	}
	return true, ""
}

func checkDQString(s string) (bool, string) {
	if len(s) == 0 || s[0] != '"' {
		return false, "Invalid syntax for double-quoted string"
	}
	return checkQuoted(s, '"')
}

func checkSQString(s string) (bool, string) {
	if len(s) == 0 || s[0] != '\'' {
		return false, "Invalid syntax for single-quoted string"
	}
	return checkQuoted(s, '\'')
}

func checkBQString(s string) (bool, string) {
	if len(s) == 0 || s[0] != '`' {
		return false, "Invalid syntax for back-quoted string"
	}
	return checkQuoted(s, '`')
}

// checkQuoted validates that s opens and closes with quote, with balanced,
// escape-aware contents.
func checkQuoted(s string, quote byte) (bool, string) {
	if len(s) < 2 || s[0] != quote {
		return false, "unterminated quoted string"
	}
	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return false, "incomplete escape sequence"
			}
			i += 2
		case quote:
			if i == len(s)-1 {
				return true, ""
			}
			return false, "trailing characters after closing quote"
		default:
			i++
		}
	}
	return false, "unterminated quoted string"
}
