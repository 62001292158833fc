package telephony

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const crlf = "\r\n"

// Field is one "Key: Value" line of a manager action.
type Field struct {
	Key   string
	Value string
}

// Action is an ordered AMI command group. Order matters on the wire.
type Action []Field

// Bytes renders the action as CRLF-terminated lines followed by the blank
// line that ends a command group.
func (a Action) Bytes() []byte {
	var buf bytes.Buffer
	for _, f := range a {
		buf.WriteString(f.Key)
		buf.WriteString(": ")
		buf.WriteString(f.Value)
		buf.WriteString(crlf)
	}
	buf.WriteString(crlf)
	return buf.Bytes()
}

// CheckLines returns an error naming the first field whose key or value
// contains a CR or LF. Such a field would end its line early and start a
// new header or command group on the switch.
func (a Action) CheckLines() error {
	for _, f := range a {
		if strings.ContainsAny(f.Key, "\r\n") || strings.ContainsAny(f.Value, "\r\n") {
			return fmt.Errorf("telephony: line break in %s field", f.Key)
		}
	}
	return nil
}

// Get returns the first value for key.
func (a Action) Get(key string) (string, bool) {
	for _, f := range a {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func LoginAction(login, secret string) Action {
	return Action{
		{"Action", "login"},
		{"Events", "off"},
		{"Username", login},
		{"Secret", secret},
	}
}

// OriginateAction asks the switch to ring the caller's channel and, once
// answered, connect it to dialString in the endpoint's dialplan context.
func OriginateAction(caller CallerContext, endpoint SwitchEndpoint, dialString, callerID string) Action {
	a := Action{
		{"Action", "originate"},
		{"Channel", caller.Channel()},
		{"Timeout", strconv.Itoa(endpoint.AnswerTimeoutSeconds * 1000)},
		{"CallerId", Transliterate(callerID)},
		{"Exten", dialString},
		{"Context", endpoint.DialContext},
	}
	if endpoint.AlertHeader != "" && caller.ChannelType == ChannelSIP {
		a = append(a, Field{"Variable", "SIPAddHeader=Alert-Info: " + endpoint.AlertHeader})
	}
	return append(a, Field{"Priority", strconv.Itoa(endpoint.ExtensionPriority)})
}

func LogoffAction() Action {
	return Action{{"Action", "Logoff"}}
}
