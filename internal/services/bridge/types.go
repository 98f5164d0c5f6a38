// Package bridge routes named plugin calls carrying JSON options to an analytics.Plugin.
// It is the registration side of the plugin contract: the host sends
// {"method": "...", "options": {...}} and receives a result or an error string.
package bridge

import "encoding/json"

// Method names understood by the bridge.
const (
	MethodInitialize                = "initialize"
	MethodSetUserID                 = "setUserId"
	MethodSetUserProperty           = "setUserProperty"
	MethodGetAppInstanceID          = "getAppInstanceId"
	MethodSetScreenName             = "setScreenName"
	MethodReset                     = "reset"
	MethodLogEvent                  = "logEvent"
	MethodSetCollectionEnabled      = "setCollectionEnabled"
	MethodSetSessionTimeoutDuration = "setSessionTimeoutDuration"
	MethodEnable                    = "enable"
	MethodDisable                   = "disable"
)

// Request is one named call.
type Request struct {
	ID      string          `json:"id,omitempty"`
	Method  string          `json:"method"`
	Options json.RawMessage `json:"options,omitempty"`
}

// Response is the outcome of a Request. Exactly one of Result or Error is meaningful;
// a resolved call with no value has neither.
type Response struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// OK reports whether the call resolved.
func (r Response) OK() bool {
	return r.Error == ""
}

// InitializeResult is returned for a successful initialize call; the handle itself
// cannot cross the bridge.
type InitializeResult struct {
	Initialized bool   `json:"initialized"`
	InstanceID  string `json:"instanceId,omitempty"`
}

// noOptions documents methods that take no options.
type noOptions struct{}
