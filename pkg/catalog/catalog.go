// Package catalog is the closed registry of workflow node types.
//
// Every node type is identified by a string key (e.g. "http-handler") and
// maps to display metadata (category, label, icon) and a port-type schema
// used for advisory connection checks. Unknown keys never fail: they resolve
// to an explicit default entry so that workflows containing node types from
// a newer build still load and lay out.
package catalog

// Category buckets node types by their role in a durable workflow.
type Category string

// The fixed set of categories. Entry nodes start executions; everything else
// runs inside one.
const (
	CategoryEntry   Category = "entry"
	CategoryDurable Category = "durable"
	CategoryState   Category = "state"
	CategoryFlow    Category = "flow"
	CategoryTiming  Category = "timing"
	CategorySignal  Category = "signal"
)

// Port types used by the advisory compatibility check. TypeAny matches
// everything and is the default for node types without a declared schema.
const (
	TypeAny     = "any"
	TypeEvent   = "event"
	TypePayload = "payload"
	TypeSignal  = "signal"
)

// Entry describes one node type.
type Entry struct {
	Category Category
	Label    string
	Icon     string

	// InputType and OutputType declare the port types for the advisory
	// compatibility check. Empty means undeclared (treated as TypeAny).
	InputType  string
	OutputType string
}

// Default is the fallback entry for unknown node types.
var Default = Entry{
	Category: CategoryDurable,
	Label:    "Unknown Node",
	Icon:     "help-circle",
}

// entries is the closed node-type table. Entry-category types produce events;
// most in-workflow steps consume and produce payloads; signal types speak the
// signal port type so wiring a raw event into them draws a warning.
var entries = map[string]Entry{
	"http-handler":    {Category: CategoryEntry, Label: "HTTP Handler", Icon: "globe", OutputType: TypeEvent},
	"kafka-handler":   {Category: CategoryEntry, Label: "Kafka Consumer", Icon: "kafka", OutputType: TypeEvent},
	"cron-trigger":    {Category: CategoryEntry, Label: "Cron Trigger", Icon: "clock", OutputType: TypeEvent},
	"workflow-submit": {Category: CategoryEntry, Label: "Workflow Submit", Icon: "play-circle", OutputType: TypeEvent},

	"run":           {Category: CategoryDurable, Label: "Durable Step", Icon: "shield", InputType: TypeAny, OutputType: TypePayload},
	"service-call":  {Category: CategoryDurable, Label: "Service Call", Icon: "arrow-right", InputType: TypePayload, OutputType: TypePayload},
	"object-call":   {Category: CategoryDurable, Label: "Object Call", Icon: "box", InputType: TypePayload, OutputType: TypePayload},
	"workflow-call": {Category: CategoryDurable, Label: "Workflow Call", Icon: "workflow", InputType: TypePayload, OutputType: TypePayload},
	"send-message":  {Category: CategoryDurable, Label: "Send Message", Icon: "send", InputType: TypePayload},
	"delayed-send":  {Category: CategoryDurable, Label: "Delayed Message", Icon: "clock-send", InputType: TypePayload},

	"get-state":   {Category: CategoryState, Label: "Get State", Icon: "download", InputType: TypeAny, OutputType: TypePayload},
	"set-state":   {Category: CategoryState, Label: "Set State", Icon: "upload", InputType: TypePayload, OutputType: TypePayload},
	"clear-state": {Category: CategoryState, Label: "Clear State", Icon: "eraser", InputType: TypeAny, OutputType: TypePayload},

	"condition":  {Category: CategoryFlow, Label: "If / Else", Icon: "git-branch", InputType: TypeAny, OutputType: TypePayload},
	"switch":     {Category: CategoryFlow, Label: "Switch", Icon: "git-fork", InputType: TypeAny, OutputType: TypePayload},
	"loop":       {Category: CategoryFlow, Label: "Loop / Iterate", Icon: "repeat", InputType: TypeAny, OutputType: TypePayload},
	"parallel":   {Category: CategoryFlow, Label: "Parallel", Icon: "layers", InputType: TypeAny, OutputType: TypePayload},
	"compensate": {Category: CategoryFlow, Label: "Compensate", Icon: "undo", InputType: TypeAny, OutputType: TypePayload},

	"sleep":   {Category: CategoryTiming, Label: "Sleep / Timer", Icon: "timer", InputType: TypeAny, OutputType: TypePayload},
	"timeout": {Category: CategoryTiming, Label: "Timeout", Icon: "alarm", InputType: TypeAny, OutputType: TypePayload},

	"durable-promise": {Category: CategorySignal, Label: "Durable Promise", Icon: "sparkles", InputType: TypeSignal, OutputType: TypePayload},
	"awakeable":       {Category: CategorySignal, Label: "Awakeable", Icon: "bell", InputType: TypeSignal, OutputType: TypePayload},
	"resolve-promise": {Category: CategorySignal, Label: "Resolve Promise", Icon: "check-circle", InputType: TypePayload, OutputType: TypeSignal},
	"signal-handler":  {Category: CategorySignal, Label: "Signal Handler", Icon: "radio", InputType: TypeSignal, OutputType: TypePayload},
}

// Lookup returns the entry for a node type. Unknown types return Default and
// found=false; callers that only need metadata can ignore the flag.
func Lookup(nodeType string) (Entry, bool) {
	if e, ok := entries[nodeType]; ok {
		return e, true
	}
	return Default, false
}

// Metadata returns the display metadata for a node type, falling back to the
// default entry for unknown types.
func Metadata(nodeType string) (Category, string, string) {
	e, _ := Lookup(nodeType)
	return e.Category, e.Label, e.Icon
}

// OutputType returns the declared output port type for a node type.
// Returns ok=false when the node type is unknown or declares no output type.
func OutputType(nodeType string) (string, bool) {
	e, found := Lookup(nodeType)
	if !found || e.OutputType == "" {
		return "", false
	}
	return e.OutputType, true
}

// InputType returns the declared input port type for a node type.
// Returns ok=false when the node type is unknown or declares no input type.
func InputType(nodeType string) (string, bool) {
	e, found := Lookup(nodeType)
	if !found || e.InputType == "" {
		return "", false
	}
	return e.InputType, true
}

// Compatible reports whether an output port type may feed an input port
// type. TypeAny on either side always matches. This check is advisory only;
// the connectivity layer records a warning but still creates the connection.
func Compatible(outputType, inputType string) bool {
	if outputType == TypeAny || inputType == TypeAny {
		return true
	}
	return outputType == inputType
}

// Types returns all known node-type keys. The order is not guaranteed.
func Types() []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	return keys
}

// Known reports whether nodeType exists in the table.
func Known(nodeType string) bool {
	_, ok := entries[nodeType]
	return ok
}
