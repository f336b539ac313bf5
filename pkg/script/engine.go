// Package script runs JavaScript that styles widgets and declares scenes.
package script

import (
	"fmt"
	"log"
	"strings"

	"github.com/dop251/goja"
)

// Engine owns one goja runtime. It is not safe for concurrent use.
type Engine struct {
	vm *goja.Runtime
}

// New creates an engine with a console object bound to the log package.
func New() *Engine {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.UncapFieldNameMapper())
	c := &consoleAPI{}
	c.register(vm)
	return &Engine{vm: vm}
}

// Run executes src. name is used in error messages.
func (e *Engine) Run(name, src string) error {
	if _, err := e.vm.RunScript(name, src); err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

// Func returns the global function called name.
func (e *Engine) Func(name string) (goja.Callable, error) {
	fn, ok := goja.AssertFunction(e.vm.Get(name))
	if !ok {
		return nil, fmt.Errorf("script: no function %q defined", name)
	}
	return fn, nil
}

// consoleAPI implements console.log, console.warn and console.error.
type consoleAPI struct{}

func (c *consoleAPI) register(vm *goja.Runtime) {
	console := vm.NewObject()
	console.Set("log", c.log)
	console.Set("warn", c.warn)
	console.Set("error", c.errorFn)
	vm.Set("console", console)
}

func (c *consoleAPI) log(call goja.FunctionCall) goja.Value {
	log.Print(formatArgs(call.Arguments))
	return goja.Undefined()
}

func (c *consoleAPI) warn(call goja.FunctionCall) goja.Value {
	log.Print("WARN: ", formatArgs(call.Arguments))
	return goja.Undefined()
}

func (c *consoleAPI) errorFn(call goja.FunctionCall) goja.Value {
	log.Print("ERROR: ", formatArgs(call.Arguments))
	return goja.Undefined()
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
