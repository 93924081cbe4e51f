package domain

import (
	"fmt"
	"runtime"
)

// GetFunctionName provides the filename, line number, and function name of the caller,
// skipping the top `skip` functions on the stack.
func GetFunctionName(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "?"
	}

	fn := runtime.FuncForPC(pc)
	return fmt.Sprintf("%s:%d %s", file, line, fn.Name())
}
